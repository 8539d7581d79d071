package trade

import (
	"context"
	"fmt"
	"sort"

	"tradewatch/internal/storage"
)

// Store is the persistence surface the service depends on.
type Store interface {
	FlowSummary(ctx context.Context, f storage.Filter) ([]FlowPoint, error)
	Values(ctx context.Context, f storage.Filter) ([]CountryYearValue, error)
	PartnerTotals(ctx context.Context, f storage.Filter) ([]PartnerTotal, error)
	YearlyFlowTotals(ctx context.Context) ([]YearFlowTotal, error)
}

// Service derives trade aggregates for the dashboard and exporter.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Flows returns per-country, per-year flow sums.
func (s *Service) Flows(ctx context.Context, f storage.Filter) ([]FlowPoint, error) {
	return s.store.FlowSummary(ctx, f)
}

// Balances pivots the flow sums into export/import balances per country and
// year. BalancePct is the balance as a share of total trade.
func (s *Service) Balances(ctx context.Context, f storage.Filter) ([]Balance, error) {
	points, err := s.store.FlowSummary(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load flow summary: %w", err)
	}

	type key struct {
		country string
		year    int
	}
	pivot := make(map[key]*Balance)
	var order []key
	for _, p := range points {
		k := key{p.Country, p.Year}
		b, ok := pivot[k]
		if !ok {
			b = &Balance{Country: p.Country, Year: p.Year}
			pivot[k] = b
			order = append(order, k)
		}
		switch p.Flow {
		case FlowExport:
			b.Exports += p.Value
		case FlowImport:
			b.Imports += p.Value
		}
	}

	balances := make([]Balance, 0, len(order))
	for _, k := range order {
		b := pivot[k]
		b.Balance = b.Exports - b.Imports
		b.TotalTrade = b.Exports + b.Imports
		if b.TotalTrade > 0 {
			b.BalancePct = b.Balance / b.TotalTrade * 100
		}
		balances = append(balances, *b)
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Country != balances[j].Country {
			return balances[i].Country < balances[j].Country
		}
		return balances[i].Year < balances[j].Year
	})
	return balances, nil
}

// TopTraders ranks countries by their average total trade per year,
// descending, capped at limit when limit > 0.
func (s *Service) TopTraders(ctx context.Context, f storage.Filter, limit int) ([]TraderRank, error) {
	balances, err := s.Balances(ctx, f)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	years := make(map[string]int)
	for _, b := range balances {
		sums[b.Country] += b.TotalTrade
		years[b.Country]++
	}

	ranks := make([]TraderRank, 0, len(sums))
	for country, total := range sums {
		ranks = append(ranks, TraderRank{Country: country, AvgTrade: total / float64(years[country])})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].AvgTrade != ranks[j].AvgTrade {
			return ranks[i].AvgTrade > ranks[j].AvgTrade
		}
		return ranks[i].Country < ranks[j].Country
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

// Partners returns bilateral trade totals for the relationship view.
func (s *Service) Partners(ctx context.Context, f storage.Filter) ([]PartnerTotal, error) {
	return s.store.PartnerTotals(ctx, f)
}

// YearlyTotals returns the global per-year, per-flow totals.
func (s *Service) YearlyTotals(ctx context.Context) ([]YearFlowTotal, error) {
	return s.store.YearlyFlowTotals(ctx)
}
