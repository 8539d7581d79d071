package economy

import (
	"context"
	"fmt"
	"math"
	"sort"

	"tradewatch/internal/storage"
)

// Store is the persistence surface the service depends on.
type Store interface {
	IndicatorPoints(ctx context.Context, f storage.Filter, name string) ([]IndicatorPoint, error)
	LatestEnvironmental(ctx context.Context) ([]Environmental, error)
	EnvironmentalTrends(ctx context.Context, f storage.Filter) ([]Environmental, error)
}

// Service derives economic and environmental aggregates.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Indicators returns indicator tuples, optionally narrowed to one name.
func (s *Service) Indicators(ctx context.Context, f storage.Filter, name string) ([]IndicatorPoint, error) {
	return s.store.IndicatorPoints(ctx, f, name)
}

// Normalized returns indicator tuples rescaled to z-scores within each
// indicator, so series on wildly different scales plot together.
func (s *Service) Normalized(ctx context.Context, f storage.Filter) ([]IndicatorPoint, error) {
	points, err := s.store.IndicatorPoints(ctx, f, "")
	if err != nil {
		return nil, fmt.Errorf("load indicator points: %w", err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range points {
		sums[p.Name] += p.Value
		counts[p.Name]++
	}
	means := make(map[string]float64, len(sums))
	for name, sum := range sums {
		means[name] = sum / float64(counts[name])
	}
	variances := make(map[string]float64)
	for _, p := range points {
		d := p.Value - means[p.Name]
		variances[p.Name] += d * d
	}

	out := make([]IndicatorPoint, len(points))
	for i, p := range points {
		std := math.Sqrt(variances[p.Name] / float64(counts[p.Name]))
		z := 0.0
		if std > 0 {
			z = (p.Value - means[p.Name]) / std
		}
		out[i] = IndicatorPoint{Country: p.Country, Year: p.Year, Name: p.Name, Value: z}
	}
	return out, nil
}

// Correlations computes the Pearson correlation for every indicator pair,
// matching values by (country, year). Pairs with fewer than three shared
// samples are dropped.
func (s *Service) Correlations(ctx context.Context, f storage.Filter) ([]Correlation, error) {
	points, err := s.store.IndicatorPoints(ctx, f, "")
	if err != nil {
		return nil, fmt.Errorf("load indicator points: %w", err)
	}

	type cell struct {
		country string
		year    int
	}
	series := make(map[string]map[cell]float64)
	for _, p := range points {
		if series[p.Name] == nil {
			series[p.Name] = make(map[cell]float64)
		}
		series[p.Name][cell{p.Country, p.Year}] = p.Value
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Correlation
	for i, a := range names {
		for _, b := range names[i+1:] {
			var xs, ys []float64
			for k, x := range series[a] {
				if y, ok := series[b][k]; ok {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}
			if len(xs) < 3 {
				continue
			}
			out = append(out, Correlation{
				IndicatorA:  a,
				IndicatorB:  b,
				Coefficient: pearson(xs, ys),
				Samples:     len(xs),
			})
		}
	}
	return out, nil
}

// GreenRankings ranks countries by their latest circular economy score,
// best first.
func (s *Service) GreenRankings(ctx context.Context) ([]GreenRank, error) {
	latest, err := s.store.LatestEnvironmental(ctx)
	if err != nil {
		return nil, fmt.Errorf("load environmental metrics: %w", err)
	}

	ranks := make([]GreenRank, 0, len(latest))
	for _, e := range latest {
		ranks = append(ranks, GreenRank{
			Country:         e.Country,
			Year:            e.Year,
			CircularScore:   e.CircularScore,
			GreenTradeShare: e.GreenTradeShare,
			RenewableTrade:  e.RenewableTrade,
			CarbonIntensity: e.CarbonIntensity,
			CarbonFootprint: e.CarbonFootprint,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].CircularScore != ranks[j].CircularScore {
			return ranks[i].CircularScore > ranks[j].CircularScore
		}
		return ranks[i].Country < ranks[j].Country
	})
	return ranks, nil
}

// Trends returns environmental time series for the trend view.
func (s *Service) Trends(ctx context.Context, f storage.Filter) ([]Environmental, error) {
	return s.store.EnvironmentalTrends(ctx, f)
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
	}
	mx, my := sx/n, sy/n

	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}
