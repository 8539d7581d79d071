package policy

import "context"

// Store is the persistence surface the service depends on.
type Store interface {
	Tariffs(ctx context.Context) ([]Tariff, error)
	AvgTariffPairs(ctx context.Context) ([]TariffPair, error)
	Sanctions(ctx context.Context) ([]Sanction, error)
	ActiveSanctionSummary(ctx context.Context) ([]SanctionSummary, error)
	Measures(ctx context.Context, activeOnly bool) ([]Measure, error)
}

// Service exposes the trade policy landscape to the dashboard and exporter.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Tariffs(ctx context.Context) ([]Tariff, error) {
	return s.store.Tariffs(ctx)
}

func (s *Service) AvgTariffPairs(ctx context.Context) ([]TariffPair, error) {
	return s.store.AvgTariffPairs(ctx)
}

func (s *Service) Sanctions(ctx context.Context) ([]Sanction, error) {
	return s.store.Sanctions(ctx)
}

func (s *Service) SanctionSummary(ctx context.Context) ([]SanctionSummary, error) {
	return s.store.ActiveSanctionSummary(ctx)
}

func (s *Service) Measures(ctx context.Context, activeOnly bool) ([]Measure, error) {
	return s.store.Measures(ctx, activeOnly)
}
