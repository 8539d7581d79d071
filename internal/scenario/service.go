package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradewatch/internal/economy"
)

// EnvSource supplies the environmental metrics carbon tariff runs ground on.
type EnvSource interface {
	LatestEnvironmental(ctx context.Context) ([]economy.Environmental, error)
}

// Store persists completed runs.
type Store interface {
	SaveRun(ctx context.Context, req Request, res Result) error
}

// Service runs projections and records them.
type Service struct {
	store Store
	env   EnvSource
}

func NewService(store Store, env EnvSource) *Service {
	return &Service{store: store, env: env}
}

// Run executes one scenario and persists the outcome. Carbon tariff runs
// profile the country with the highest carbon cost on record.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	var profile *EnvProfile
	if req.Type == TypeCarbonTariff {
		p, err := s.dirtiestProfile(ctx)
		if err != nil {
			return Result{}, err
		}
		profile = p
	}

	res, err := Project(req, profile)
	if err != nil {
		return Result{}, err
	}
	res.RunID = uuid.NewString()

	if err := s.store.SaveRun(ctx, req, res); err != nil {
		return Result{}, fmt.Errorf("save scenario run: %w", err)
	}
	return res, nil
}

// dirtiestProfile picks the country whose carbon intensity times footprint is
// largest. A nil profile means no environmental data exists yet.
func (s *Service) dirtiestProfile(ctx context.Context) (*EnvProfile, error) {
	latest, err := s.env.LatestEnvironmental(ctx)
	if err != nil {
		return nil, fmt.Errorf("load environmental metrics: %w", err)
	}
	var best *EnvProfile
	var bestCost float64
	for _, e := range latest {
		cost := e.CarbonIntensity * e.CarbonFootprint
		if best == nil || cost > bestCost {
			best = &EnvProfile{Country: e.Country, CarbonIntensity: e.CarbonIntensity, CarbonFootprint: e.CarbonFootprint}
			bestCost = cost
		}
	}
	return best, nil
}
