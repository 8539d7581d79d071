package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradewatch/internal/economy"
	"tradewatch/internal/storage"
)

type ScenarioServiceSuite struct {
	suite.Suite
	db      *storage.DB
	service *Service
	store   *SQLStore
}

func TestScenarioServiceSuite(t *testing.T) {
	suite.Run(t, new(ScenarioServiceSuite))
}

func (s *ScenarioServiceSuite) SetupTest() {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(storage.CreateSchema(ctx, db))
	s.Require().NoError(storage.Seed(ctx, db))

	s.db = db
	s.store = NewStore(db)
	econStore := economy.NewStore(db)
	s.service = NewService(s.store, econStore)

	envs := []economy.Environmental{
		{CountryID: 2, Year: 2023, CarbonIntensity: 0.85, CarbonFootprint: 125},
		{CountryID: 3, Year: 2023, CarbonIntensity: 0.35, CarbonFootprint: 47},
	}
	for i := range envs {
		envs[i].Source = "Sample Environmental Data"
		s.Require().NoError(econStore.InsertEnvironmental(ctx, &envs[i]))
	}
}

func (s *ScenarioServiceSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *ScenarioServiceSuite) TestRunPersistsScenarioAndResult() {
	ctx := context.Background()
	res, err := s.service.Run(ctx, Request{
		Name: "tariff shock", Type: TypeTariffChange,
		BaseYear: 2024, ProjectionYears: 3, TariffChange: 10,
	})
	s.Require().NoError(err)
	s.NotEmpty(res.RunID)
	s.Len(res.Points, 3)

	var scenarios, analyses int
	s.Require().NoError(s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scenarios").Scan(&scenarios))
	s.Require().NoError(s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analysis_results").Scan(&analyses))
	s.Equal(1, scenarios)
	s.Equal(1, analyses)

	runs, err := s.store.Runs(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(runs, 1)
	s.Equal("tariff shock", runs[0].Name)
	s.Equal(TypeTariffChange, runs[0].Type)
}

func (s *ScenarioServiceSuite) TestCarbonTariffProfilesDirtiestCountry() {
	res, err := s.service.Run(context.Background(), Request{
		Name: "border levy", Type: TypeCarbonTariff,
		BaseYear: 2024, ProjectionYears: 1, CarbonTariffRate: 50,
	})
	s.Require().NoError(err)

	// China's intensity and footprint drive the reduction.
	reduction := 0.85 * 50 * 125 / 1000 * 0.15
	net := 0.2*reduction - 0.8*reduction
	s.InDelta(BaseIndex*(1+net/100), res.Points[0].TradeValue, 1e-9)
}

func (s *ScenarioServiceSuite) TestRunRejectsUnknownType() {
	_, err := s.service.Run(context.Background(), Request{
		Name: "bad", Type: "weather", BaseYear: 2024, ProjectionYears: 2,
	})
	s.Error(err)
}
