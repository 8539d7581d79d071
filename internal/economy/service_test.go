package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradewatch/internal/storage"
)

type EconomyServiceSuite struct {
	suite.Suite
	db      *storage.DB
	store   *SQLStore
	service *Service
}

func TestEconomyServiceSuite(t *testing.T) {
	suite.Run(t, new(EconomyServiceSuite))
}

func (s *EconomyServiceSuite) SetupTest() {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(storage.CreateSchema(ctx, db))
	s.Require().NoError(storage.Seed(ctx, db))

	s.db = db
	s.store = NewStore(db)
	s.service = NewService(s.store)

	// GDP and exports move together for USA and CHN across three years, so
	// the pair correlates perfectly.
	fixtures := []Indicator{
		{CountryID: 1, Name: "GDP (current US$)", Year: 2021, Value: 100},
		{CountryID: 1, Name: "GDP (current US$)", Year: 2022, Value: 110},
		{CountryID: 1, Name: "GDP (current US$)", Year: 2023, Value: 120},
		{CountryID: 1, Name: "Exports (% of GDP)", Year: 2021, Value: 10},
		{CountryID: 1, Name: "Exports (% of GDP)", Year: 2022, Value: 11},
		{CountryID: 1, Name: "Exports (% of GDP)", Year: 2023, Value: 12},
		{CountryID: 2, Name: "GDP (current US$)", Year: 2021, Value: 200},
		{CountryID: 2, Name: "Exports (% of GDP)", Year: 2021, Value: 20},
	}
	for i := range fixtures {
		fixtures[i].Source = "Sample Data"
		s.Require().NoError(s.store.InsertIndicator(ctx, &fixtures[i]))
	}

	envs := []Environmental{
		{CountryID: 3, Year: 2022, CircularScore: 75, CarbonIntensity: 0.3, CarbonFootprint: 45},
		{CountryID: 3, Year: 2023, CircularScore: 78, CarbonIntensity: 0.3, CarbonFootprint: 44},
		{CountryID: 1, Year: 2023, CircularScore: 55, CarbonIntensity: 0.5, CarbonFootprint: 68},
		{CountryID: 2, Year: 2023, CircularScore: 41, CarbonIntensity: 0.85, CarbonFootprint: 125},
	}
	for i := range envs {
		envs[i].Source = "Sample Environmental Data"
		s.Require().NoError(s.store.InsertEnvironmental(ctx, &envs[i]))
	}
}

func (s *EconomyServiceSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *EconomyServiceSuite) TestIndicators() {
	ctx := context.Background()

	s.Run("name filter narrows to a single series", func() {
		points, err := s.service.Indicators(ctx, storage.Filter{}, "GDP (current US$)")
		s.Require().NoError(err)
		s.Require().Len(points, 4)
		for _, p := range points {
			s.Equal("GDP (current US$)", p.Name)
		}
	})

	s.Run("year and country filters apply", func() {
		points, err := s.service.Indicators(ctx, storage.Filter{YearFrom: 2022, Countries: []string{"United States"}}, "")
		s.Require().NoError(err)
		s.Require().Len(points, 4)
		for _, p := range points {
			s.Equal("United States", p.Country)
			s.GreaterOrEqual(p.Year, 2022)
		}
	})
}

func (s *EconomyServiceSuite) TestNormalized() {
	points, err := s.service.Normalized(context.Background(), storage.Filter{})
	s.Require().NoError(err)
	s.Require().Len(points, 8)

	// z-scores of each indicator sum to zero
	sums := make(map[string]float64)
	for _, p := range points {
		sums[p.Name] += p.Value
	}
	for name, sum := range sums {
		s.InDelta(0.0, sum, 1e-9, name)
	}
}

func (s *EconomyServiceSuite) TestCorrelations() {
	cells, err := s.service.Correlations(context.Background(), storage.Filter{})
	s.Require().NoError(err)
	s.Require().Len(cells, 1)

	c := cells[0]
	s.Equal("Exports (% of GDP)", c.IndicatorA)
	s.Equal("GDP (current US$)", c.IndicatorB)
	s.Equal(4, c.Samples)
	s.InDelta(1.0, c.Coefficient, 1e-9, "linearly dependent series correlate perfectly")
}

func (s *EconomyServiceSuite) TestGreenRankings() {
	ranks, err := s.service.GreenRankings(context.Background())
	s.Require().NoError(err)
	s.Require().Len(ranks, 3)

	// Germany's latest year (2023) wins, then USA, then China.
	s.Equal("Germany", ranks[0].Country)
	s.Equal(2023, ranks[0].Year)
	s.InDelta(78.0, ranks[0].CircularScore, 1e-9)
	s.Equal("United States", ranks[1].Country)
	s.Equal("China", ranks[2].Country)
}

func (s *EconomyServiceSuite) TestTrends() {
	trends, err := s.service.Trends(context.Background(), storage.Filter{Countries: []string{"Germany"}})
	s.Require().NoError(err)
	s.Require().Len(trends, 2)
	s.Equal(2022, trends[0].Year)
	s.Equal(2023, trends[1].Year)
}
