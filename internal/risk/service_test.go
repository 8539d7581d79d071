package risk

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradewatch/internal/economy"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

type RiskServiceSuite struct {
	suite.Suite
	db      *storage.DB
	service *Service
	store   *SQLStore
}

func TestRiskServiceSuite(t *testing.T) {
	suite.Run(t, new(RiskServiceSuite))
}

func (s *RiskServiceSuite) SetupTest() {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(storage.CreateSchema(ctx, db))
	s.Require().NoError(storage.Seed(ctx, db))

	s.db = db
	tradeStore := trade.NewStore(db)
	econStore := economy.NewStore(db)
	s.service = NewService(tradeStore, econStore)
	s.store = NewStore(db)

	// Country i gets values 1000 and 1000+20*i, so volatility rises strictly
	// with the country id.
	for i := 1; i <= 10; i++ {
		for _, v := range []float64{1000, 1000 + 20*float64(i)} {
			rec := trade.Record{
				Year: 2023, ReporterID: i, PartnerID: trade.WorldPartnerID,
				Commodity: "TOTAL", Flow: trade.FlowExport, ValueUSD: v, Source: "Sample Data",
			}
			s.Require().NoError(tradeStore.Insert(ctx, &rec))
		}
	}

	// Environmental exposure rises with the id too, except the calmest
	// country (USA, id 1) which gets the worst footprint of all.
	for i := 1; i <= 10; i++ {
		env := economy.Environmental{
			CountryID: i, Year: 2023,
			CarbonIntensity: 0.1 * float64(i),
			CarbonFootprint: 10 * float64(i),
			Source:          "Sample Environmental Data",
		}
		if i == 1 {
			env.CarbonIntensity = 2.0
			env.CarbonFootprint = 400
		}
		s.Require().NoError(econStore.InsertEnvironmental(ctx, &env))
	}
}

func (s *RiskServiceSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *RiskServiceSuite) TestTradeRisksPartition() {
	risks, err := s.service.TradeRisks(context.Background(), storage.Filter{})
	s.Require().NoError(err)
	s.Require().Len(risks, 10)

	counts := make(map[Level]int)
	for _, r := range risks {
		counts[r.Level]++
	}
	s.Equal(3, counts[LevelLow])
	s.Equal(4, counts[LevelMedium])
	s.Equal(3, counts[LevelHigh])

	s.Equal("United States", risks[0].Country, "smallest spread ranks first")
	s.Equal(1, risks[0].Rank)
	s.Equal(LevelLow, risks[0].Level)
	s.Equal(LevelHigh, risks[9].Level)
	for i := 1; i < len(risks); i++ {
		s.Greater(risks[i].Volatility, risks[i-1].Volatility)
	}
}

func (s *RiskServiceSuite) TestAssessments() {
	assessments, err := s.service.Assessments(context.Background(), storage.Filter{})
	s.Require().NoError(err)
	s.Require().Len(assessments, 10)

	s.Run("composite blends the halves equally", func() {
		for _, a := range assessments {
			s.InDelta(0.5*a.Volatility+0.5*a.EnvScore, a.Composite, 1e-12, a.Country)
		}
	})

	s.Run("composite levels partition 3/4/3", func() {
		counts := make(map[Level]int)
		for _, a := range assessments {
			counts[a.Level]++
		}
		s.Equal(3, counts[LevelHigh])
		s.Equal(4, counts[LevelMedium])
		s.Equal(3, counts[LevelLow])
	})

	s.Run("calm trade with extreme exposure is hidden risk", func() {
		var usa Assessment
		for _, a := range assessments {
			if a.Country == "United States" {
				usa = a
			}
		}
		s.Equal(LevelLow, usa.TradeLevel)
		s.True(usa.Hidden)
	})
}

func (s *RiskServiceSuite) TestVolatilityUsesSampleSpread() {
	ctx := context.Background()

	// India keeps a single observation, which carries no spread information.
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM trade_data WHERE reporter_country_id = 10 AND value_usd > 1000")
	s.Require().NoError(err)

	risks, err := s.service.TradeRisks(ctx, storage.Filter{})
	s.Require().NoError(err)
	s.Require().Len(risks, 9, "single-sample countries drop out")
	for _, r := range risks {
		s.NotEqual("India", r.Country)
	}

	// USA holds 1000 and 1020: mean 1010, sample std sqrt(200)
	s.Equal("United States", risks[0].Country)
	s.InDelta(100*math.Sqrt(200)/1010, risks[0].Volatility, 1e-9)
}

func (s *RiskServiceSuite) TestTrend() {
	points, err := s.service.Trend(context.Background(), storage.Filter{})
	s.Require().NoError(err)
	s.Require().Len(points, 10)
	for _, p := range points {
		s.Equal(2023, p.Year)
		s.Greater(p.Volatility, 0.0)
	}
}

func (s *RiskServiceSuite) TestPersistClampsAndRoundTrips() {
	ctx := context.Background()
	assessments := []Assessment{
		{Country: "United States", Volatility: 150, EnvScore: 2.6, Composite: 76.3, Level: LevelHigh, Hidden: false},
		{Country: "China", Volatility: 12.5, EnvScore: 1.0, Composite: 6.75, Level: LevelLow, Hidden: true},
	}
	s.Require().NoError(s.store.Persist(ctx, assessments))

	scores, err := s.store.Latest(ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)

	s.Equal("United States", scores[0].Country)
	s.InDelta(100.0, scores[0].RiskScore, 1e-9, "scores cap at the table limit")
	s.Equal("trade_risk", scores[0].RiskType)
	s.Contains(scores[0].RiskFactors, `"composite_score":76.3`)

	s.Equal("China", scores[1].Country)
	s.InDelta(12.5, scores[1].RiskScore, 1e-9)
	s.Contains(scores[1].RiskFactors, `"hidden_risk":true`)
}
