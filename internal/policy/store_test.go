package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradewatch/internal/storage"
)

type PolicyStoreSuite struct {
	suite.Suite
	db    *storage.DB
	store *SQLStore
}

func TestPolicyStoreSuite(t *testing.T) {
	suite.Run(t, new(PolicyStoreSuite))
}

func (s *PolicyStoreSuite) SetupTest() {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(storage.CreateSchema(ctx, db))
	s.Require().NoError(storage.Seed(ctx, db))

	s.db = db
	s.store = NewStore(db)

	tariffs := []Tariff{
		{CountryID: 1, PartnerID: 2, CommodityCode: "0101", TariffRate: 2.5, TariffType: "MFN", EffectiveDate: "2023-01-01", Source: "WTO"},
		{CountryID: 1, PartnerID: 2, CommodityCode: "0201", TariffRate: 7.5, TariffType: "MFN", EffectiveDate: "2023-01-01", Source: "WTO"},
		{CountryID: 1, PartnerID: 3, CommodityCode: "0101", TariffRate: 0.0, TariffType: "preferential", EffectiveDate: "2023-01-01", Source: "WTO"},
	}
	for i := range tariffs {
		s.Require().NoError(s.store.InsertTariff(ctx, &tariffs[i]))
	}

	sanctions := []Sanction{
		{SanctioningID: 1, TargetID: 2, Type: "trade", Description: "Export controls", StartDate: "2022-10-07", Status: "active", Source: "OFAC"},
		{SanctioningID: 1, TargetID: 2, Type: "financial", Description: "Entity list additions", StartDate: "2023-05-19", Status: "active", Source: "OFAC"},
		{SanctioningID: 1, TargetID: 9, Type: "trade", Description: "Steel duties", StartDate: "2018-03-23", Status: "lifted", Source: "USTR"},
	}
	for i := range sanctions {
		s.Require().NoError(s.store.InsertSanction(ctx, &sanctions[i]))
	}

	measures := []Measure{
		{CountryID: 1, Name: "USMCA", Type: "agreement", EffectiveDate: "2020-07-01", Status: "active", Source: "USTR"},
		{CountryID: 3, Name: "CBAM", Type: "carbon_tariff", EffectiveDate: "2023-10-01", Status: "active", Source: "EU"},
		{CountryID: 2, Name: "Expired quota", Type: "quota", EffectiveDate: "2015-01-01", Status: "expired", Source: "MOFCOM"},
	}
	for i := range measures {
		s.Require().NoError(s.store.InsertMeasure(ctx, &measures[i]))
	}
}

func (s *PolicyStoreSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *PolicyStoreSuite) TestTariffs() {
	tariffs, err := s.store.Tariffs(context.Background())
	s.Require().NoError(err)
	s.Require().Len(tariffs, 3)
	s.Equal("United States", tariffs[0].Country)
	s.Equal("China", tariffs[0].Partner)
	s.InDelta(7.5, tariffs[0].TariffRate, 1e-9, "highest rate sorts first")
}

func (s *PolicyStoreSuite) TestAvgTariffPairs() {
	pairs, err := s.store.AvgTariffPairs(context.Background())
	s.Require().NoError(err)
	s.Require().Len(pairs, 2)
	s.Equal("China", pairs[0].Partner)
	s.InDelta(5.0, pairs[0].AvgRate, 1e-9)
	s.Equal("Germany", pairs[1].Partner)
	s.InDelta(0.0, pairs[1].AvgRate, 1e-9)
}

func (s *PolicyStoreSuite) TestSanctions() {
	sanctions, err := s.store.Sanctions(context.Background())
	s.Require().NoError(err)
	s.Require().Len(sanctions, 3)
	s.Equal("2023-05-19", sanctions[0].StartDate, "newest sanction sorts first")
	s.Equal("China", sanctions[0].Target)
}

func (s *PolicyStoreSuite) TestActiveSanctionSummary() {
	summary, err := s.store.ActiveSanctionSummary(context.Background())
	s.Require().NoError(err)
	s.Require().Len(summary, 2, "lifted sanctions are excluded")
	for _, row := range summary {
		s.Equal("China", row.Target)
		s.Equal(1, row.Count)
	}
}

func (s *PolicyStoreSuite) TestMeasures() {
	s.Run("all measures", func() {
		measures, err := s.store.Measures(context.Background(), false)
		s.Require().NoError(err)
		s.Len(measures, 3)
	})

	s.Run("active only", func() {
		measures, err := s.store.Measures(context.Background(), true)
		s.Require().NoError(err)
		s.Require().Len(measures, 2)
		s.Equal("CBAM", measures[0].Name, "newest effective date sorts first")
	})
}

func (s *PolicyStoreSuite) TestCounts() {
	tariffs, sanctions, measures, err := s.store.Counts(context.Background())
	s.Require().NoError(err)
	s.Equal(3, tariffs)
	s.Equal(3, sanctions)
	s.Equal(3, measures)
}
