package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTariffChange(t *testing.T) {
	res, err := Project(Request{
		Name: "10% tariff hike", Type: TypeTariffChange,
		BaseYear: 2024, ProjectionYears: 3, TariffChange: 10,
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.Points, 3)

	// each point compounds a 5% annual contraction
	factor := 0.95
	for i, p := range res.Points {
		want := BaseIndex * math.Pow(factor, float64(i+1))
		assert.InDelta(t, want, p.TradeValue, 1e-9)
		assert.InDelta(t, (want-BaseIndex)/BaseIndex*100, p.ChangePct, 1e-9)
		assert.Equal(t, 2025+i, p.Year)
	}
	assert.InDelta(t, res.Points[2].ChangePct, res.TotalChangePct, 1e-12)
}

func TestProjectTradeAgreement(t *testing.T) {
	res, err := Project(Request{
		Name: "new agreement", Type: TypeTradeAgreement,
		BaseYear: 2024, ProjectionYears: 3, TradeImpact: 10,
	}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 1100, res.Points[0].TradeValue, 1e-9, "impact lands in year one")
	assert.InDelta(t, 1100*1.02, res.Points[1].TradeValue, 1e-9, "then steady drift")
	assert.InDelta(t, 1100*1.02*1.02, res.Points[2].TradeValue, 1e-9)
}

func TestProjectEconomicShock(t *testing.T) {
	res, err := Project(Request{
		Name: "recession", Type: TypeEconomicShock,
		BaseYear: 2024, ProjectionYears: 4, GDPImpact: -10, ShockDuration: 2,
	}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 900, res.Points[0].TradeValue, 1e-9)
	assert.InDelta(t, 810, res.Points[1].TradeValue, 1e-9)
	assert.InDelta(t, 810*1.02, res.Points[2].TradeValue, 1e-9, "recovery drift after the shock")
	assert.InDelta(t, 810*1.02*1.02, res.Points[3].TradeValue, 1e-9)
}

func TestProjectSanctions(t *testing.T) {
	cases := []struct {
		severity Severity
		factor   float64
	}{
		{SeverityLight, 0.95},
		{SeverityModerate, 0.85},
		{SeveritySevere, 0.70},
	}
	for _, tc := range cases {
		t.Run(string(tc.severity), func(t *testing.T) {
			res, err := Project(Request{
				Name: "embargo", Type: TypeSanctions,
				BaseYear: 2024, ProjectionYears: 2, Severity: tc.severity,
			}, nil)
			require.NoError(t, err)
			assert.InDelta(t, BaseIndex*tc.factor*tc.factor, res.Points[1].TradeValue, 1e-9)
		})
	}

	_, err := Project(Request{Type: TypeSanctions, BaseYear: 2024, ProjectionYears: 1, Severity: "Apocalyptic"}, nil)
	assert.Error(t, err)
}

func TestProjectCarbonTariff(t *testing.T) {
	t.Run("with environmental profile", func(t *testing.T) {
		env := &EnvProfile{Country: "China", CarbonIntensity: 0.8, CarbonFootprint: 125}
		res, err := Project(Request{
			Name: "border levy", Type: TypeCarbonTariff,
			BaseYear: 2024, ProjectionYears: 1, CarbonTariffRate: 50,
		}, env)
		require.NoError(t, err)

		reduction := 0.8 * 50 * 125 / 1000 * 0.15
		net := 0.2*reduction - 0.8*reduction
		assert.InDelta(t, BaseIndex*(1+net/100), res.Points[0].TradeValue, 1e-9)
	})

	t.Run("profiled reduction caps at 25 percent", func(t *testing.T) {
		env := &EnvProfile{Country: "China", CarbonIntensity: 5, CarbonFootprint: 500}
		res, err := Project(Request{
			Name: "extreme levy", Type: TypeCarbonTariff,
			BaseYear: 2024, ProjectionYears: 1, CarbonTariffRate: 100,
		}, env)
		require.NoError(t, err)

		net := 0.2*25.0 - 0.8*25.0
		assert.InDelta(t, BaseIndex*(1+net/100), res.Points[0].TradeValue, 1e-9)
	})

	t.Run("fallback without profile caps at 10 percent", func(t *testing.T) {
		res, err := Project(Request{
			Name: "levy", Type: TypeCarbonTariff,
			BaseYear: 2024, ProjectionYears: 1, CarbonTariffRate: 100,
		}, nil)
		require.NoError(t, err)
		assert.InDelta(t, 900, res.Points[0].TradeValue, 1e-9)
	})
}

func TestProjectValidation(t *testing.T) {
	_, err := Project(Request{Type: "weather", BaseYear: 2024, ProjectionYears: 3}, nil)
	assert.Error(t, err)

	_, err = Project(Request{Type: TypeTariffChange, BaseYear: 2024, ProjectionYears: 0}, nil)
	assert.Error(t, err)
}

func TestProjectIsDeterministic(t *testing.T) {
	req := Request{Name: "repeat", Type: TypeTradeAgreement, BaseYear: 2024, ProjectionYears: 5, TradeImpact: 7.5}
	a, err := Project(req, nil)
	require.NoError(t, err)
	b, err := Project(req, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
