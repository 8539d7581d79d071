package scenario

import "fmt"

// BaseIndex is the trade index every projection starts from.
const BaseIndex = 1000.0

// driftRate is the steady-state annual growth applied once a scenario's
// direct effect has played out.
const driftRate = 0.02

// Project runs one scenario deterministically. env may be nil; it only
// matters for carbon tariff runs, which fall back to a flat reduction
// schedule without it.
func Project(req Request, env *EnvProfile) (Result, error) {
	if req.ProjectionYears < 1 {
		return Result{}, fmt.Errorf("projection years must be at least 1, got %d", req.ProjectionYears)
	}

	var step func(year int) (float64, error)
	switch req.Type {
	case TypeTariffChange:
		factor := 1 + req.TariffChange*(-0.5)/100
		step = func(int) (float64, error) { return factor, nil }

	case TypeTradeAgreement:
		step = func(year int) (float64, error) {
			if year == 1 {
				return 1 + req.TradeImpact/100, nil
			}
			return 1 + driftRate, nil
		}

	case TypeEconomicShock:
		duration := req.ShockDuration
		if duration < 1 {
			duration = 1
		}
		step = func(year int) (float64, error) {
			if year <= duration {
				return 1 + req.GDPImpact/100, nil
			}
			return 1 + driftRate, nil
		}

	case TypeSanctions:
		var impact float64
		switch req.Severity {
		case SeverityLight:
			impact = -5
		case SeverityModerate:
			impact = -15
		case SeveritySevere:
			impact = -30
		default:
			return Result{}, fmt.Errorf("unknown sanctions severity %q", req.Severity)
		}
		factor := 1 + impact/100
		step = func(int) (float64, error) { return factor, nil }

	case TypeCarbonTariff:
		factor := carbonTariffFactor(req.CarbonTariffRate, env)
		step = func(int) (float64, error) { return factor, nil }

	default:
		return Result{}, fmt.Errorf("unknown scenario type %q", req.Type)
	}

	res := Result{Name: req.Name, Type: req.Type, BaseYear: req.BaseYear}
	value := BaseIndex
	for y := 1; y <= req.ProjectionYears; y++ {
		factor, err := step(y)
		if err != nil {
			return Result{}, err
		}
		value *= factor
		res.Points = append(res.Points, Point{
			Year:       req.BaseYear + y,
			TradeValue: value,
			ChangePct:  (value - BaseIndex) / BaseIndex * 100,
		})
	}
	res.TotalChangePct = res.Points[len(res.Points)-1].ChangePct
	return res, nil
}

// carbonTariffFactor derives the annual trade multiplier for a carbon tariff.
// With an environmental profile the reduction scales with the profiled
// country's carbon intensity and footprint, capped at 25% per year, and 20%
// of the lost trade reroutes to cleaner partners. Without one, a flat
// reduction of a fifth of the rate applies, capped at 10% per year.
func carbonTariffFactor(rate float64, env *EnvProfile) float64 {
	if env != nil {
		reduction := env.CarbonIntensity * rate * env.CarbonFootprint / 1000 * 0.15
		if reduction > 25 {
			reduction = 25
		}
		partnerGain := 0.2 * reduction
		net := partnerGain - 0.8*reduction
		return 1 + net/100
	}
	annualReduction := rate * 0.2
	if annualReduction > 10 {
		annualReduction = 10
	}
	return 1 - annualReduction/100
}
