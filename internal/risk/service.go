package risk

import (
	"context"
	"fmt"
	"math"
	"sort"

	"tradewatch/internal/economy"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

// TradeSource supplies the raw trade values volatility is computed from.
type TradeSource interface {
	Values(ctx context.Context, f storage.Filter) ([]trade.CountryYearValue, error)
}

// EnvSource supplies each country's latest environmental metrics.
type EnvSource interface {
	LatestEnvironmental(ctx context.Context) ([]economy.Environmental, error)
}

// Service scores countries by trade volatility and environmental exposure.
type Service struct {
	trades TradeSource
	env    EnvSource
}

func NewService(trades TradeSource, env EnvSource) *Service {
	return &Service{trades: trades, env: env}
}

// TradeRisks scores each country by the coefficient of variation of its trade
// values, scaled to percent. Countries rank ascending by volatility: the
// calmest 30% are Low, the next 40% Medium, the rest High.
func (s *Service) TradeRisks(ctx context.Context, f storage.Filter) ([]TradeRisk, error) {
	values, err := s.trades.Values(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load trade values: %w", err)
	}

	byCountry := make(map[string][]float64)
	for _, v := range values {
		byCountry[v.Country] = append(byCountry[v.Country], v.Value)
	}

	risks := make([]TradeRisk, 0, len(byCountry))
	for country, vals := range byCountry {
		cv, ok := coefficientOfVariation(vals)
		if !ok {
			continue
		}
		risks = append(risks, TradeRisk{Country: country, Volatility: cv * 100})
	}
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Volatility != risks[j].Volatility {
			return risks[i].Volatility < risks[j].Volatility
		}
		return risks[i].Country < risks[j].Country
	})

	n := len(risks)
	lowCut := int(math.Round(0.3 * float64(n)))
	medCut := int(math.Round(0.7 * float64(n)))
	for i := range risks {
		risks[i].Rank = i + 1
		switch {
		case risks[i].Rank <= lowCut:
			risks[i].Level = LevelLow
		case risks[i].Rank <= medCut:
			risks[i].Level = LevelMedium
		default:
			risks[i].Level = LevelHigh
		}
	}
	return risks, nil
}

// Assessments blends trade volatility with environmental exposure, weighting
// both halves equally. Composite scores rank descending: the worst 30% are
// High. A country is flagged Hidden when its trade risk is Low but its
// environmental score exceeds the cohort's 70th percentile.
func (s *Service) Assessments(ctx context.Context, f storage.Filter) ([]Assessment, error) {
	tradeRisks, err := s.TradeRisks(ctx, f)
	if err != nil {
		return nil, err
	}
	latest, err := s.env.LatestEnvironmental(ctx)
	if err != nil {
		return nil, fmt.Errorf("load environmental metrics: %w", err)
	}

	envScores := make(map[string]float64, len(latest))
	allEnv := make([]float64, 0, len(latest))
	for _, e := range latest {
		score := 0.4*e.CarbonIntensity + 0.6*e.CarbonFootprint/100
		envScores[e.Country] = score
		allEnv = append(allEnv, score)
	}
	envP70 := percentile(allEnv, 0.7)

	assessments := make([]Assessment, 0, len(tradeRisks))
	for _, tr := range tradeRisks {
		env := envScores[tr.Country]
		a := Assessment{
			Country:    tr.Country,
			Volatility: tr.Volatility,
			TradeLevel: tr.Level,
			EnvScore:   env,
			Composite:  0.5*tr.Volatility + 0.5*env,
			Hidden:     tr.Level == LevelLow && env > envP70,
		}
		assessments = append(assessments, a)
	}

	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].Composite != assessments[j].Composite {
			return assessments[i].Composite > assessments[j].Composite
		}
		return assessments[i].Country < assessments[j].Country
	})
	n := len(assessments)
	highCut := int(math.Round(0.3 * float64(n)))
	medCut := int(math.Round(0.7 * float64(n)))
	for i := range assessments {
		switch {
		case i < highCut:
			assessments[i].Level = LevelHigh
		case i < medCut:
			assessments[i].Level = LevelMedium
		default:
			assessments[i].Level = LevelLow
		}
	}
	return assessments, nil
}

// Trend computes each country's within-year volatility for the trend view.
func (s *Service) Trend(ctx context.Context, f storage.Filter) ([]TrendPoint, error) {
	values, err := s.trades.Values(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load trade values: %w", err)
	}

	type key struct {
		country string
		year    int
	}
	grouped := make(map[key][]float64)
	for _, v := range values {
		k := key{v.Country, v.Year}
		grouped[k] = append(grouped[k], v.Value)
	}

	points := make([]TrendPoint, 0, len(grouped))
	for k, vals := range grouped {
		cv, ok := coefficientOfVariation(vals)
		if !ok {
			continue
		}
		points = append(points, TrendPoint{Country: k.country, Year: k.year, Volatility: cv * 100})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Country != points[j].Country {
			return points[i].Country < points[j].Country
		}
		return points[i].Year < points[j].Year
	})
	return points, nil
}

// coefficientOfVariation uses the sample standard deviation. Fewer than two
// samples carry no spread information, so those groups report not-ok and are
// dropped by the callers.
func coefficientOfVariation(vals []float64) (float64, bool) {
	if len(vals) < 2 {
		return 0, false
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	if mean == 0 {
		return 0, false
	}
	var variance float64
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance/float64(len(vals)-1)) / mean, true
}

// percentile interpolates linearly between sorted samples, matching the
// conventional definition for q in [0, 1].
func percentile(vals []float64, q float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
