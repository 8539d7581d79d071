package risk

// Level buckets a score relative to the rest of the cohort.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// TradeRisk scores a country by the volatility of its trade values.
type TradeRisk struct {
	Country    string  `json:"country"`
	Volatility float64 `json:"volatility"`
	Rank       int     `json:"rank"`
	Level      Level   `json:"level"`
}

// Assessment combines trade volatility and environmental exposure for one
// country. Hidden flags countries whose trade profile looks calm while their
// environmental exposure sits in the top tail.
type Assessment struct {
	Country    string  `json:"country"`
	Volatility float64 `json:"trade_volatility"`
	TradeLevel Level   `json:"trade_level"`
	EnvScore   float64 `json:"environmental_score"`
	Composite  float64 `json:"composite_score"`
	Level      Level   `json:"composite_level"`
	Hidden     bool    `json:"hidden_risk"`
}

// TrendPoint is the volatility of one country's trade within a single year.
type TrendPoint struct {
	Country    string  `json:"country"`
	Year       int     `json:"year"`
	Volatility float64 `json:"volatility"`
}

// Score is one persisted risk_scores row.
type Score struct {
	RiskID         int64   `json:"risk_id"`
	CountryID      int     `json:"country_id"`
	Country        string  `json:"country,omitempty"`
	RiskType       string  `json:"risk_type"`
	RiskScore      float64 `json:"risk_score"`
	RiskFactors    string  `json:"risk_factors,omitempty"`
	AssessmentDate string  `json:"assessment_date"`
}
