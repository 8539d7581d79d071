package scenario

// Type names a supported scenario family.
type Type string

const (
	TypeTariffChange   Type = "tariff_change"
	TypeTradeAgreement Type = "trade_agreement"
	TypeEconomicShock  Type = "economic_shock"
	TypeSanctions      Type = "sanctions_impact"
	TypeCarbonTariff   Type = "carbon_tariff"
)

// Severity grades a sanctions scenario.
type Severity string

const (
	SeverityLight    Severity = "Light"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// Request describes one projection to run. Only the parameters matching the
// scenario type are consulted.
type Request struct {
	Name             string   `json:"scenario_name"`
	Description      string   `json:"scenario_description,omitempty"`
	Type             Type     `json:"scenario_type"`
	BaseYear         int      `json:"base_year"`
	ProjectionYears  int      `json:"projection_years"`
	TariffChange     float64  `json:"tariff_change,omitempty"`
	TradeImpact      float64  `json:"trade_impact,omitempty"`
	GDPImpact        float64  `json:"gdp_impact,omitempty"`
	ShockDuration    int      `json:"shock_duration,omitempty"`
	Severity         Severity `json:"severity,omitempty"`
	CarbonTariffRate float64  `json:"carbon_tariff_rate,omitempty"`
}

// EnvProfile carries the environmental inputs a carbon tariff projection
// grounds on.
type EnvProfile struct {
	Country         string  `json:"country"`
	CarbonIntensity float64 `json:"carbon_intensity"`
	CarbonFootprint float64 `json:"carbon_footprint"`
}

// Point is the projected trade index for one year. ChangePct is relative to
// the base index.
type Point struct {
	Year       int     `json:"year"`
	TradeValue float64 `json:"trade_value"`
	ChangePct  float64 `json:"change_pct"`
}

// Result is one completed projection.
type Result struct {
	RunID          string  `json:"run_id"`
	Name           string  `json:"scenario_name"`
	Type           Type    `json:"scenario_type"`
	BaseYear       int     `json:"base_year"`
	Points         []Point `json:"projection"`
	TotalChangePct float64 `json:"total_change_pct"`
}
