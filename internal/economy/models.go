package economy

// Indicator is one economic_indicators row.
type Indicator struct {
	IndicatorID int64   `json:"indicator_id"`
	CountryID   int     `json:"country_id"`
	Country     string  `json:"country,omitempty"`
	Name        string  `json:"indicator_name"`
	Year        int     `json:"year"`
	Value       float64 `json:"indicator_value"`
	Unit        string  `json:"unit,omitempty"`
	Source      string  `json:"source"`
}

// IndicatorPoint is one (country, year, indicator, value) tuple used by the
// pivot and correlation views.
type IndicatorPoint struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Name    string  `json:"indicator_name"`
	Value   float64 `json:"value"`
}

// Correlation is one cell of the pairwise indicator correlation matrix.
type Correlation struct {
	IndicatorA  string  `json:"indicator_a"`
	IndicatorB  string  `json:"indicator_b"`
	Coefficient float64 `json:"coefficient"`
	Samples     int     `json:"samples"`
}

// Environmental is one environmental_metrics row.
type Environmental struct {
	MetricID        int64   `json:"metric_id"`
	CountryID       int     `json:"country_id"`
	Country         string  `json:"country,omitempty"`
	Year            int     `json:"year"`
	CarbonIntensity float64 `json:"carbon_intensity"`
	GreenTradeShare float64 `json:"green_trade_share"`
	TransportEmis   float64 `json:"transport_emissions"`
	CircularScore   float64 `json:"circular_economy_score"`
	RenewableTrade  float64 `json:"renewable_energy_trade"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	Source          string  `json:"source"`
}

// GreenRank is a country ranked by circular economy performance in its latest
// reported year.
type GreenRank struct {
	Country         string  `json:"country"`
	Year            int     `json:"year"`
	CircularScore   float64 `json:"circular_economy_score"`
	GreenTradeShare float64 `json:"green_trade_share"`
	RenewableTrade  float64 `json:"renewable_energy_trade"`
	CarbonIntensity float64 `json:"carbon_intensity"`
	CarbonFootprint float64 `json:"carbon_footprint"`
}
