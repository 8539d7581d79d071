package trade

// Flow classifies a trade value as import or export.
type Flow string

const (
	FlowImport Flow = "import"
	FlowExport Flow = "export"
)

// WorldPartnerID marks records reported against the world rather than a
// single partner country.
const WorldPartnerID = 0

// Record is one trade_data row.
type Record struct {
	TradeID     int64   `json:"trade_id"`
	Year        int     `json:"year"`
	ReporterID  int     `json:"reporter_country_id"`
	PartnerID   int     `json:"partner_country_id"`
	Reporter    string  `json:"reporter_country,omitempty"`
	Partner     string  `json:"partner_country,omitempty"`
	Commodity   string  `json:"commodity_code"`
	Description string  `json:"commodity_description"`
	Flow        Flow    `json:"trade_flow"`
	ValueUSD    float64 `json:"value_usd"`
	Source      string  `json:"source"`
}

// FlowPoint is a per-country, per-year, per-flow aggregate.
type FlowPoint struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Flow    Flow    `json:"trade_flow"`
	Value   float64 `json:"value_usd"`
}

// Balance is the import/export pivot for one country and year.
type Balance struct {
	Country    string  `json:"country"`
	Year       int     `json:"year"`
	Exports    float64 `json:"exports"`
	Imports    float64 `json:"imports"`
	Balance    float64 `json:"balance"`
	BalancePct float64 `json:"balance_pct"`
	TotalTrade float64 `json:"total_trade"`
}

// PartnerTotal is total trade between a reporter and one partner.
type PartnerTotal struct {
	Reporter string  `json:"reporter_country"`
	Partner  string  `json:"partner_country"`
	Value    float64 `json:"value_usd"`
}

// TraderRank is a country ranked by average total trade across years.
type TraderRank struct {
	Country  string  `json:"country"`
	AvgTrade float64 `json:"avg_total_trade"`
}

// CountryYearValue is one raw trade value tagged with its reporter and year.
type CountryYearValue struct {
	Country string
	Year    int
	Value   float64
}

// YearFlowTotal is the global total per year and flow, used by charts and the
// workbook.
type YearFlowTotal struct {
	Year  int     `json:"year"`
	Flow  Flow    `json:"trade_flow"`
	Value float64 `json:"value_usd"`
}
