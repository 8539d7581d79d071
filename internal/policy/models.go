package policy

// Tariff is one tariffs row.
type Tariff struct {
	TariffID      int64   `json:"tariff_id"`
	CountryID     int     `json:"country_id"`
	Country       string  `json:"country,omitempty"`
	PartnerID     int     `json:"partner_country_id"`
	Partner       string  `json:"partner_country,omitempty"`
	CommodityCode string  `json:"commodity_code"`
	TariffRate    float64 `json:"tariff_rate"`
	TariffType    string  `json:"tariff_type"`
	EffectiveDate string  `json:"effective_date"`
	ExpiryDate    string  `json:"expiry_date,omitempty"`
	Source        string  `json:"source"`
}

// Sanction is one sanctions row.
type Sanction struct {
	SanctionID    int64  `json:"sanction_id"`
	SanctioningID int    `json:"sanctioning_country_id"`
	Sanctioning   string `json:"sanctioning_country,omitempty"`
	TargetID      int    `json:"target_country_id"`
	Target        string `json:"target_country,omitempty"`
	Type          string `json:"sanction_type"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date,omitempty"`
	Status        string `json:"status"`
	Source        string `json:"source"`
}

// Measure is one trade_policies row.
type Measure struct {
	PolicyID      int64  `json:"policy_id"`
	CountryID     int    `json:"country_id"`
	Country       string `json:"country,omitempty"`
	Name          string `json:"policy_name"`
	Type          string `json:"policy_type"`
	Description   string `json:"description"`
	EffectiveDate string `json:"effective_date"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	Status        string `json:"status"`
	Source        string `json:"source"`
}

// TariffPair is the average tariff rate a country applies to one partner.
type TariffPair struct {
	Country string  `json:"country"`
	Partner string  `json:"partner_country"`
	AvgRate float64 `json:"avg_tariff_rate"`
}

// SanctionSummary counts active sanctions against one target by type.
type SanctionSummary struct {
	Target string `json:"target_country"`
	Type   string `json:"sanction_type"`
	Count  int    `json:"count"`
}
