package collector

import (
	"context"

	"tradewatch/internal/policy"
)

var tariffFixtures = []policy.Tariff{
	{CountryID: 1, PartnerID: 2, CommodityCode: "0101", TariffRate: 2.5, TariffType: "MFN", EffectiveDate: "2023-01-01", Source: "WTO"},
	{CountryID: 1, PartnerID: 3, CommodityCode: "0101", TariffRate: 0.0, TariffType: "preferential", EffectiveDate: "2023-01-01", Source: "WTO"},
}

var sanctionFixtures = []policy.Sanction{
	{SanctioningID: 1, TargetID: 2, Type: "trade",
		Description: "Semiconductor export controls and advanced technology restrictions",
		StartDate:   "2022-10-07", Status: "active", Source: "BIS"},
	{SanctioningID: 1, TargetID: 2, Type: "financial",
		Description: "Entity List restrictions on Huawei, SMIC, and other tech companies",
		StartDate:   "2023-08-01", Status: "active", Source: "OFAC"},
	{SanctioningID: 1, TargetID: 9, Type: "trade",
		Description: "Ongoing steel and aluminum tariff restrictions",
		StartDate:   "2021-01-15", Status: "active", Source: "USTR"},
	{SanctioningID: 1, TargetID: 9, Type: "financial",
		Description: "Financial restrictions on Brazilian companies in US markets",
		StartDate:   "2023-08-15", Status: "active", Source: "OFAC"},
	{SanctioningID: 1, TargetID: 3, Type: "financial",
		Description: "Secondary sanctions on Nord Stream 2 pipeline companies",
		StartDate:   "2021-05-19", Status: "active", Source: "OFAC"},
	{SanctioningID: 1, TargetID: 10, Type: "arms",
		Description: "CAATSA sanctions for S-400 missile system purchase from Russia",
		StartDate:   "2021-12-14", Status: "active", Source: "CAATSA"},
	{SanctioningID: 4, TargetID: 3, Type: "trade",
		Description: "EU sanctions on Russian oil and gas imports",
		StartDate:   "2022-06-03", Status: "active", Source: "EU"},
	{SanctioningID: 1, TargetID: 2, Type: "financial",
		Description: "Secondary sanctions on Chinese companies trading with Iran",
		StartDate:   "2023-11-02", Status: "active", Source: "OFAC"},
}

var policyFixtures = []policy.Measure{
	{CountryID: 1, Name: "USMCA Implementation", Type: "agreement",
		Description:   "US-Mexico-Canada Agreement ongoing implementation",
		EffectiveDate: "2021-01-01", Status: "active", Source: "USTR"},
	{CountryID: 2, Name: "RCEP Agreement", Type: "agreement",
		Description:   "Regional Comprehensive Economic Partnership implementation",
		EffectiveDate: "2022-01-01", Status: "active", Source: "WTO"},
	{CountryID: 4, Name: "EU Green Deal", Type: "regulation",
		Description:   "European Green Deal trade regulations",
		EffectiveDate: "2021-07-14", Status: "active", Source: "EU"},
	{CountryID: 4, Name: "Carbon Border Adjustment Mechanism", Type: "carbon_tariff",
		Description:   "EU carbon border tax on imports",
		EffectiveDate: "2023-10-01", Status: "active", Source: "EU"},
	{CountryID: 1, Name: "Inflation Reduction Act", Type: "green_agreement",
		Description:   "US green energy and trade incentives",
		EffectiveDate: "2022-08-16", Status: "active", Source: "US Congress"},
	{CountryID: 3, Name: "German Circular Economy Act", Type: "circular_policy",
		Description:   "Circular economy regulations for trade",
		EffectiveDate: "2021-06-01", Status: "active", Source: "German Government"},
}

// SeedPolicies loads the curated tariff, sanction and policy rows.
func (c *Collector) SeedPolicies(ctx context.Context) error {
	for i := range tariffFixtures {
		t := tariffFixtures[i]
		if err := c.policies.InsertTariff(ctx, &t); err != nil {
			return err
		}
	}
	for i := range sanctionFixtures {
		s := sanctionFixtures[i]
		if err := c.policies.InsertSanction(ctx, &s); err != nil {
			return err
		}
	}
	for i := range policyFixtures {
		m := policyFixtures[i]
		if err := c.policies.InsertMeasure(ctx, &m); err != nil {
			return err
		}
	}
	return nil
}
