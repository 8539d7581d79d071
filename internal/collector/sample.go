package collector

import (
	"context"
	"strconv"

	"tradewatch/internal/economy"
	"tradewatch/internal/trade"
)

const sampleSource = "Sample Data"

type sampleCountry struct {
	code    string
	id      int
	imports float64
	exports float64
}

// sampleCountries lists the reference countries with baseline annual trade
// values in USD. Ids match the seeded countries table.
var sampleCountries = []sampleCountry{
	{"USA", 1, 25000000, 30000000},
	{"CHN", 2, 28000000, 35000000},
	{"DEU", 3, 15000000, 18000000},
	{"JPN", 4, 8000000, 10000000},
	{"GBR", 5, 7000000, 8000000},
	{"CAN", 6, 5000000, 6000000},
	{"FRA", 7, 6000000, 7000000},
	{"ITA", 8, 5000000, 6000000},
	{"BRA", 9, 3000000, 4000000},
	{"IND", 10, 4000000, 5000000},
}

// SampleTrade generates world-level and bilateral trade records for every
// country and year. Values grow 5% (imports) and 6% (exports) a year with a
// small deterministic jitter on top.
func (c *Collector) SampleTrade(ctx context.Context) error {
	for year := c.startYear; year <= c.endYear; year++ {
		ys := strconv.Itoa(year)
		for _, country := range sampleCountries {
			// jitter is unsigned, so convert before subtracting or the
			// noise wraps around instead of centering on zero.
			noise := float64(int(jitter(country.code, ys)%100)-50) / 1000
			importVariation := 1 + float64(year-c.startYear)*0.05 + noise
			exportVariation := 1 + float64(year-c.startYear)*0.06 + noise

			importValue := country.imports * importVariation
			exportValue := country.exports * exportVariation

			if err := c.insertTrade(ctx, year, country.id, trade.WorldPartnerID, trade.FlowImport, importValue); err != nil {
				return err
			}
			if err := c.insertTrade(ctx, year, country.id, trade.WorldPartnerID, trade.FlowExport, exportValue); err != nil {
				return err
			}

			for _, partner := range sampleCountries {
				if partner.code == country.code {
					continue
				}
				factor := 0.1 + float64(jitter(country.code, partner.code, ys)%50)/1000
				if err := c.insertTrade(ctx, year, country.id, partner.id, trade.FlowImport, importValue*factor); err != nil {
					return err
				}
				if err := c.insertTrade(ctx, year, country.id, partner.id, trade.FlowExport, exportValue*factor); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *Collector) insertTrade(ctx context.Context, year, reporter, partner int, flow trade.Flow, value float64) error {
	return c.trades.Insert(ctx, &trade.Record{
		Year:        year,
		ReporterID:  reporter,
		PartnerID:   partner,
		Commodity:   "TOTAL",
		Description: "Total Trade",
		Flow:        flow,
		ValueUSD:    value,
		Source:      sampleSource,
	})
}

type sampleIndicator struct {
	name   string
	base   float64
	growth float64
}

var sampleIndicators = []sampleIndicator{
	{"GDP (current US$)", 2000000, 0.03},
	{"GDP growth (annual %)", 2.5, 0.1},
	{"Unemployment Rate (%)", 5.0, -0.2},
	{"Inflation Rate (%)", 2.0, 0.1},
	{"Exports (% of GDP)", 25.0, 0.5},
	{"Imports (% of GDP)", 22.0, 0.3},
	{"Trade Balance (% of GDP)", 3.0, 0.2},
}

// SampleIndicators generates every indicator for every country and year,
// trending from its base by a fixed annual growth plus jitter.
func (c *Collector) SampleIndicators(ctx context.Context) error {
	for year := c.startYear; year <= c.endYear; year++ {
		ys := strconv.Itoa(year)
		for _, country := range sampleCountries {
			for _, ind := range sampleIndicators {
				variation := 1 + float64(year-c.startYear)*ind.growth +
					float64(int(jitter(country.code, ind.name, ys)%100)-50)/1000
				err := c.econ.InsertIndicator(ctx, &economy.Indicator{
					CountryID: country.id,
					Name:      ind.name,
					Year:      year,
					Value:     ind.base * variation,
					Source:    sampleSource,
				})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// SampleEnvironmental generates per-country environmental metrics. China
// profiles carbon-heavy but improving, Germany leads on green trade, the US
// sits in between, and everyone else gets a varied middle profile.
func (c *Collector) SampleEnvironmental(ctx context.Context) error {
	for year := c.startYear; year <= c.endYear; year++ {
		ys := strconv.Itoa(year)
		elapsed := float64(year - c.startYear)
		for _, country := range sampleCountries {
			h := jitter(country.code, ys)
			env := economy.Environmental{
				CountryID: country.id,
				Year:      year,
				Source:    "Sample Environmental Data",
			}
			switch country.code {
			case "CHN":
				env.CarbonIntensity = 0.8 + float64(h%100)/1000
				env.GreenTradeShare = 15.0 + elapsed*2.0
				env.TransportEmis = 45.0 + float64(h%50)/10
				env.CircularScore = 35.0 + elapsed*3.0
				env.RenewableTrade = 25.0 + elapsed*5.0
				env.CarbonFootprint = 120.0 + float64(h%100)/10
			case "DEU":
				env.CarbonIntensity = 0.3 + float64(h%100)/1000
				env.GreenTradeShare = 45.0 + elapsed*3.0
				env.TransportEmis = 25.0 + float64(h%30)/10
				env.CircularScore = 75.0 + elapsed*2.0
				env.RenewableTrade = 85.0 + elapsed*3.0
				env.CarbonFootprint = 45.0 + float64(h%50)/10
			case "USA":
				env.CarbonIntensity = 0.5 + float64(h%100)/1000
				env.GreenTradeShare = 25.0 + elapsed*2.5
				env.TransportEmis = 35.0 + float64(h%40)/10
				env.CircularScore = 50.0 + elapsed*2.5
				env.RenewableTrade = 40.0 + elapsed*4.0
				env.CarbonFootprint = 65.0 + float64(h%60)/10
			default:
				env.CarbonIntensity = 0.4 + float64(h%100)/1000
				env.GreenTradeShare = 20.0 + elapsed*2.0 + float64(h%100)/10
				env.TransportEmis = 30.0 + float64(h%40)/10
				env.CircularScore = 40.0 + elapsed*2.0 + float64(h%100)/10
				env.RenewableTrade = 30.0 + elapsed*3.0 + float64(h%100)/10
				env.CarbonFootprint = 55.0 + float64(h%50)/10
			}
			if err := c.econ.InsertEnvironmental(ctx, &env); err != nil {
				return err
			}
		}
	}
	return nil
}
