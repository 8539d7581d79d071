package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"tradewatch/internal/economy"
)

const worldBankBaseURL = "https://api.worldbank.org/v2/country"

// worldBankIndicators maps World Bank indicator codes to the names they are
// stored under.
var worldBankIndicators = map[string]string{
	"NY.GDP.MKTP.CD":    "GDP (current US$)",
	"NY.GDP.MKTP.KD.ZG": "GDP growth (annual %)",
	"SL.UEM.TOTL.ZS":    "Unemployment, total (% of total labor force)",
	"FP.CPI.TOTL.ZG":    "Inflation, consumer prices (annual %)",
	"NE.EXP.GNFS.ZS":    "Exports of goods and services (% of GDP)",
	"NE.IMP.GNFS.ZS":    "Imports of goods and services (% of GDP)",
	"NE.RSB.GNFS.ZS":    "External balance on goods and services (% of GDP)",
}

// worldBankCountries maps the two-letter codes the API wants to seeded ids.
var worldBankCountries = []struct {
	code string
	id   int
}{
	{"US", 1}, {"CN", 2}, {"DE", 3}, {"JP", 4}, {"GB", 5},
	{"CA", 6}, {"FR", 7}, {"IT", 8}, {"BR", 9}, {"IN", 10},
}

type worldBankObservation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// CollectWorldBank pulls the configured indicators for every country. The
// API is keyless; per-country failures are logged and skipped.
func (c *Collector) CollectWorldBank(ctx context.Context) error {
	c.logger.Info("collecting world bank indicators")
	for code, name := range worldBankIndicators {
		for _, country := range worldBankCountries {
			if err := c.collectWorldBankSeries(ctx, code, name, country.code, country.id); err != nil {
				c.logger.Warn("world bank series failed",
					"indicator", code, "country", country.code, "error", err)
			}
		}
	}
	return nil
}

func (c *Collector) collectWorldBankSeries(ctx context.Context, code, name, country string, countryID int) error {
	url := fmt.Sprintf("%s/%s/indicator/%s?format=json&per_page=1000&date=%d:%d",
		c.worldBankURL, country, code, c.startYear, c.endYear)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// The payload is a two-element array: metadata, then observations.
	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope) < 2 {
		return nil
	}
	var observations []worldBankObservation
	if err := json.Unmarshal(envelope[1], &observations); err != nil {
		return fmt.Errorf("decode observations: %w", err)
	}

	for _, obs := range observations {
		if obs.Value == nil {
			continue
		}
		year, err := strconv.Atoi(obs.Date)
		if err != nil {
			continue
		}
		ind := economy.Indicator{
			CountryID: countryID,
			Name:      name,
			Year:      year,
			Value:     *obs.Value,
			Source:    "World Bank",
		}
		if err := c.econ.InsertIndicator(ctx, &ind); err != nil {
			return fmt.Errorf("save observation: %w", err)
		}
	}
	return nil
}
