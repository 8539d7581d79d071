package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tradewatch/internal/economy"
)

const fredBaseURL = "https://api.stlouisfed.org/fred/series/observations"

// fredSeries lists the US series pulled from FRED.
var fredSeries = []string{"GDP", "UNRATE", "CPIAUCSL", "EXUSEU", "DGS10"}

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// CollectFRED pulls each configured series. Observations land under the
// FRED_<series> indicator name against the US. Missing values, which the API
// marks with a bare dot, are skipped.
func (c *Collector) CollectFRED(ctx context.Context) error {
	c.logger.Info("collecting fred series")
	for _, series := range fredSeries {
		if err := c.collectFREDSeries(ctx, series); err != nil {
			c.logger.Warn("fred series failed", "series", series, "error", err)
		}
	}
	return nil
}

func (c *Collector) collectFREDSeries(ctx context.Context, series string) error {
	params := url.Values{}
	params.Set("series_id", series)
	params.Set("api_key", c.FREDKey)
	params.Set("file_type", "json")
	params.Set("observation_start", fmt.Sprintf("%d-01-01", c.startYear))
	params.Set("observation_end", fmt.Sprintf("%d-12-31", c.endYear))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fredURL+"?"+params.Encode(), nil)
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

	var payload fredResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	for _, obs := range payload.Observations {
		if obs.Value == "." || obs.Value == "" || len(obs.Date) < 4 {
			continue
		}
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(obs.Date[:4])
		if err != nil {
			continue
		}
		ind := economy.Indicator{
			CountryID: 1,
			Name:      "FRED_" + series,
			Year:      year,
			Value:     value,
			Source:    "FRED",
		}
		if err := c.econ.InsertIndicator(ctx, &ind); err != nil {
			return fmt.Errorf("save observation: %w", err)
		}
	}
	return nil
}
