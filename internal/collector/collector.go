package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tradewatch/internal/economy"
	"tradewatch/internal/policy"
	"tradewatch/internal/trade"
)

// TradeStore accepts generated trade records.
type TradeStore interface {
	Insert(ctx context.Context, rec *trade.Record) error
}

// EconomyStore accepts generated indicators and environmental metrics.
type EconomyStore interface {
	InsertIndicator(ctx context.Context, ind *economy.Indicator) error
	InsertEnvironmental(ctx context.Context, env *economy.Environmental) error
}

// PolicyStore accepts the tariff, sanction and policy fixtures.
type PolicyStore interface {
	InsertTariff(ctx context.Context, t *policy.Tariff) error
	InsertSanction(ctx context.Context, s *policy.Sanction) error
	InsertMeasure(ctx context.Context, m *policy.Measure) error
}

// Collector populates the database with deterministic sample data and,
// when enabled, observations pulled from public APIs.
type Collector struct {
	trades   TradeStore
	econ     EconomyStore
	policies PolicyStore
	logger   *slog.Logger
	client   *http.Client

	startYear int
	endYear   int

	worldBankURL string
	fredURL      string

	// WorldBank enables the keyless World Bank indicator pull.
	WorldBank bool
	// FREDKey enables the FRED pull when non-empty.
	FREDKey string
}

func New(trades TradeStore, econ EconomyStore, policies PolicyStore, logger *slog.Logger, startYear, endYear int) *Collector {
	return &Collector{
		trades:    trades,
		econ:      econ,
		policies:  policies,
		logger:    logger,
		client:    &http.Client{Timeout: 30 * time.Second},
		startYear: startYear,
		endYear:   endYear,

		worldBankURL: worldBankBaseURL,
		fredURL:      fredBaseURL,
	}
}

// Run generates the full sample dataset and then attempts any enabled live
// pulls. Live failures are logged and skipped so setup never blocks on an
// unreachable API.
func (c *Collector) Run(ctx context.Context) error {
	c.logger.Info("generating sample trade data", "start_year", c.startYear, "end_year", c.endYear)
	if err := c.SampleTrade(ctx); err != nil {
		return fmt.Errorf("sample trade data: %w", err)
	}

	c.logger.Info("generating sample economic indicators")
	if err := c.SampleIndicators(ctx); err != nil {
		return fmt.Errorf("sample economic indicators: %w", err)
	}

	c.logger.Info("generating sample environmental metrics")
	if err := c.SampleEnvironmental(ctx); err != nil {
		return fmt.Errorf("sample environmental metrics: %w", err)
	}

	c.logger.Info("loading policy fixtures")
	if err := c.SeedPolicies(ctx); err != nil {
		return fmt.Errorf("policy fixtures: %w", err)
	}

	if c.WorldBank {
		if err := c.CollectWorldBank(ctx); err != nil {
			c.logger.Warn("world bank collection failed, continuing", "error", err)
		}
	}
	if c.FREDKey != "" {
		if err := c.CollectFRED(ctx); err != nil {
			c.logger.Warn("fred collection failed, continuing", "error", err)
		}
	}
	return nil
}
