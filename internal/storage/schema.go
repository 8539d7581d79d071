package storage

import (
	"context"
	"fmt"
)

// CreateSchema creates every table and index the service relies on. All
// statements are idempotent so setup can be re-run against an existing
// database.
func CreateSchema(ctx context.Context, db *DB) error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.Dialect == DialectPostgres {
		id = "SERIAL PRIMARY KEY"
	}

	tables := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS countries (
			country_id %s,
			country_code TEXT UNIQUE NOT NULL,
			country_name TEXT NOT NULL,
			region TEXT,
			income_group TEXT,
			gdp_2022 REAL,
			population_2022 INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, id),
		// trade_data carries no partner FK: world-level rows store partner id 0,
		// which references no country row.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS trade_data (
			trade_id %s,
			year INTEGER NOT NULL,
			month INTEGER,
			reporter_country_id INTEGER,
			partner_country_id INTEGER,
			commodity_code TEXT,
			commodity_description TEXT,
			trade_flow TEXT CHECK(trade_flow IN ('import', 'export')),
			value_usd REAL,
			quantity REAL,
			unit TEXT,
			source TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (reporter_country_id) REFERENCES countries (country_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS economic_indicators (
			indicator_id %s,
			country_id INTEGER,
			year INTEGER NOT NULL,
			quarter INTEGER,
			indicator_name TEXT NOT NULL,
			indicator_value REAL,
			unit TEXT,
			source TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (country_id) REFERENCES countries (country_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS tariffs (
			tariff_id %s,
			country_id INTEGER,
			partner_country_id INTEGER,
			commodity_code TEXT,
			tariff_rate REAL,
			tariff_type TEXT CHECK(tariff_type IN ('MFN', 'preferential', 'safeguard')),
			effective_date DATE,
			expiry_date DATE,
			source TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (country_id) REFERENCES countries (country_id),
			FOREIGN KEY (partner_country_id) REFERENCES countries (country_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sanctions (
			sanction_id %s,
			sanctioning_country_id INTEGER,
			target_country_id INTEGER,
			sanction_type TEXT CHECK(sanction_type IN ('trade', 'financial', 'travel', 'arms', 'other')),
			description TEXT,
			start_date DATE,
			end_date DATE,
			status TEXT CHECK(status IN ('active', 'suspended', 'lifted')),
			source TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (sanctioning_country_id) REFERENCES countries (country_id),
			FOREIGN KEY (target_country_id) REFERENCES countries (country_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS trade_policies (
			policy_id %s,
			country_id INTEGER,
			policy_name TEXT NOT NULL,
			policy_type TEXT CHECK(policy_type IN ('tariff', 'quota', 'subsidy', 'regulation', 'agreement', 'carbon_tariff', 'green_agreement', 'circular_policy')),
			description TEXT,
			effective_date DATE,
			expiry_date DATE,
			status TEXT CHECK(status IN ('active', 'proposed', 'expired')),
			source TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (country_id) REFERENCES countries (country_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS environmental_metrics (
			metric_id %s,
			country_id INTEGER,
			year INTEGER NOT NULL,
			carbon_intensity REAL,
			green_trade_share REAL,
			transport_emissions REAL,
			circular_economy_score REAL,
			renewable_energy_trade REAL,
			carbon_footprint REAL,
			source TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (country_id) REFERENCES countries (country_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sectors (
			sector_id %s,
			sector_code TEXT UNIQUE NOT NULL,
			sector_name TEXT NOT NULL,
			parent_sector_id INTEGER,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (parent_sector_id) REFERENCES sectors (sector_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS analysis_results (
			result_id %s,
			analysis_type TEXT NOT NULL,
			country_id INTEGER,
			partner_country_id INTEGER,
			sector_id INTEGER,
			analysis_date DATE,
			model_used TEXT,
			parameters TEXT,
			results TEXT,
			confidence_interval REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (country_id) REFERENCES countries (country_id),
			FOREIGN KEY (partner_country_id) REFERENCES countries (country_id),
			FOREIGN KEY (sector_id) REFERENCES sectors (sector_id)
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS scenarios (
			scenario_id %s,
			scenario_name TEXT NOT NULL,
			scenario_description TEXT,
			scenario_type TEXT CHECK(scenario_type IN ('tariff_change', 'trade_agreement', 'economic_shock', 'sanctions_impact', 'carbon_tariff')),
			base_year INTEGER,
			projection_years INTEGER,
			parameters TEXT,
			created_by TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, id),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS risk_scores (
			risk_id %s,
			country_id INTEGER,
			risk_type TEXT CHECK(risk_type IN ('trade_risk', 'policy_risk', 'economic_risk', 'sanction_risk')),
			risk_score REAL CHECK(risk_score >= 0 AND risk_score <= 100),
			risk_factors TEXT,
			assessment_date DATE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (country_id) REFERENCES countries (country_id)
		)`, id),
	}

	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_trade_data_year ON trade_data(year)",
		"CREATE INDEX IF NOT EXISTS idx_trade_data_countries ON trade_data(reporter_country_id, partner_country_id)",
		"CREATE INDEX IF NOT EXISTS idx_trade_data_flow ON trade_data(trade_flow)",
		"CREATE INDEX IF NOT EXISTS idx_economic_indicators_country_year ON economic_indicators(country_id, year)",
		"CREATE INDEX IF NOT EXISTS idx_tariffs_countries ON tariffs(country_id, partner_country_id)",
		"CREATE INDEX IF NOT EXISTS idx_sanctions_target ON sanctions(target_country_id)",
		"CREATE INDEX IF NOT EXISTS idx_analysis_results_type_date ON analysis_results(analysis_type, analysis_date)",
		"CREATE INDEX IF NOT EXISTS idx_risk_scores_country_type ON risk_scores(country_id, risk_type)",
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// SeedCountry is one reference country row.
type SeedCountry struct {
	Code       string
	Name       string
	Region     string
	IncomeGrp  string
	GDP        float64
	Population int64
}

// SeedCountries lists the reference countries in insertion order, which fixes
// their ids 1..10 on a fresh database.
var SeedCountries = []SeedCountry{
	{"USA", "United States", "North America", "High income", 25462700, 331002651},
	{"CHN", "China", "Asia", "Upper middle income", 17963170, 1439323776},
	{"DEU", "Germany", "Europe", "High income", 4072191, 83190556},
	{"JPN", "Japan", "Asia", "High income", 4231141, 125836021},
	{"GBR", "United Kingdom", "Europe", "High income", 3070667, 67215293},
	{"CAN", "Canada", "North America", "High income", 2139840, 37742154},
	{"FRA", "France", "Europe", "High income", 2782905, 65273511},
	{"ITA", "Italy", "Europe", "High income", 2010430, 60461826},
	{"BRA", "Brazil", "South America", "Upper middle income", 1920095, 212559417},
	{"IND", "India", "Asia", "Lower middle income", 3385090, 1380004385},
}

// Seed inserts the reference countries, skipping any that already exist.
func Seed(ctx context.Context, db *DB) error {
	stmt := db.Rebind(`INSERT INTO countries
		(country_code, country_name, region, income_group, gdp_2022, population_2022)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (country_code) DO NOTHING`)
	for _, c := range SeedCountries {
		if _, err := db.ExecContext(ctx, stmt, c.Code, c.Name, c.Region, c.IncomeGrp, c.GDP, c.Population); err != nil {
			return fmt.Errorf("seed country %s: %w", c.Code, err)
		}
	}
	return nil
}
