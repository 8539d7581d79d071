package economy

import (
	"context"
	"database/sql"
	"fmt"

	"tradewatch/internal/storage"
)

// SQLStore persists economic indicators and environmental metrics.
type SQLStore struct {
	db *storage.DB
}

func NewStore(db *storage.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) InsertIndicator(ctx context.Context, ind *Indicator) error {
	stmt := s.db.Rebind(`INSERT INTO economic_indicators
		(country_id, indicator_name, year, indicator_value, unit, source)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, stmt,
		ind.CountryID, ind.Name, ind.Year, ind.Value, ind.Unit, ind.Source)
	if err != nil {
		return fmt.Errorf("insert indicator: %w", err)
	}
	return nil
}

func (s *SQLStore) InsertEnvironmental(ctx context.Context, env *Environmental) error {
	stmt := s.db.Rebind(`INSERT INTO environmental_metrics
		(country_id, year, carbon_intensity, green_trade_share, transport_emissions,
		 circular_economy_score, renewable_energy_trade, carbon_footprint, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, stmt,
		env.CountryID, env.Year, env.CarbonIntensity, env.GreenTradeShare,
		env.TransportEmis, env.CircularScore, env.RenewableTrade,
		env.CarbonFootprint, env.Source)
	if err != nil {
		return fmt.Errorf("insert environmental metrics: %w", err)
	}
	return nil
}

// IndicatorCount returns the number of indicator rows.
func (s *SQLStore) IndicatorCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM economic_indicators").Scan(&n); err != nil {
		return 0, fmt.Errorf("count indicators: %w", err)
	}
	return n, nil
}

// IndicatorPoints returns indicator tuples matching the filter, optionally
// narrowed to a single indicator name.
func (s *SQLStore) IndicatorPoints(ctx context.Context, f storage.Filter, name string) ([]IndicatorPoint, error) {
	clause, args := f.Clause("ei.year", "c.country_name")
	query := `SELECT c.country_name, ei.year, ei.indicator_name, ei.indicator_value
		FROM economic_indicators ei
		JOIN countries c ON ei.country_id = c.country_id`
	if name != "" {
		if clause != "" {
			clause += " AND "
		}
		clause += "ei.indicator_name = ?"
		args = append(args, name)
	}
	if clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY c.country_name, ei.indicator_name, ei.year"

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("indicator points: %w", err)
	}
	defer rows.Close()

	var points []IndicatorPoint
	for rows.Next() {
		var p IndicatorPoint
		if err := rows.Scan(&p.Country, &p.Year, &p.Name, &p.Value); err != nil {
			return nil, fmt.Errorf("scan indicator point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// List returns joined indicator rows for export.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Indicator, error) {
	query := `SELECT ei.indicator_id, ei.country_id, c.country_name,
		ei.indicator_name, ei.year, ei.indicator_value,
		COALESCE(ei.unit, ''), COALESCE(ei.source, '')
		FROM economic_indicators ei
		JOIN countries c ON ei.country_id = c.country_id
		ORDER BY c.country_name, ei.indicator_name, ei.year`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list indicators: %w", err)
	}
	defer rows.Close()

	var indicators []Indicator
	for rows.Next() {
		var ind Indicator
		if err := rows.Scan(&ind.IndicatorID, &ind.CountryID, &ind.Country,
			&ind.Name, &ind.Year, &ind.Value, &ind.Unit, &ind.Source); err != nil {
			return nil, fmt.Errorf("scan indicator: %w", err)
		}
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}

// LatestEnvironmental returns each country's most recent environmental row.
func (s *SQLStore) LatestEnvironmental(ctx context.Context) ([]Environmental, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT em.country_id, c.country_name, em.year,
		em.carbon_intensity, em.green_trade_share, em.transport_emissions,
		em.circular_economy_score, em.renewable_energy_trade, em.carbon_footprint,
		COALESCE(em.source, '')
		FROM environmental_metrics em
		JOIN countries c ON em.country_id = c.country_id
		WHERE em.year = (SELECT MAX(e2.year) FROM environmental_metrics e2 WHERE e2.country_id = em.country_id)
		ORDER BY c.country_name`)
	if err != nil {
		return nil, fmt.Errorf("latest environmental metrics: %w", err)
	}
	defer rows.Close()

	return scanEnvironmental(rows)
}

// EnvironmentalTrends returns every environmental row matching the filter,
// ordered for time-series rendering.
func (s *SQLStore) EnvironmentalTrends(ctx context.Context, f storage.Filter) ([]Environmental, error) {
	clause, args := f.Clause("em.year", "c.country_name")
	query := `SELECT em.country_id, c.country_name, em.year,
		em.carbon_intensity, em.green_trade_share, em.transport_emissions,
		em.circular_economy_score, em.renewable_energy_trade, em.carbon_footprint,
		COALESCE(em.source, '')
		FROM environmental_metrics em
		JOIN countries c ON em.country_id = c.country_id`
	if clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY c.country_name, em.year"

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("environmental trends: %w", err)
	}
	defer rows.Close()

	return scanEnvironmental(rows)
}

func scanEnvironmental(rows *sql.Rows) ([]Environmental, error) {
	var metrics []Environmental
	for rows.Next() {
		var e Environmental
		if err := rows.Scan(&e.CountryID, &e.Country, &e.Year,
			&e.CarbonIntensity, &e.GreenTradeShare, &e.TransportEmis,
			&e.CircularScore, &e.RenewableTrade, &e.CarbonFootprint, &e.Source); err != nil {
			return nil, fmt.Errorf("scan environmental metrics: %w", err)
		}
		metrics = append(metrics, e)
	}
	return metrics, rows.Err()
}
