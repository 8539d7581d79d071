package trade

import (
	"context"
	"fmt"

	"tradewatch/internal/storage"
)

// SQLStore persists and aggregates trade records.
type SQLStore struct {
	db *storage.DB
}

func NewStore(db *storage.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Insert(ctx context.Context, rec *Record) error {
	stmt := s.db.Rebind(`INSERT INTO trade_data
		(year, reporter_country_id, partner_country_id, commodity_code,
		 commodity_description, trade_flow, value_usd, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, stmt,
		rec.Year, rec.ReporterID, rec.PartnerID, rec.Commodity,
		rec.Description, string(rec.Flow), rec.ValueUSD, rec.Source)
	if err != nil {
		return fmt.Errorf("insert trade record: %w", err)
	}
	return nil
}

// Count returns the number of trade records.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trade_data").Scan(&n); err != nil {
		return 0, fmt.Errorf("count trade records: %w", err)
	}
	return n, nil
}

// FlowSummary sums value_usd per reporter country, year and flow.
func (s *SQLStore) FlowSummary(ctx context.Context, f storage.Filter) ([]FlowPoint, error) {
	clause, args := f.Clause("td.year", "c.country_name")
	query := `SELECT c.country_name, td.year, td.trade_flow, SUM(td.value_usd)
		FROM trade_data td
		JOIN countries c ON td.reporter_country_id = c.country_id`
	if clause != "" {
		query += " WHERE " + clause
	}
	query += " GROUP BY c.country_name, td.year, td.trade_flow ORDER BY c.country_name, td.year, td.trade_flow"

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("flow summary: %w", err)
	}
	defer rows.Close()

	var points []FlowPoint
	for rows.Next() {
		var p FlowPoint
		if err := rows.Scan(&p.Country, &p.Year, &p.Flow, &p.Value); err != nil {
			return nil, fmt.Errorf("scan flow summary: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Values returns every (country, year, value) tuple matching the filter, for
// volatility statistics computed in the service layer.
func (s *SQLStore) Values(ctx context.Context, f storage.Filter) ([]CountryYearValue, error) {
	clause, args := f.Clause("td.year", "c.country_name")
	query := `SELECT c.country_name, td.year, td.value_usd
		FROM trade_data td
		JOIN countries c ON td.reporter_country_id = c.country_id`
	if clause != "" {
		query += " WHERE " + clause
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("trade values: %w", err)
	}
	defer rows.Close()

	var values []CountryYearValue
	for rows.Next() {
		var v CountryYearValue
		if err := rows.Scan(&v.Country, &v.Year, &v.Value); err != nil {
			return nil, fmt.Errorf("scan trade value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// PartnerTotals sums bilateral trade per reporter/partner pair. World-level
// records resolve to the partner name "World".
func (s *SQLStore) PartnerTotals(ctx context.Context, f storage.Filter) ([]PartnerTotal, error) {
	clause, args := f.Clause("td.year", "c1.country_name")
	query := `SELECT c1.country_name, COALESCE(c2.country_name, 'World'), SUM(td.value_usd)
		FROM trade_data td
		JOIN countries c1 ON td.reporter_country_id = c1.country_id
		LEFT JOIN countries c2 ON td.partner_country_id = c2.country_id`
	if clause != "" {
		query += " WHERE " + clause
	}
	query += " GROUP BY c1.country_name, c2.country_name ORDER BY SUM(td.value_usd) DESC"

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("partner totals: %w", err)
	}
	defer rows.Close()

	var totals []PartnerTotal
	for rows.Next() {
		var t PartnerTotal
		if err := rows.Scan(&t.Reporter, &t.Partner, &t.Value); err != nil {
			return nil, fmt.Errorf("scan partner total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// YearlyFlowTotals sums global trade per year and flow.
func (s *SQLStore) YearlyFlowTotals(ctx context.Context) ([]YearFlowTotal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT year, trade_flow, SUM(value_usd)
		FROM trade_data GROUP BY year, trade_flow ORDER BY year, trade_flow`)
	if err != nil {
		return nil, fmt.Errorf("yearly flow totals: %w", err)
	}
	defer rows.Close()

	var totals []YearFlowTotal
	for rows.Next() {
		var t YearFlowTotal
		if err := rows.Scan(&t.Year, &t.Flow, &t.Value); err != nil {
			return nil, fmt.Errorf("scan yearly flow total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// List returns joined trade rows, newest and largest first, for export.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT td.trade_id, td.year, td.reporter_country_id, td.partner_country_id,
		c1.country_name, COALESCE(c2.country_name, 'World'),
		COALESCE(td.commodity_code, ''), COALESCE(td.commodity_description, ''),
		td.trade_flow, td.value_usd, COALESCE(td.source, '')
		FROM trade_data td
		JOIN countries c1 ON td.reporter_country_id = c1.country_id
		LEFT JOIN countries c2 ON td.partner_country_id = c2.country_id
		ORDER BY td.year DESC, td.value_usd DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list trade records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.TradeID, &r.Year, &r.ReporterID, &r.PartnerID,
			&r.Reporter, &r.Partner, &r.Commodity, &r.Description,
			&r.Flow, &r.ValueUSD, &r.Source); err != nil {
			return nil, fmt.Errorf("scan trade record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
