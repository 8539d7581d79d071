package policy

import (
	"context"
	"fmt"

	"tradewatch/internal/storage"
)

// SQLStore persists tariffs, sanctions and trade policy measures.
type SQLStore struct {
	db *storage.DB
}

func NewStore(db *storage.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) InsertTariff(ctx context.Context, t *Tariff) error {
	stmt := s.db.Rebind(`INSERT INTO tariffs
		(country_id, partner_country_id, commodity_code, tariff_rate,
		 tariff_type, effective_date, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, stmt,
		t.CountryID, t.PartnerID, t.CommodityCode, t.TariffRate,
		t.TariffType, t.EffectiveDate, t.Source)
	if err != nil {
		return fmt.Errorf("insert tariff: %w", err)
	}
	return nil
}

func (s *SQLStore) InsertSanction(ctx context.Context, sa *Sanction) error {
	stmt := s.db.Rebind(`INSERT INTO sanctions
		(sanctioning_country_id, target_country_id, sanction_type,
		 description, start_date, status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, stmt,
		sa.SanctioningID, sa.TargetID, sa.Type,
		sa.Description, sa.StartDate, sa.Status, sa.Source)
	if err != nil {
		return fmt.Errorf("insert sanction: %w", err)
	}
	return nil
}

func (s *SQLStore) InsertMeasure(ctx context.Context, m *Measure) error {
	stmt := s.db.Rebind(`INSERT INTO trade_policies
		(country_id, policy_name, policy_type, description,
		 effective_date, status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, stmt,
		m.CountryID, m.Name, m.Type, m.Description,
		m.EffectiveDate, m.Status, m.Source)
	if err != nil {
		return fmt.Errorf("insert policy measure: %w", err)
	}
	return nil
}

// Tariffs returns joined tariff rows, highest rates first.
func (s *SQLStore) Tariffs(ctx context.Context) ([]Tariff, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT t.tariff_id, t.country_id, c1.country_name,
		t.partner_country_id, c2.country_name,
		COALESCE(t.commodity_code, ''), t.tariff_rate, COALESCE(t.tariff_type, ''),
		COALESCE(t.effective_date, ''), COALESCE(t.expiry_date, ''), COALESCE(t.source, '')
		FROM tariffs t
		JOIN countries c1 ON t.country_id = c1.country_id
		JOIN countries c2 ON t.partner_country_id = c2.country_id
		ORDER BY t.tariff_rate DESC, t.tariff_id`)
	if err != nil {
		return nil, fmt.Errorf("list tariffs: %w", err)
	}
	defer rows.Close()

	var tariffs []Tariff
	for rows.Next() {
		var t Tariff
		if err := rows.Scan(&t.TariffID, &t.CountryID, &t.Country,
			&t.PartnerID, &t.Partner, &t.CommodityCode, &t.TariffRate,
			&t.TariffType, &t.EffectiveDate, &t.ExpiryDate, &t.Source); err != nil {
			return nil, fmt.Errorf("scan tariff: %w", err)
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}

// AvgTariffPairs averages tariff rates per (country, partner) pair.
func (s *SQLStore) AvgTariffPairs(ctx context.Context) ([]TariffPair, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT c1.country_name, c2.country_name, AVG(t.tariff_rate)
		FROM tariffs t
		JOIN countries c1 ON t.country_id = c1.country_id
		JOIN countries c2 ON t.partner_country_id = c2.country_id
		GROUP BY c1.country_name, c2.country_name
		ORDER BY AVG(t.tariff_rate) DESC`)
	if err != nil {
		return nil, fmt.Errorf("average tariff pairs: %w", err)
	}
	defer rows.Close()

	var pairs []TariffPair
	for rows.Next() {
		var p TariffPair
		if err := rows.Scan(&p.Country, &p.Partner, &p.AvgRate); err != nil {
			return nil, fmt.Errorf("scan tariff pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// Sanctions returns joined sanction rows, newest first.
func (s *SQLStore) Sanctions(ctx context.Context) ([]Sanction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sa.sanction_id,
		sa.sanctioning_country_id, c1.country_name,
		sa.target_country_id, c2.country_name,
		COALESCE(sa.sanction_type, ''), COALESCE(sa.description, ''),
		COALESCE(sa.start_date, ''), COALESCE(sa.end_date, ''),
		COALESCE(sa.status, ''), COALESCE(sa.source, '')
		FROM sanctions sa
		JOIN countries c1 ON sa.sanctioning_country_id = c1.country_id
		JOIN countries c2 ON sa.target_country_id = c2.country_id
		ORDER BY sa.start_date DESC, sa.sanction_id`)
	if err != nil {
		return nil, fmt.Errorf("list sanctions: %w", err)
	}
	defer rows.Close()

	var sanctions []Sanction
	for rows.Next() {
		var sa Sanction
		if err := rows.Scan(&sa.SanctionID, &sa.SanctioningID, &sa.Sanctioning,
			&sa.TargetID, &sa.Target, &sa.Type, &sa.Description,
			&sa.StartDate, &sa.EndDate, &sa.Status, &sa.Source); err != nil {
			return nil, fmt.Errorf("scan sanction: %w", err)
		}
		sanctions = append(sanctions, sa)
	}
	return sanctions, rows.Err()
}

// ActiveSanctionSummary counts active sanctions per target country and type.
func (s *SQLStore) ActiveSanctionSummary(ctx context.Context) ([]SanctionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT c.country_name, sa.sanction_type, COUNT(*)
		FROM sanctions sa
		JOIN countries c ON sa.target_country_id = c.country_id
		WHERE sa.status = 'active'
		GROUP BY c.country_name, sa.sanction_type
		ORDER BY COUNT(*) DESC, c.country_name`)
	if err != nil {
		return nil, fmt.Errorf("sanction summary: %w", err)
	}
	defer rows.Close()

	var summary []SanctionSummary
	for rows.Next() {
		var row SanctionSummary
		if err := rows.Scan(&row.Target, &row.Type, &row.Count); err != nil {
			return nil, fmt.Errorf("scan sanction summary: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

// Measures returns joined trade policy rows, optionally only active ones.
func (s *SQLStore) Measures(ctx context.Context, activeOnly bool) ([]Measure, error) {
	query := `SELECT tp.policy_id, tp.country_id, c.country_name,
		tp.policy_name, COALESCE(tp.policy_type, ''), COALESCE(tp.description, ''),
		COALESCE(tp.effective_date, ''), COALESCE(tp.expiry_date, ''),
		COALESCE(tp.status, ''), COALESCE(tp.source, '')
		FROM trade_policies tp
		JOIN countries c ON tp.country_id = c.country_id`
	if activeOnly {
		query += " WHERE tp.status = 'active'"
	}
	query += " ORDER BY tp.effective_date DESC, tp.policy_id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list policy measures: %w", err)
	}
	defer rows.Close()

	var measures []Measure
	for rows.Next() {
		var m Measure
		if err := rows.Scan(&m.PolicyID, &m.CountryID, &m.Country,
			&m.Name, &m.Type, &m.Description, &m.EffectiveDate,
			&m.ExpiryDate, &m.Status, &m.Source); err != nil {
			return nil, fmt.Errorf("scan policy measure: %w", err)
		}
		measures = append(measures, m)
	}
	return measures, rows.Err()
}

// Counts returns the number of tariff, sanction and policy rows.
func (s *SQLStore) Counts(ctx context.Context) (tariffs, sanctions, measures int, err error) {
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tariffs").Scan(&tariffs); err != nil {
		return 0, 0, 0, fmt.Errorf("count tariffs: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sanctions").Scan(&sanctions); err != nil {
		return 0, 0, 0, fmt.Errorf("count sanctions: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trade_policies").Scan(&measures); err != nil {
		return 0, 0, 0, fmt.Errorf("count policy measures: %w", err)
	}
	return tariffs, sanctions, measures, nil
}
