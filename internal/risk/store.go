package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradewatch/internal/storage"
)

// SQLStore persists risk assessments into risk_scores.
type SQLStore struct {
	db *storage.DB
}

func NewStore(db *storage.DB) *SQLStore {
	return &SQLStore{db: db}
}

type factors struct {
	Volatility float64 `json:"trade_volatility"`
	EnvScore   float64 `json:"environmental_score"`
	Composite  float64 `json:"composite_score"`
	Level      Level   `json:"composite_level"`
	Hidden     bool    `json:"hidden_risk"`
}

// Persist writes one trade_risk row per assessment, dated now. Scores cap at
// 100 to satisfy the table constraint.
func (s *SQLStore) Persist(ctx context.Context, assessments []Assessment) error {
	ids, err := s.countryIDs(ctx)
	if err != nil {
		return err
	}

	stmt := s.db.Rebind(`INSERT INTO risk_scores
		(country_id, risk_type, risk_score, risk_factors, assessment_date)
		VALUES (?, ?, ?, ?, ?)`)
	date := time.Now().Format("2006-01-02")
	for _, a := range assessments {
		id, ok := ids[a.Country]
		if !ok {
			return fmt.Errorf("persist risk score: unknown country %q", a.Country)
		}
		blob, err := json.Marshal(factors{
			Volatility: a.Volatility,
			EnvScore:   a.EnvScore,
			Composite:  a.Composite,
			Level:      a.Level,
			Hidden:     a.Hidden,
		})
		if err != nil {
			return fmt.Errorf("marshal risk factors: %w", err)
		}
		score := a.Volatility
		if score > 100 {
			score = 100
		}
		if _, err := s.db.ExecContext(ctx, stmt, id, "trade_risk", score, string(blob), date); err != nil {
			return fmt.Errorf("persist risk score for %s: %w", a.Country, err)
		}
	}
	return nil
}

// Latest returns the most recent persisted score per country and type.
func (s *SQLStore) Latest(ctx context.Context) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rs.risk_id, rs.country_id, c.country_name,
		rs.risk_type, rs.risk_score, COALESCE(rs.risk_factors, ''), COALESCE(rs.assessment_date, '')
		FROM risk_scores rs
		JOIN countries c ON rs.country_id = c.country_id
		WHERE rs.risk_id = (SELECT MAX(r2.risk_id) FROM risk_scores r2
			WHERE r2.country_id = rs.country_id AND r2.risk_type = rs.risk_type)
		ORDER BY rs.risk_score DESC`)
	if err != nil {
		return nil, fmt.Errorf("latest risk scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.RiskID, &sc.CountryID, &sc.Country,
			&sc.RiskType, &sc.RiskScore, &sc.RiskFactors, &sc.AssessmentDate); err != nil {
			return nil, fmt.Errorf("scan risk score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

func (s *SQLStore) countryIDs(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT country_id, country_name FROM countries")
	if err != nil {
		return nil, fmt.Errorf("load countries: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}
