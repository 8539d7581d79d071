package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradewatch/internal/storage"
)

// SQLStore records scenario definitions and their projection results.
type SQLStore struct {
	db *storage.DB
}

func NewStore(db *storage.DB) *SQLStore {
	return &SQLStore{db: db}
}

// SaveRun writes the scenario definition and one analysis_results row holding
// the projection, both tagged with the run id.
func (s *SQLStore) SaveRun(ctx context.Context, req Request, res Result) error {
	params, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal scenario parameters: %w", err)
	}
	results, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal scenario results: %w", err)
	}

	stmt := s.db.Rebind(`INSERT INTO scenarios
		(scenario_name, scenario_description, scenario_type, base_year,
		 projection_years, parameters, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, stmt,
		req.Name, req.Description, string(req.Type), req.BaseYear,
		req.ProjectionYears, string(params), res.RunID); err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	stmt = s.db.Rebind(`INSERT INTO analysis_results
		(analysis_type, analysis_date, model_used, parameters, results)
		VALUES (?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, stmt,
		"scenario_projection", date, string(req.Type), string(params), string(results)); err != nil {
		return fmt.Errorf("insert analysis result: %w", err)
	}
	return nil
}

// Runs returns persisted scenario definitions, newest first.
func (s *SQLStore) Runs(ctx context.Context, limit int) ([]Request, error) {
	query := `SELECT parameters FROM scenarios ORDER BY scenario_id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list scenario runs: %w", err)
	}
	defer rows.Close()

	var runs []Request
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan scenario run: %w", err)
		}
		var req Request
		if err := json.Unmarshal([]byte(blob), &req); err != nil {
			return nil, fmt.Errorf("decode scenario parameters: %w", err)
		}
		runs = append(runs, req)
	}
	return runs, rows.Err()
}
