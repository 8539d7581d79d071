package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, CreateSchema(context.Background(), db))
	return db
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, CreateSchema(context.Background(), db))
}

func TestSeedAssignsStableIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db))

	var id int
	var name string
	err := db.QueryRowContext(ctx, "SELECT country_id, country_name FROM countries WHERE country_code = 'USA'").Scan(&id, &name)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, "United States", name)

	err = db.QueryRowContext(ctx, "SELECT country_id FROM countries WHERE country_code = 'IND'").Scan(&id)
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	// re-seeding must not duplicate rows
	require.NoError(t, Seed(ctx, db))
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM countries").Scan(&count))
	assert.Equal(t, len(SeedCountries), count)
}

func TestCheckConstraintsRejectInvalidEnums(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db))

	_, err := db.ExecContext(ctx,
		"INSERT INTO trade_data (year, reporter_country_id, partner_country_id, trade_flow, value_usd) VALUES (2022, 1, 0, 'reexport', 100)")
	assert.Error(t, err, "trade_flow outside import/export must be rejected")

	_, err = db.ExecContext(ctx,
		"INSERT INTO sanctions (sanctioning_country_id, target_country_id, sanction_type, status) VALUES (1, 2, 'cyber', 'active')")
	assert.Error(t, err, "unknown sanction_type must be rejected")

	_, err = db.ExecContext(ctx,
		"INSERT INTO risk_scores (country_id, risk_type, risk_score) VALUES (1, 'trade_risk', 150)")
	assert.Error(t, err, "risk_score above 100 must be rejected")

	_, err = db.ExecContext(ctx,
		"INSERT INTO scenarios (scenario_name, scenario_type, base_year, projection_years) VALUES ('x', 'weather', 2024, 3)")
	assert.Error(t, err, "unknown scenario_type must be rejected")
}

func TestPartnerForeignKeys(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	partnerFK := func(table string) bool {
		rows, err := db.QueryContext(ctx, "PRAGMA foreign_key_list("+table+")")
		require.NoError(t, err)
		defer rows.Close()
		found := false
		for rows.Next() {
			var id, seq int
			var ref, from, to, onUpdate, onDelete, match string
			require.NoError(t, rows.Scan(&id, &seq, &ref, &from, &to, &onUpdate, &onDelete, &match))
			if from == "partner_country_id" {
				assert.Equal(t, "countries", ref, table)
				found = true
			}
		}
		require.NoError(t, rows.Err())
		return found
	}

	assert.True(t, partnerFK("tariffs"))
	assert.True(t, partnerFK("analysis_results"))
	// world-level rows store partner id 0, so trade_data stays unconstrained
	assert.False(t, partnerFK("trade_data"))
}

func TestFilterClause(t *testing.T) {
	t.Run("empty filter renders nothing", func(t *testing.T) {
		clause, args := Filter{}.Clause("td.year", "c.country_name")
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("full filter renders all conditions", func(t *testing.T) {
		f := Filter{YearFrom: 2020, YearTo: 2023, Countries: []string{"Germany", "Japan"}}
		clause, args := f.Clause("td.year", "c.country_name")
		assert.Equal(t, "td.year >= ? AND td.year <= ? AND c.country_name IN (?, ?)", clause)
		assert.Equal(t, []any{2020, 2023, "Germany", "Japan"}, args)
	})
}

func TestRebind(t *testing.T) {
	db := &DB{Dialect: DialectPostgres}
	assert.Equal(t, "SELECT $1, $2", db.Rebind("SELECT ?, ?"))

	db = &DB{Dialect: DialectSQLite}
	assert.Equal(t, "SELECT ?, ?", db.Rebind("SELECT ?, ?"))
}
