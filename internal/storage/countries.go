package storage

import (
	"context"
	"fmt"
)

// Country is one reference country row.
type Country struct {
	CountryID  int     `json:"country_id"`
	Code       string  `json:"country_code"`
	Name       string  `json:"country_name"`
	Region     string  `json:"region"`
	IncomeGrp  string  `json:"income_group"`
	GDP        float64 `json:"gdp_2022"`
	Population int64   `json:"population_2022"`
}

// ListCountries returns every reference country, ordered by id.
func ListCountries(ctx context.Context, db *DB) ([]Country, error) {
	rows, err := db.QueryContext(ctx, `SELECT country_id, country_code, country_name,
		COALESCE(region, ''), COALESCE(income_group, ''),
		COALESCE(gdp_2022, 0), COALESCE(population_2022, 0)
		FROM countries ORDER BY country_id`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.CountryID, &c.Code, &c.Name, &c.Region, &c.IncomeGrp, &c.GDP, &c.Population); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}
