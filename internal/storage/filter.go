package storage

import "strings"

// Filter narrows queries to a year range and an optional set of country
// names. Zero values mean "no bound".
type Filter struct {
	YearFrom  int
	YearTo    int
	Countries []string
}

// Clause renders the filter as SQL conditions against the given year and
// country-name column expressions, returning the WHERE fragment (joined with
// AND, possibly empty) and its arguments in order.
func (f Filter) Clause(yearCol, countryCol string) (string, []any) {
	var conds []string
	var args []any
	if f.YearFrom != 0 {
		conds = append(conds, yearCol+" >= ?")
		args = append(args, f.YearFrom)
	}
	if f.YearTo != 0 {
		conds = append(conds, yearCol+" <= ?")
		args = append(args, f.YearTo)
	}
	if len(f.Countries) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Countries)), ", ")
		conds = append(conds, countryCol+" IN ("+placeholders+")")
		for _, c := range f.Countries {
			args = append(args, c)
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " AND "), args
}
