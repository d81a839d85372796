package internal

import (
	"fmt"
	"sort"
	"strings"
)

// FilterPivot selects the observations of one year whose description contains
// match (an empty match selects everything) and pivots them into a single wide
// row keyed by label, summing duplicate labels. Every key in keys is present in
// the result, zero when no observation carried it.
//
// Returns ErrEmptyMatch when nothing matched and ErrMultipleMatch when the
// matches come from more than one area ("Virginia" also matches "West Virginia").
func FilterPivot(table NormalizedTable, year int, match string, keys ...string) (SectorRow, error) {
	var matched []Observation
	areas := make(map[string]bool)
	for _, obs := range table.Observations {
		if obs.Year != year {
			continue
		}
		if match != "" && !strings.Contains(obs.Description, match) {
			continue
		}
		matched = append(matched, obs)
		areas[obs.Area] = true
	}

	if len(matched) == 0 {
		return SectorRow{}, fmt.Errorf("%w: %s table has no rows for %q in %d", ErrEmptyMatch, table.Dataset, match, year)
	}
	if len(areas) > 1 {
		names := make([]string, 0, len(areas))
		for a := range areas {
			names = append(names, a)
		}
		sort.Strings(names)
		return SectorRow{}, fmt.Errorf("%w: %q matches %s in the %s table", ErrMultipleMatch, match, strings.Join(names, ", "), table.Dataset)
	}

	row := NewSectorRow(matched[0].Area, year)
	for _, obs := range matched {
		row.Values[obs.Label] += obs.Value
	}
	return row.FillZero(keys...), nil
}
