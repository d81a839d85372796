package internal

import (
	"fmt"
	"sort"
)

// Aggregate sums rows element-wise, one result row per distinct year, ordered
// by year. The result carries the union of the input keys and is labelled with
// region. Input order does not matter.
func Aggregate(region string, rows ...SectorRow) ([]SectorRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: nothing to aggregate for %s", ErrEmptyMatch, region)
	}

	byYear := make(map[int]SectorRow)
	for _, row := range rows {
		sum, ok := byYear[row.Year]
		if !ok {
			sum = NewSectorRow(region, row.Year)
			byYear[row.Year] = sum
		}
		for _, k := range row.Keys() {
			sum.Values[k] += row.Values[k]
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	result := make([]SectorRow, 0, len(years))
	for _, y := range years {
		result = append(result, byYear[y])
	}
	return result, nil
}

// AggregateYear sums rows that all belong to the same year into one row
func AggregateYear(region string, rows ...SectorRow) (SectorRow, error) {
	sums, err := Aggregate(region, rows...)
	if err != nil {
		return SectorRow{}, err
	}
	if len(sums) != 1 {
		return SectorRow{}, fmt.Errorf("%w: rows for %s span %d years", ErrMultipleMatch, region, len(sums))
	}
	return sums[0], nil
}
