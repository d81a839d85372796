package internal

import "fmt"

// BreakdownSource produces the combined breakdown of one region and year
type BreakdownSource interface {
	Breakdown(region Region, year int, mode AllocationMode) (Allocation, error)
}

// BuildSeries collects Residential (plus any extra sectors, each once) for every year in
// [start, end] from the combined breakdown. The first year that fails aborts
// the whole series.
func BuildSeries(src BreakdownSource, region Region, start, end int, extra ...string) (YearSeries, error) {
	if start > end {
		return YearSeries{}, fmt.Errorf("invalid year range %d-%d: start is after end", start, end)
	}

	sectors := []string{SectorResidential}
	seen := map[string]bool{SectorResidential: true}
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			sectors = append(sectors, s)
		}
	}

	series := YearSeries{
		Region:  region,
		Sectors: sectors,
		Points:  make([]YearPoint, 0, end-start+1),
	}
	for year := start; year <= end; year++ {
		alloc, err := src.Breakdown(region, year, AllocateCombine)
		if err != nil {
			return YearSeries{}, fmt.Errorf("building %s series for %d: %w", region, year, err)
		}
		point := YearPoint{Year: year, Values: make(map[string]float64, len(sectors))}
		for _, s := range sectors {
			point.Values[s] = alloc.Row.Value(s)
		}
		series.Points = append(series.Points, point)
	}
	return series, nil
}
