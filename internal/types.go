package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical sector names shared by the gas and electricity tables
const (
	SectorResidential    = "Residential"
	SectorCommercial     = "Commercial"
	SectorIndustrial     = "Industrial"
	SectorVehicleFuel    = "Vehicle Fuel"
	SectorElectricPower  = "Electric Power"
	SectorOther          = "Other"
	SectorTotalDelivered = "Total Delivered"
)

// Canonical generation source names. "Petroluem" is spelled the way the
// published reports have always labelled it.
const (
	SourceCoal           = "Coal"
	SourceNaturalGas     = "Natural Gas"
	SourcePetroleumCoke  = "Petroleum Coke"
	SourcePetroleum      = "Petroluem"
	SourceOtherGases     = "Other gases"
	SourceTotalGenerated = "Total Generated"
	SourceFossilFuels    = "Fossil Fuels"
	SourceRenewable      = "Renewable"
)

// SectorVocabulary is every canonical sector name
var SectorVocabulary = []string{
	SectorResidential,
	SectorCommercial,
	SectorIndustrial,
	SectorVehicleFuel,
	SectorElectricPower,
	SectorOther,
	SectorTotalDelivered,
}

// SourceVocabulary is every canonical generation source name
var SourceVocabulary = []string{
	SourceCoal,
	SourceNaturalGas,
	SourcePetroleumCoke,
	SourcePetroleum,
	SourceOtherGases,
	SourceTotalGenerated,
}

// EndUseSectors are the sectors electricity is sold to, in display order.
var EndUseSectors = []string{
	SectorResidential,
	SectorCommercial,
	SectorIndustrial,
	SectorVehicleFuel,
	SectorOther,
}

// GasSectors are the columns kept from a state natural gas table.
var GasSectors = []string{
	SectorResidential,
	SectorCommercial,
	SectorIndustrial,
	SectorVehicleFuel,
	SectorElectricPower,
	SectorTotalDelivered,
}

// ElectricitySectors are the columns of a pivoted retail sales row.
var ElectricitySectors = []string{
	SectorResidential,
	SectorCommercial,
	SectorIndustrial,
	SectorVehicleFuel,
	SectorOther,
	SectorTotalDelivered,
}

// GenerationSources are the columns of a pivoted net generation row.
var GenerationSources = []string{
	SourceCoal,
	SourceNaturalGas,
	SourcePetroleumCoke,
	SourcePetroleum,
	SourceOtherGases,
}

// Dataset identifies one of the published tables
type Dataset string

const (
	DatasetGas         Dataset = "gas"
	DatasetElectricity Dataset = "electricity"
	DatasetGeneration  Dataset = "generation"
)

// Region is one of the reporting areas this tool knows about
type Region string

const (
	RegionWashington   Region = "Washington"
	RegionOregon       Region = "Oregon"
	RegionCalifornia   Region = "California"
	RegionWestCoast    Region = "West Coast"
	RegionUnitedStates Region = "United States"
)

// Regions lists every supported region in display order
var Regions = []Region{
	RegionWashington,
	RegionOregon,
	RegionCalifornia,
	RegionWestCoast,
	RegionUnitedStates,
}

// Slug returns the command-line form of the region ("west-coast")
func (r Region) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(r)), " ", "-")
}

// ParseRegion accepts a display name or a slug, case-insensitively
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.Slug()) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

// RawTable is a table as read from disk, before any interpretation
type RawTable struct {
	Source string
	Header []string
	Rows   [][]string
}

// Column returns the index of the column with the given header (case-insensitive), or -1
func (t RawTable) Column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Observation is one normalized long-format value
type Observation struct {
	Area        string
	Description string
	Label       string
	Year        int
	Value       float64
}

// NormalizedTable is the long-format result of normalizing a RawTable
type NormalizedTable struct {
	Dataset      Dataset
	Observations []Observation
}

// SectorRow is a wide row: one (region, year) with one value per sector or source
type SectorRow struct {
	Region string
	Year   int
	Values map[string]float64
}

// NewSectorRow creates an empty row
func NewSectorRow(region string, year int) SectorRow {
	return SectorRow{Region: region, Year: year, Values: make(map[string]float64)}
}

// Has reports whether the sector is present in the row
func (r SectorRow) Has(key string) bool {
	_, ok := r.Values[key]
	return ok
}

// Value returns the sector value, or zero when absent
func (r SectorRow) Value(key string) float64 {
	return r.Values[key]
}

// Get returns the sector value, or ErrSchemaMismatch when absent
func (r SectorRow) Get(key string) (float64, error) {
	v, ok := r.Values[key]
	if !ok {
		return 0, fmt.Errorf("%w: row for %s (%d) has no %q column", ErrSchemaMismatch, r.Region, r.Year, key)
	}
	return v, nil
}

// FillZero adds the given keys at zero where they are missing
func (r SectorRow) FillZero(keys ...string) SectorRow {
	for _, k := range keys {
		if _, ok := r.Values[k]; !ok {
			r.Values[k] = 0
		}
	}
	return r
}

// Clone returns a deep copy of the row
func (r SectorRow) Clone() SectorRow {
	c := NewSectorRow(r.Region, r.Year)
	for k, v := range r.Values {
		c.Values[k] = v
	}
	return c
}

// Sum adds up every value except the excluded keys, in key order
func (r SectorRow) Sum(exclude ...string) float64 {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	var total float64
	for _, k := range r.Keys() {
		if !skip[k] {
			total += r.Values[k]
		}
	}
	return total
}

// Keys returns the row's keys in sorted order
func (r SectorRow) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TotalOrigin records where a generation total came from
type TotalOrigin int

const (
	TotalCanonical TotalOrigin = iota
	TotalFromAlternate
)

// TotalGenerated is the total net generation of a row, together with the
// column it was read from
type TotalGenerated struct {
	Value  decimal.Decimal
	Column string
	Origin TotalOrigin
}

// SourceRow is a generation row after renewable/fossil classification.
// FossilFuels + Renewable == Total.Value exactly. The Fossil Fuels, Renewable
// and Total Generated entries of Values are float64 copies for display and do
// not keep that identity; sums must use the decimal fields.
type SourceRow struct {
	SectorRow
	Total       TotalGenerated
	FossilFuels decimal.Decimal
	Renewable   decimal.Decimal
}

// RenewableShare returns renewable generation as a fraction of the total
func (r SourceRow) RenewableShare() float64 {
	if r.Total.Value.IsZero() {
		return 0
	}
	return r.Renewable.Div(r.Total.Value).InexactFloat64()
}

// YearPoint is one year of a YearSeries
type YearPoint struct {
	Year   int
	Values map[string]float64
}

// YearSeries is a year-ordered sequence of sector values for one region
type YearSeries struct {
	Region  Region
	Sectors []string
	Points  []YearPoint
}

// Years returns the years of the series in order
func (s YearSeries) Years() []int {
	years := make([]int, len(s.Points))
	for i, p := range s.Points {
		years[i] = p.Year
	}
	return years
}

// Values returns one sector's values in year order
func (s YearSeries) Values(sector string) []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Values[sector]
	}
	return values
}
