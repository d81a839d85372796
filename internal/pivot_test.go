package internal

import (
	"errors"
	"testing"
)

func observation(area, label string, year int, value float64) Observation {
	return Observation{Area: area, Description: area + " : " + label, Label: label, Year: year, Value: value}
}

func pivotFixture() NormalizedTable {
	return NormalizedTable{
		Dataset: DatasetElectricity,
		Observations: []Observation{
			observation("Virginia", SectorResidential, 2022, 10),
			observation("West Virginia", SectorResidential, 2022, 3),
			observation("Washington", SectorResidential, 2022, 300),
			observation("Washington", SectorCommercial, 2022, 150),
			observation("Washington", SectorCommercial, 2022, 50),
			observation("Washington", SectorTotalDelivered, 2022, 500),
			observation("Washington", SectorResidential, 2021, 280),
		},
	}
}

func TestFilterPivot(t *testing.T) {
	row, err := FilterPivot(pivotFixture(), 2022, "Washington", ElectricitySectors...)
	if err != nil {
		t.Fatalf("FilterPivot failed: %v", err)
	}

	if row.Region != "Washington" || row.Year != 2022 {
		t.Errorf("row = %s/%d, want Washington/2022", row.Region, row.Year)
	}

	want := map[string]float64{
		SectorResidential:    300,
		SectorCommercial:     200, // duplicates are summed
		SectorIndustrial:     0,
		SectorVehicleFuel:    0,
		SectorOther:          0,
		SectorTotalDelivered: 500,
	}
	if len(row.Values) != len(want) {
		t.Errorf("keys = %v, want %d keys", row.Keys(), len(want))
	}
	for k, v := range want {
		if !row.Has(k) {
			t.Errorf("missing key %q", k)
		}
		if row.Value(k) != v {
			t.Errorf("%s = %v, want %v", k, row.Value(k), v)
		}
	}
}

func TestFilterPivot_EmptyMatch(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		match string
	}{
		{"unknown region", 2022, "Atlantis"},
		{"unknown year", 1999, "Washington"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FilterPivot(pivotFixture(), tt.year, tt.match)
			if !errors.Is(err, ErrEmptyMatch) {
				t.Errorf("expected ErrEmptyMatch, got %v", err)
			}
		})
	}
}

func TestFilterPivot_MultipleMatch(t *testing.T) {
	_, err := FilterPivot(pivotFixture(), 2022, "Virginia")
	if !errors.Is(err, ErrMultipleMatch) {
		t.Errorf("expected ErrMultipleMatch, got %v", err)
	}

	// The more specific match is unambiguous
	row, err := FilterPivot(pivotFixture(), 2022, "West Virginia")
	if err != nil {
		t.Fatalf("FilterPivot failed: %v", err)
	}
	if row.Value(SectorResidential) != 3 {
		t.Errorf("Residential = %v, want 3", row.Value(SectorResidential))
	}
}

func TestFilterPivot_EmptyMatchSelectsAll(t *testing.T) {
	table := NormalizedTable{
		Dataset: DatasetGas,
		Observations: []Observation{
			{Area: "Oregon", Description: "Oregon Residential", Label: SectorResidential, Year: 2022, Value: 5},
			{Area: "Oregon", Description: "Oregon Commercial", Label: SectorCommercial, Year: 2022, Value: 7},
		},
	}
	row, err := FilterPivot(table, 2022, "")
	if err != nil {
		t.Fatalf("FilterPivot failed: %v", err)
	}
	if row.Sum() != 12 {
		t.Errorf("Sum = %v, want 12", row.Sum())
	}
}
