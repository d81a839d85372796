package internal

import (
	"errors"
	"testing"
)

func TestCanonicalizer_RenamesIgnoreCaseAndWhitespace(t *testing.T) {
	names := NewCanonicalizer(map[string]string{
		"all sectors": SectorTotalDelivered,
		"residential": SectorResidential,
	}, SectorVocabulary...)

	tests := []struct {
		input string
		want  string
	}{
		{"residential", SectorResidential},
		{"RESIDENTIAL", SectorResidential},
		{"  Residential  ", SectorResidential},
		{"All Sectors", SectorTotalDelivered},
		{"Vehicle Fuel", SectorVehicleFuel},
		// canonical names only match exactly
		{"vehicle fuel", "vehicle fuel"},
		{" Total Delivered", SectorTotalDelivered},
		{"  street lighting ", "street lighting"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := names.Canonical(tt.input); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizer_Idempotent(t *testing.T) {
	cfg := defaultConfig()
	for _, c := range []*Canonicalizer{
		NewCanonicalizer(cfg.SectorRenames, SectorVocabulary...),
		NewCanonicalizer(cfg.SourceRenames, SourceVocabulary...),
	} {
		for _, label := range []string{"all fuels", "petroleum liquids", "other", "residential", "Coal", "unknown label "} {
			once := c.Canonical(label)
			if twice := c.Canonical(once); twice != once {
				t.Errorf("Canonical(Canonical(%q)) = %q, want %q", label, twice, once)
			}
		}
	}
}

func TestCanonicalizer_CanonicalNamesDoNotAbsorbOtherLabels(t *testing.T) {
	names := NewCanonicalizer(defaultConfig().SourceRenames, SourceVocabulary...)

	if got := names.Canonical("other"); got != SourceOtherGases {
		t.Errorf("Canonical(other) = %q, want %q", got, SourceOtherGases)
	}
	if got := names.Canonical("other gases"); got != "other gases" {
		t.Errorf("Canonical(other gases) = %q, want it unchanged", got)
	}
}

func TestNormalizeLong_KeepsLabelsOutsideRenameTable(t *testing.T) {
	raw := RawTable{
		Source: "generation.csv",
		Header: []string{"description", "units", "source key", "2022"},
		Rows: [][]string{
			{"Washington : all fuels", "GWh", "k1", "100"},
			{"Washington : other gases", "GWh", "k2", "3"},
			{"Washington : other", "GWh", "k3", "7"},
		},
	}
	names := NewCanonicalizer(defaultConfig().SourceRenames, SourceVocabulary...)

	table, err := NormalizeLong(raw, DatasetGeneration, 2022, names)
	if err != nil {
		t.Fatalf("NormalizeLong failed: %v", err)
	}
	row, err := FilterPivot(table, 2022, "Washington")
	if err != nil {
		t.Fatalf("FilterPivot failed: %v", err)
	}
	if got := row.Value(SourceOtherGases); got != 7 {
		t.Errorf("%s = %v, want 7", SourceOtherGases, got)
	}
	if got := row.Value("other gases"); got != 3 {
		t.Errorf("other gases = %v, want 3", got)
	}
}

func TestCanonicalizer_Nil(t *testing.T) {
	var c *Canonicalizer
	if got := c.Canonical(" Coal "); got != "Coal" {
		t.Errorf("nil Canonical = %q, want %q", got, "Coal")
	}
}

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		desc  string
		area  string
		label string
	}{
		{"Washington : residential", "Washington", "residential"},
		{"United States : all sectors", "United States", "all sectors"},
		{"Pacific Contiguous : other", "Pacific Contiguous", "other"},
		{"Oregon: coal: extra", "Oregon", "coal: extra"},
		{"  no colon here  ", "no colon here", "no colon here"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			area, label := SplitDescription(tt.desc)
			if area != tt.area || label != tt.label {
				t.Errorf("SplitDescription(%q) = (%q, %q), want (%q, %q)", tt.desc, area, label, tt.area, tt.label)
			}
		})
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"123.5", 123.5},
		{" 42 ", 42},
		{"1,234", 1234},
		{"--", 0},
		{"NM", 0},
		{"W", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-7", -7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CoerceNumber(tt.input); got != tt.want {
				t.Errorf("CoerceNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func salesTable() RawTable {
	return RawTable{
		Source: "sales.csv",
		Header: []string{"description", "units", "source key", "2021", "2022"},
		Rows: [][]string{
			{"Washington : all sectors", "GWh", "k1", "90", "500"},
			{"Washington : residential", "GWh", "k2", "40", "300"},
			{"Washington : commercial", "GWh", "k3", "30", "200"},
			{"Washington : transportation", "GWh", "k4", "--", "NM"},
			{"", "", "", "", ""},
		},
	}
}

func TestNormalizeLong(t *testing.T) {
	names := NewCanonicalizer(defaultConfig().SectorRenames, SectorVocabulary...)

	table, err := NormalizeLong(salesTable(), DatasetElectricity, 2022, names)
	if err != nil {
		t.Fatalf("NormalizeLong failed: %v", err)
	}
	if table.Dataset != DatasetElectricity {
		t.Errorf("Dataset = %q", table.Dataset)
	}
	if len(table.Observations) != 4 {
		t.Fatalf("expected 4 observations (blank row dropped), got %d", len(table.Observations))
	}

	want := map[string]float64{
		SectorTotalDelivered: 500,
		SectorResidential:    300,
		SectorCommercial:     200,
		SectorVehicleFuel:    0,
	}
	for _, obs := range table.Observations {
		if obs.Area != "Washington" {
			t.Errorf("Area = %q, want Washington", obs.Area)
		}
		if obs.Year != 2022 {
			t.Errorf("Year = %d, want 2022", obs.Year)
		}
		w, ok := want[obs.Label]
		if !ok {
			t.Errorf("unexpected label %q", obs.Label)
			continue
		}
		if obs.Value != w {
			t.Errorf("%s = %v, want %v", obs.Label, obs.Value, w)
		}
	}
}

func TestNormalizeLong_SchemaMismatch(t *testing.T) {
	raw := salesTable()

	if _, err := NormalizeLong(raw, DatasetElectricity, 1999, nil); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("missing year column: expected ErrSchemaMismatch, got %v", err)
	}

	raw.Header = []string{"name", "units", "source key", "2021", "2022"}
	if _, err := NormalizeLong(raw, DatasetElectricity, 2022, nil); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("missing description column: expected ErrSchemaMismatch, got %v", err)
	}
}

func gasTable() RawTable {
	return RawTable{
		Source: "gas.csv",
		Header: []string{
			"Date",
			"Washington Natural Gas Total Consumption (MMcf)",
			"Natural Gas Delivered to Consumers in Washington (Including Vehicle Fuel) (MMcf)",
			"Washington Natural Gas Residential Consumption (MMcf)",
			"Washington Natural Gas Commercial Consumption (MMcf)",
			"Washington Natural Gas Industrial Consumption (MMcf)",
			"Washington Natural Gas Vehicle Fuel Consumption (MMcf)",
			"Washington Natural Gas Deliveries to Electric Power Consumers (MMcf)",
			"",
		},
		Rows: [][]string{
			{"2021", "320000", "300000", "80000", "50000", "70000", "100", "99900", ""},
			{"2022", "330000", "310000", "90000", "55000", "65000", "120", "99880", ""},
			{"Notes: W = withheld", "", "", "", "", "", "", "", ""},
			{"", "", "", "", "", "", "", "", ""},
		},
	}
}

func TestNormalizeGas(t *testing.T) {
	table, err := NormalizeGas(gasTable(), 2022, "Washington", defaultConfig().GasColumns)
	if err != nil {
		t.Fatalf("NormalizeGas failed: %v", err)
	}

	got := make(map[string]float64)
	for _, obs := range table.Observations {
		if obs.Area != "Washington" {
			t.Errorf("Area = %q, want Washington", obs.Area)
		}
		if _, dup := got[obs.Label]; dup {
			t.Errorf("sector %q emitted twice", obs.Label)
		}
		got[obs.Label] = obs.Value
	}

	want := map[string]float64{
		SectorTotalDelivered: 310000,
		SectorResidential:    90000,
		SectorCommercial:     55000,
		SectorIndustrial:     65000,
		SectorVehicleFuel:    120,
		SectorElectricPower:  99880,
	}
	if len(got) != len(want) {
		t.Errorf("sectors = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestNormalizeGas_NoRowsForYear(t *testing.T) {
	table, err := NormalizeGas(gasTable(), 1990, "Washington", defaultConfig().GasColumns)
	if err != nil {
		t.Fatalf("NormalizeGas failed: %v", err)
	}
	if len(table.Observations) != 0 {
		t.Errorf("expected no observations, got %d", len(table.Observations))
	}
}

func TestNormalizeGas_SchemaMismatch(t *testing.T) {
	raw := gasTable()
	raw.Header[0] = "Year"
	if _, err := NormalizeGas(raw, 2022, "Washington", defaultConfig().GasColumns); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestGasColumns_LaterRuleWins(t *testing.T) {
	rules := []GasColumnRule{
		{Keyword: "Consumption", Sector: "Generic"},
		{Keyword: "Residential", Sector: SectorResidential},
	}
	cols := gasColumns([]string{"Date", "Residential Consumption", "Unnamed: 2"}, 0, rules)
	if len(cols) != 1 || cols[0].sector != SectorResidential || cols[0].index != 1 {
		t.Errorf("gasColumns = %+v", cols)
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		year  int
		ok    bool
	}{
		{"2022", 2022, true},
		{"Jun 2022", 2022, true},
		{"Jun-2022", 0, false},
		{"", 0, false},
		{"Notes", 0, false},
		{"22", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, ok := parseYear(tt.input)
			if y != tt.year || ok != tt.ok {
				t.Errorf("parseYear(%q) = (%d, %v), want (%d, %v)", tt.input, y, ok, tt.year, tt.ok)
			}
		})
	}
}
