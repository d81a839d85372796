package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canonicalizer maps the labels found in source tables onto canonical names.
// Rename keys match ignoring case and surrounding whitespace; canonical names
// only match exactly (after trimming). Unknown labels come back trimmed.
type Canonicalizer struct {
	renames   map[string]string
	canonical map[string]bool
}

// NewCanonicalizer builds a lookup from a rename table. Canonical names and
// rename targets map to themselves so canonicalizing twice is a no-op.
func NewCanonicalizer(renames map[string]string, canonical ...string) *Canonicalizer {
	c := &Canonicalizer{
		renames:   make(map[string]string, len(renames)),
		canonical: make(map[string]bool, len(renames)+len(canonical)),
	}
	for _, name := range canonical {
		c.canonical[strings.TrimSpace(name)] = true
	}
	for from, to := range renames {
		c.renames[labelKey(from)] = to
		c.canonical[to] = true
	}
	return c
}

// Canonical returns the canonical name for a label
func (c *Canonicalizer) Canonical(label string) string {
	label = strings.TrimSpace(label)
	if c == nil || c.canonical[label] {
		return label
	}
	if name, ok := c.renames[labelKey(label)]; ok {
		return name
	}
	return label
}

func labelKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitDescription splits "Washington : residential" into area and label.
// Without a colon both are the whole (trimmed) description.
func SplitDescription(desc string) (area, label string) {
	desc = strings.TrimSpace(desc)
	idx := strings.Index(desc, ":")
	if idx == -1 {
		return desc, desc
	}
	return strings.TrimSpace(desc[:idx]), strings.TrimSpace(desc[idx+1:])
}

// CoerceNumber parses a table cell. Missing-data markers ("--", "NM", "W",
// blanks) and anything else that is not a finite number become zero.
func CoerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NormalizeLong normalizes a description/year table (retail sales, net
// generation) for one year. Labels are canonicalized with names.
func NormalizeLong(raw RawTable, dataset Dataset, year int, names *Canonicalizer) (NormalizedTable, error) {
	descCol := raw.Column("description")
	if descCol < 0 {
		return NormalizedTable{}, fmt.Errorf("%w: %s has no description column", ErrSchemaMismatch, raw.Source)
	}
	yearCol := raw.Column(strconv.Itoa(year))
	if yearCol < 0 {
		return NormalizedTable{}, fmt.Errorf("%w: %s has no column for %d", ErrSchemaMismatch, raw.Source, year)
	}

	table := NormalizedTable{Dataset: dataset}
	for _, row := range raw.Rows {
		desc := strings.TrimSpace(row[descCol])
		if desc == "" {
			continue
		}
		area, label := SplitDescription(desc)
		table.Observations = append(table.Observations, Observation{
			Area:        area,
			Description: desc,
			Label:       names.Canonical(label),
			Year:        year,
			Value:       CoerceNumber(row[yearCol]),
		})
	}
	return table, nil
}

// gasColumn is a state gas table column that survived renaming
type gasColumn struct {
	index  int
	header string
	sector string
}

// NormalizeGas normalizes a state natural gas table (a Date column followed by
// one column per consumption series) for one year. Columns are renamed with
// the keyword rules; rows without a year in the Date column are dropped, as
// are unnamed columns.
func NormalizeGas(raw RawTable, year int, area string, rules []GasColumnRule) (NormalizedTable, error) {
	dateCol := raw.Column("Date")
	if dateCol < 0 {
		return NormalizedTable{}, fmt.Errorf("%w: %s has no Date column", ErrSchemaMismatch, raw.Source)
	}

	columns := gasColumns(raw.Header, dateCol, rules)
	if len(columns) == 0 {
		return NormalizedTable{}, fmt.Errorf("%w: %s has no recognizable consumption columns", ErrSchemaMismatch, raw.Source)
	}

	table := NormalizedTable{Dataset: DatasetGas}
	for _, row := range raw.Rows {
		y, ok := parseYear(row[dateCol])
		if !ok || y != year {
			continue
		}
		for _, col := range columns {
			table.Observations = append(table.Observations, Observation{
				Area:        area,
				Description: col.header,
				Label:       col.sector,
				Year:        y,
				Value:       CoerceNumber(row[col.index]),
			})
		}
	}
	return table, nil
}

// gasColumns picks the consumption columns of a gas table header. For each
// header the last matching rule decides the sector; if two headers end up on
// the same sector the first one is kept.
func gasColumns(header []string, dateCol int, rules []GasColumnRule) []gasColumn {
	var columns []gasColumn
	seen := make(map[string]bool)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == dateCol || isUnnamedColumn(h) {
			continue
		}
		sector := ""
		for _, rule := range rules {
			if strings.Contains(strings.ToLower(h), strings.ToLower(rule.Keyword)) {
				sector = rule.Sector
			}
		}
		if sector == "" || seen[sector] {
			continue
		}
		seen[sector] = true
		columns = append(columns, gasColumn{index: i, header: h, sector: sector})
	}
	return columns
}

// isUnnamedColumn matches empty headers (trailing commas) and headers that
// spreadsheet tools fill in for them
func isUnnamedColumn(h string) bool {
	return h == "" || strings.HasPrefix(h, "Unnamed:")
}

// parseYear reads the year from a Date cell ("2022", "Jun 2022"); rows with
// notes or blanks in the Date column are not data rows
func parseYear(s string) (int, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) == 0 {
		return 0, false
	}
	last := fields[len(fields)-1]
	if len(last) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(last)
	if err != nil {
		return 0, false
	}
	return y, true
}
