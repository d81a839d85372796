package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ColumnKind tells renderers how to print a report column
type ColumnKind string

const (
	KindQuantity ColumnKind = "quantity"
	KindShare    ColumnKind = "share"
)

// ReportColumn is one value column of a report
type ReportColumn struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// ReportRow is a labelled row of values, one per report column
type ReportRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Report is a rendered-agnostic view of a breakdown, shared by the table,
// JSON, chart and workbook outputs
type Report struct {
	Title   string         `json:"title"`
	Region  string         `json:"region"`
	Year    int            `json:"year,omitempty"`
	Unit    string         `json:"unit"`
	Label   string         `json:"label"`
	Columns []ReportColumn `json:"columns"`
	Rows    []ReportRow    `json:"rows"`
	Footer  *ReportRow     `json:"footer,omitempty"`

	// Primary is the column charted for this report
	Primary int `json:"-"`
}

// Column returns a row's value for the named column
func (r ReportRow) Column(rep Report, name string) (float64, bool) {
	for i, c := range rep.Columns {
		if c.Name == name && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return 0, false
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Reports []Report `json:"reports"`
}

func shareOf(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return v / total
}

// SectorReport lists the given sectors of a row with their share of the listed
// total. When the row carries total (e.g. Total Delivered) it becomes the footer.
func SectorReport(title, unit string, row SectorRow, sectors []string, total string) Report {
	rep := Report{
		Title:  title,
		Region: row.Region,
		Year:   row.Year,
		Unit:   unit,
		Label:  "Sector",
		Columns: []ReportColumn{
			{Name: "Consumption", Kind: KindQuantity},
			{Name: "Share", Kind: KindShare},
		},
	}

	var listed float64
	for _, s := range sectors {
		if s != total {
			listed += row.Value(s)
		}
	}
	for _, s := range sectors {
		if s == total || !row.Has(s) {
			continue
		}
		rep.Rows = append(rep.Rows, ReportRow{
			Label:  s,
			Values: []float64{row.Value(s), shareOf(row.Value(s), listed)},
		})
	}

	if total != "" && row.Has(total) {
		rep.Footer = &ReportRow{Label: total, Values: []float64{row.Value(total), 1}}
	}
	return rep
}

// GasReport is the natural gas consumption of a region by sector
func GasReport(unit string, row SectorRow) Report {
	title := fmt.Sprintf("%s natural gas consumption %d", row.Region, row.Year)
	return SectorReport(title, unit, row, GasSectors, SectorTotalDelivered)
}

// ElectricityReport is the retail electricity sales of a region by sector
func ElectricityReport(unit string, row SectorRow) Report {
	title := fmt.Sprintf("%s electricity sales %d", row.Region, row.Year)
	return SectorReport(title, unit, row, ElectricitySectors, SectorTotalDelivered)
}

// AllocationReport shows each end-use sector's own gas use next to the gas
// burned to generate the electricity it bought
func AllocationReport(unit string, a Allocation) Report {
	region, year := a.Row.Region, a.Row.Year

	if a.Mode == AllocateSplit {
		rep := Report{
			Title:  fmt.Sprintf("%s gas consumption with electricity split out %d", region, year),
			Region: region,
			Year:   year,
			Unit:   unit,
			Label:  "Sector",
			Columns: []ReportColumn{
				{Name: "Consumption", Kind: KindQuantity},
				{Name: "Share", Kind: KindShare},
			},
		}
		var total float64
		for _, s := range EndUseSectors {
			total += a.Direct(s) + a.Allocated[s]
		}
		for _, s := range EndUseSectors {
			for _, label := range []string{s, s + ElectricitySuffix} {
				v := a.Row.Value(label)
				if !a.Row.Has(label) {
					continue
				}
				rep.Rows = append(rep.Rows, ReportRow{Label: label, Values: []float64{v, shareOf(v, total)}})
			}
		}
		rep.Footer = &ReportRow{Label: "Total", Values: []float64{total, 1}}
		return rep
	}

	rep := Report{
		Title:  fmt.Sprintf("%s gas consumption including electricity %d", region, year),
		Region: region,
		Year:   year,
		Unit:   unit,
		Label:  "Sector",
		Columns: []ReportColumn{
			{Name: "Direct", Kind: KindQuantity},
			{Name: "Via Electricity", Kind: KindQuantity},
			{Name: "Total", Kind: KindQuantity},
			{Name: "Electricity Share", Kind: KindShare},
			{Name: "Share", Kind: KindShare},
		},
		Primary: 2,
	}
	var direct, via, total float64
	for _, s := range EndUseSectors {
		direct += a.Direct(s)
		via += a.Allocated[s]
		total += a.Row.Value(s)
	}
	for _, s := range EndUseSectors {
		if !a.Row.Has(s) {
			continue
		}
		rep.Rows = append(rep.Rows, ReportRow{
			Label:  s,
			Values: []float64{a.Direct(s), a.Allocated[s], a.Row.Value(s), a.Shares[s], shareOf(a.Row.Value(s), total)},
		})
	}
	rep.Footer = &ReportRow{Label: "Total", Values: []float64{direct, via, total, 1, 1}}
	return rep
}

// GenerationReport lists net generation by source followed by the fossil and
// renewable totals
func GenerationReport(unit string, row SourceRow) Report {
	rep := Report{
		Title:  fmt.Sprintf("%s net generation %d", row.Region, row.Year),
		Region: row.Region,
		Year:   row.Year,
		Unit:   unit,
		Label:  "Source",
		Columns: []ReportColumn{
			{Name: "Generation", Kind: KindQuantity},
			{Name: "Share", Kind: KindShare},
		},
	}

	total := row.Total.Value.InexactFloat64()
	for _, s := range GenerationSources {
		if !row.Has(s) {
			continue
		}
		rep.Rows = append(rep.Rows, ReportRow{Label: s, Values: []float64{row.Value(s), shareOf(row.Value(s), total)}})
	}
	fossil := row.FossilFuels.InexactFloat64()
	rep.Rows = append(rep.Rows,
		ReportRow{Label: SourceFossilFuels, Values: []float64{fossil, shareOf(fossil, total)}},
		ReportRow{Label: SourceRenewable, Values: []float64{row.Renewable.InexactFloat64(), row.RenewableShare()}},
	)
	rep.Footer = &ReportRow{Label: SourceTotalGenerated, Values: []float64{total, 1}}
	return rep
}

// SeriesReport has one row per year and one column per sector
func SeriesReport(unit string, s YearSeries) Report {
	rep := Report{
		Region: string(s.Region),
		Unit:   unit,
		Label:  "Year",
	}
	if len(s.Points) > 0 {
		rep.Title = fmt.Sprintf("%s gas consumption including electricity %d-%d",
			s.Region, s.Points[0].Year, s.Points[len(s.Points)-1].Year)
	}
	for _, sector := range s.Sectors {
		rep.Columns = append(rep.Columns, ReportColumn{Name: sector, Kind: KindQuantity})
	}
	for _, p := range s.Points {
		row := ReportRow{Label: fmt.Sprint(p.Year)}
		for _, sector := range s.Sectors {
			row.Values = append(row.Values, p.Values[sector])
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

// PrintReportsJSON outputs reports in JSON format
func PrintReportsJSON(w io.Writer, reports ...Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(JSONOutput{Reports: reports}); err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	return nil
}

// PrintReportTable outputs a report as a formatted table
func PrintReportTable(w io.Writer, rep Report, unit Unit) {
	fmt.Fprintf(w, "%s\n", text.Bold.Sprint(rep.Title))

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{rep.Label}
	for _, c := range rep.Columns {
		header = append(header, c.Name)
	}
	t.AppendHeader(header)

	format := func(kind ColumnKind, v float64) string {
		if kind == KindShare {
			return unit.FormatShare(v)
		}
		return unit.Format(v)
	}

	for _, r := range rep.Rows {
		row := table.Row{r.Label}
		for i, v := range r.Values {
			row = append(row, format(rep.Columns[i].Kind, v))
		}
		t.AppendRow(row)
	}

	if rep.Footer != nil {
		t.AppendSeparator()
		footer := table.Row{text.Bold.Sprint(rep.Footer.Label)}
		for i, v := range rep.Footer.Values {
			footer = append(footer, text.Bold.Sprint(format(rep.Columns[i].Kind, v)))
		}
		t.AppendFooter(footer)
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	// Right-align every value column
	configs := make([]table.ColumnConfig, 0, len(rep.Columns))
	for i := range rep.Columns {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	t.Render()
	fmt.Fprintln(w)
}
