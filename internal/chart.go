package internal

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// minLabeledShare hides share labels on slices too small to read
const minLabeledShare = 0.05

// ChartFileName derives a file name from a chart title:
// "West Coast gas consumption 2022" -> "west_coast_gas_consumption_2022.png"
func ChartFileName(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		b.WriteString("chart")
	}
	return b.String() + ".png"
}

// RenderReportChart draws the report's primary column as a bar chart with each
// bar labelled by its share of the total, and saves it as a PNG in dir.
// Returns the path written.
func RenderReportChart(dir string, rep Report) (string, error) {
	if len(rep.Rows) == 0 {
		return "", fmt.Errorf("rendering %q: report has no rows", rep.Title)
	}

	values := make(plotter.Values, len(rep.Rows))
	labels := make([]string, len(rep.Rows))
	var total, maxVal float64
	for i, r := range rep.Rows {
		if rep.Primary < len(r.Values) {
			values[i] = r.Values[rep.Primary]
		}
		labels[i] = r.Label
		if values[i] > 0 {
			total += values[i]
		}
		maxVal = math.Max(maxVal, values[i])
	}

	p := plot.New()
	p.Title.Text = rep.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = rep.Label
	p.Y.Label.Text = rep.Unit

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return "", fmt.Errorf("rendering %q: %w", rep.Title, err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.Add(plotter.NewGrid())

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	p.Y.Min = 0
	if maxVal > 0 {
		p.Y.Max = maxVal * 1.15
	}

	for i, v := range values {
		share := shareOf(v, total)
		if v <= 0 || share < minLabeledShare {
			continue
		}
		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: float64(i), Y: v + maxVal*0.02}},
			Labels: []string{fmt.Sprintf("%.1f%%", share*100)},
		})
		if err != nil {
			return "", fmt.Errorf("rendering %q: %w", rep.Title, err)
		}
		p.Add(label)
	}

	return saveChart(p, dir, rep.Title, 12*vg.Inch, 8*vg.Inch)
}

// RenderSeriesChart draws one line per sector of a series and saves it as a PNG in dir
func RenderSeriesChart(dir, unit string, s YearSeries) (string, error) {
	if len(s.Points) == 0 {
		return "", fmt.Errorf("rendering %s series: no points", s.Region)
	}
	years := s.Years()
	title := fmt.Sprintf("%s gas consumption including electricity %d-%d", s.Region, years[0], years[len(years)-1])

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = unit
	p.Add(plotter.NewGrid())

	for i, sector := range s.Sectors {
		values := s.Values(sector)
		points := make(plotter.XYs, len(years))
		for j, y := range years {
			points[j].X = float64(y)
			points[j].Y = values[j]
		}

		line, err := plotter.NewLine(points)
		if err != nil {
			return "", fmt.Errorf("rendering %q: %w", title, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(sector, line)
	}
	p.Legend.Top = true

	yearLabels := make([]plot.Tick, len(years))
	for i, y := range years {
		yearLabels[i] = plot.Tick{Value: float64(y), Label: fmt.Sprint(y)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(yearLabels)

	return saveChart(p, dir, title, 12*vg.Inch, 6*vg.Inch)
}

func saveChart(p *plot.Plot, dir, title string, w, h vg.Length) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating chart directory %s: %w", dir, err)
		}
	}
	path := filepath.Join(dir, ChartFileName(title))
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("saving chart %s: %w", path, err)
	}
	return path, nil
}
