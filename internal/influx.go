package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// fieldName turns a sector name into an InfluxDB field key ("Vehicle Fuel" -> "vehicle_fuel")
func fieldName(sector string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(sector)), " ", "_")
}

// SeriesPoints converts a series into one point per year, tagged with the
// region and stamped at the start of the year (UTC)
func SeriesPoints(s YearSeries, measurement string, unit string) []*write.Point {
	points := make([]*write.Point, 0, len(s.Points))
	for _, p := range s.Points {
		fields := make(map[string]interface{}, len(s.Sectors))
		for _, sector := range s.Sectors {
			fields[fieldName(sector)] = p.Values[sector]
		}
		tags := map[string]string{"region": s.Region.Slug()}
		if unit != "" {
			tags["unit"] = unit
		}
		points = append(points, write.NewPoint(
			measurement,
			tags,
			fields,
			time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
		))
	}
	return points
}

// ExportSeries writes a series to InfluxDB and waits for the write to finish
func ExportSeries(ctx context.Context, cfg InfluxConfig, unit string, s YearSeries) error {
	if cfg.URL == "" {
		return fmt.Errorf("exporting %s series: no InfluxDB URL configured", s.Region)
	}
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = "energy_consumption"
	}

	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	defer client.Close()

	writeAPI := client.WriteAPIBlocking(cfg.Org, cfg.Bucket)
	if err := writeAPI.WritePoint(ctx, SeriesPoints(s, measurement, unit)...); err != nil {
		return fmt.Errorf("exporting %s series to %s: %w", s.Region, cfg.URL, err)
	}
	return nil
}
