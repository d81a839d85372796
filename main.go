package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/energy-breakdown/internal"
)

type Params struct {
	Region    string   `descr:"Region to report on" alts:"washington,oregon,california,west-coast,united-states" strict:"true" default:"west-coast"`
	Year      int      `descr:"Year to report on (first year of a series)" default:"2022"`
	EndYear   int      `descr:"Last year of a series report (default: --year)" optional:"true"`
	Report    string   `descr:"Report to produce" alts:"gas,electricity,combined,split,generation,series" strict:"true" default:"combined"`
	Sectors   []string `descr:"Extra sectors for series reports (Residential is always included)" optional:"true"`
	Output    string   `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Config    string   `descr:"Path to config file (default: ~/.energy-breakdown/config.yaml)" optional:"true"`
	DataDir   string   `descr:"Directory holding the EIA tables (overrides config)" optional:"true"`
	Locale    string   `descr:"Locale for number formatting, e.g. en_US or sv_SE (default: system)" optional:"true"`
	ChartDir  string   `descr:"Write a PNG chart of each report to this directory" optional:"true"`
	Xlsx      string   `descr:"Write the reports to this xlsx workbook" optional:"true"`
	InfluxUrl string   `descr:"Export series reports to this InfluxDB URL" optional:"true"`
	Verbose   bool     `descr:"Log table loads and other diagnostics to stderr" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("energy-breakdown").
		WithShort("Break down regional energy use by sector from EIA tables").
		WithLong("Reads EIA natural gas consumption, electricity retail sales and net generation tables " +
			"and reports consumption by sector, with gas burned for electricity allocated to the sectors " +
			"that bought the electricity, plus renewable/fossil generation splits and multi-year series.").
		WithRunFunc(func(params *Params) {
			level := "info"
			if params.Verbose {
				level = "debug"
			}
			logger := internal.NewLogger(os.Stderr, level)

			if err := run(params, os.Stdout, logger); err != nil {
				logger.Error("energy-breakdown failed", "error", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, w io.Writer, logger *slog.Logger) error {
	cfg, err := loadConfig(params, logger)
	if err != nil {
		return err
	}
	if params.DataDir != "" {
		cfg.DataDir = params.DataDir
	}
	if params.InfluxUrl != "" {
		cfg.Influx.URL = params.InfluxUrl
	}
	locale := cfg.Locale
	if params.Locale != "" {
		locale = params.Locale
	}

	region, err := internal.ParseRegion(params.Region)
	if err != nil {
		return err
	}

	pipeline := internal.NewPipeline(cfg, internal.WithLogger(logger))

	var (
		reports []internal.Report
		series  *internal.YearSeries
		unit    = cfg.Units.Gas
	)
	switch params.Report {
	case "gas":
		row, err := pipeline.GasRow(region, params.Year)
		if err != nil {
			return err
		}
		reports = append(reports, internal.GasReport(unit, row))
	case "electricity":
		unit = cfg.Units.Electricity
		row, err := pipeline.ElectricityRow(region, params.Year)
		if err != nil {
			return err
		}
		reports = append(reports, internal.ElectricityReport(unit, row))
	case "generation":
		unit = cfg.Units.Generation
		row, err := pipeline.GenerationRow(region, params.Year)
		if err != nil {
			return err
		}
		reports = append(reports, internal.GenerationReport(unit, row))
	case "series":
		end := params.EndYear
		if end == 0 {
			end = params.Year
		}
		extra, err := canonicalSectors(cfg, params.Sectors)
		if err != nil {
			return err
		}
		s, err := pipeline.Series(region, params.Year, end, extra...)
		if err != nil {
			return err
		}
		series = &s
		reports = append(reports, internal.SeriesReport(unit, s))
	default:
		mode := internal.AllocateCombine
		if params.Report == "split" {
			mode = internal.AllocateSplit
		}
		alloc, err := pipeline.Breakdown(region, params.Year, mode)
		if err != nil {
			return err
		}
		reports = append(reports, internal.AllocationReport(unit, alloc))
	}

	switch params.Output {
	case "json":
		if err := internal.PrintReportsJSON(w, reports...); err != nil {
			return err
		}
	default:
		u := internal.GetUnit(unit, locale)
		for _, rep := range reports {
			internal.PrintReportTable(w, rep, u)
		}
	}

	if params.ChartDir != "" {
		for _, rep := range reports {
			var path string
			var err error
			if series != nil {
				path, err = internal.RenderSeriesChart(params.ChartDir, unit, *series)
			} else {
				path, err = internal.RenderReportChart(params.ChartDir, rep)
			}
			if err != nil {
				return err
			}
			logger.Info("wrote chart", "path", path)
		}
	}

	if params.Xlsx != "" {
		if err := internal.WriteWorkbook(params.Xlsx, reports...); err != nil {
			return err
		}
		logger.Info("wrote workbook", "path", params.Xlsx)
	}

	if cfg.Influx.URL != "" {
		if series == nil {
			logger.Warn("influx export only applies to series reports", "report", params.Report)
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := internal.ExportSeries(ctx, cfg.Influx, unit, *series); err != nil {
			return err
		}
		logger.Info("exported series", "url", cfg.Influx.URL, "points", len(series.Points))
	}

	return nil
}

// loadConfig reads the config file if there is one, otherwise the built-in defaults
func loadConfig(params *Params, logger *slog.Logger) (*internal.Config, error) {
	path := params.Config
	explicit := path != ""
	if !explicit {
		path = internal.DefaultConfigPath()
	}

	if path != "" {
		cfg, err := internal.LoadConfig(path)
		if err == nil {
			logger.Debug("loaded config", "path", path)
			return cfg, nil
		}
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return internal.NewDefaultConfig()
}

// canonicalSectors maps sector names given on the command line to canonical
// end-use sector names, ignoring case
func canonicalSectors(cfg *internal.Config, names []string) ([]string, error) {
	var sectors []string
	for _, name := range names {
		s := endUseSector(cfg.SectorNames().Canonical(name))
		if s == "" {
			return nil, fmt.Errorf("unknown sector %q (available: %v)", name, internal.EndUseSectors)
		}
		sectors = append(sectors, s)
	}
	return sectors, nil
}

func endUseSector(name string) string {
	for _, s := range internal.EndUseSectors {
		if strings.EqualFold(s, name) {
			return s
		}
	}
	return ""
}
