package internal

import (
	"fmt"
	"io"
	"log/slog"
)

// Pipeline turns the configured tables into per-region, per-year rows.
// Every call reads its tables afresh; nothing is cached between calls.
type Pipeline struct {
	cfg    *Config
	logger *slog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline over the given configuration
func NewPipeline(cfg *Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the pipeline's configuration
func (p *Pipeline) Config() *Config {
	return p.cfg
}

// GasRow returns the state natural gas consumption row of a region
func (p *Pipeline) GasRow(region Region, year int) (SectorRow, error) {
	rc, err := p.cfg.Region(region)
	if err != nil {
		return SectorRow{}, err
	}
	if rc.Derived() {
		return p.aggregateComponents(rc, year, p.GasRow)
	}

	raw, err := p.load(DatasetGas, rc.GasFile, p.cfg.GasSkipRows)
	if err != nil {
		return SectorRow{}, err
	}
	table, err := NormalizeGas(raw, year, string(region), p.cfg.GasColumns)
	if err != nil {
		return SectorRow{}, err
	}
	row, err := FilterPivot(table, year, "", GasSectors...)
	if err != nil {
		return SectorRow{}, fmt.Errorf("reading %s gas consumption: %w", region, err)
	}
	row.Region = string(region)
	return row, nil
}

// ElectricityRow returns the retail electricity sales row of a region
func (p *Pipeline) ElectricityRow(region Region, year int) (SectorRow, error) {
	rc, err := p.cfg.Region(region)
	if err != nil {
		return SectorRow{}, err
	}
	if rc.Derived() {
		return p.aggregateComponents(rc, year, p.ElectricityRow)
	}

	raw, err := p.load(DatasetElectricity, p.cfg.Electricity.File, p.cfg.Electricity.SkipRows)
	if err != nil {
		return SectorRow{}, err
	}
	table, err := NormalizeLong(raw, DatasetElectricity, year, p.cfg.SectorNames())
	if err != nil {
		return SectorRow{}, err
	}
	row, err := FilterPivot(table, year, rc.Match, ElectricitySectors...)
	if err != nil {
		return SectorRow{}, fmt.Errorf("reading %s electricity sales: %w", region, err)
	}
	row.Region = string(region)
	return row, nil
}

// GenerationRow returns the classified net generation row of a region.
// Derived regions sum their components' source columns before classifying.
func (p *Pipeline) GenerationRow(region Region, year int) (SourceRow, error) {
	row, err := p.generationSources(region, year)
	if err != nil {
		return SourceRow{}, err
	}
	classified, err := Classify(row, p.cfg.ClassifyRules())
	if err != nil {
		return SourceRow{}, fmt.Errorf("classifying %s generation: %w", region, err)
	}
	if classified.Total.Origin == TotalFromAlternate {
		p.logger.Debug("total generation read from alternate column",
			"region", region, "year", year, "column", classified.Total.Column)
	}
	return classified, nil
}

func (p *Pipeline) generationSources(region Region, year int) (SectorRow, error) {
	rc, err := p.cfg.Region(region)
	if err != nil {
		return SectorRow{}, err
	}
	if rc.Derived() {
		return p.aggregateComponents(rc, year, p.generationSources)
	}

	raw, err := p.load(DatasetGeneration, p.cfg.Generation.File, p.cfg.Generation.SkipRows)
	if err != nil {
		return SectorRow{}, err
	}
	table, err := NormalizeLong(raw, DatasetGeneration, year, p.cfg.SourceNames())
	if err != nil {
		return SectorRow{}, err
	}
	row, err := FilterPivot(table, year, rc.Match, GenerationSources...)
	if err != nil {
		return SectorRow{}, fmt.Errorf("reading %s net generation: %w", region, err)
	}
	row.Region = string(region)
	return row, nil
}

// Breakdown returns the gas row of a region with gas burned for electricity
// allocated to the end-use sectors
func (p *Pipeline) Breakdown(region Region, year int, mode AllocationMode) (Allocation, error) {
	gas, err := p.GasRow(region, year)
	if err != nil {
		return Allocation{}, err
	}
	electricity, err := p.ElectricityRow(region, year)
	if err != nil {
		return Allocation{}, err
	}
	return Allocate(gas, electricity, mode)
}

// Series builds the combined Residential (plus extra sectors) series of a region
func (p *Pipeline) Series(region Region, start, end int, extra ...string) (YearSeries, error) {
	return BuildSeries(p, region, start, end, extra...)
}

func (p *Pipeline) aggregateComponents(rc RegionConfig, year int, rowFor func(Region, int) (SectorRow, error)) (SectorRow, error) {
	rows := make([]SectorRow, 0, len(rc.Components))
	for _, comp := range rc.Components {
		row, err := rowFor(comp, year)
		if err != nil {
			return SectorRow{}, fmt.Errorf("aggregating %s: %w", rc.Name, err)
		}
		rows = append(rows, row)
	}
	return AggregateYear(string(rc.Name), rows...)
}

func (p *Pipeline) load(dataset Dataset, file string, skipRows int) (RawTable, error) {
	path := p.cfg.DataPath(file)
	raw, err := LoadTable(path, skipRows)
	if err != nil {
		return RawTable{}, err
	}
	p.logger.Debug("loaded table", "dataset", dataset, "path", path, "rows", len(raw.Rows))
	return raw, nil
}
