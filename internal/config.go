package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for environment overrides (ENERGY_DATA_DIR etc.)
const envPrefix = "ENERGY"

// TableConfig locates one of the shared tables (retail sales, net generation)
type TableConfig struct {
	File     string `yaml:"file" validate:"required"`
	SkipRows int    `yaml:"skip_rows" split_words:"true" validate:"gte=0"`
}

// RegionConfig tells the pipeline where a region's data lives.
// A region with Components is derived by summing those regions.
type RegionConfig struct {
	Name       Region   `yaml:"name" validate:"region"`
	GasFile    string   `yaml:"gas_file,omitempty" validate:"required_without=Components"`
	Match      string   `yaml:"match,omitempty" validate:"required_without=Components"`
	Components []Region `yaml:"components,omitempty" validate:"omitempty,dive,region"`
}

// Derived reports whether the region is an aggregate of other regions
func (r RegionConfig) Derived() bool {
	return len(r.Components) > 0
}

// GasColumnRule maps state gas table headers containing Keyword onto Sector
type GasColumnRule struct {
	Keyword string `yaml:"keyword" validate:"required"`
	Sector  string `yaml:"sector" validate:"required"`
}

// UnitsConfig holds the display units of each dataset
type UnitsConfig struct {
	Gas         string `yaml:"gas"`
	Electricity string `yaml:"electricity"`
	Generation  string `yaml:"generation"`
}

// InfluxConfig configures the optional InfluxDB export
type InfluxConfig struct {
	URL         string `yaml:"url,omitempty"`
	Org         string `yaml:"org,omitempty"`
	Token       string `yaml:"token,omitempty"`
	Bucket      string `yaml:"bucket,omitempty"`
	Measurement string `yaml:"measurement,omitempty"`
}

type Config struct {
	// DataDir is the directory holding the downloaded tables
	DataDir string `yaml:"data_dir" split_words:"true" validate:"required"`

	// Locale overrides the number formatting locale (e.g. "en_US", "sv_SE")
	Locale string `yaml:"locale,omitempty"`

	Electricity TableConfig `yaml:"electricity"`
	Generation  TableConfig `yaml:"generation"`

	// GasSkipRows is the number of banner rows above the header of a state gas table
	GasSkipRows int `yaml:"gas_skip_rows" split_words:"true" validate:"gte=0"`

	Regions []RegionConfig `yaml:"regions" ignored:"true" validate:"required,dive"`

	// SectorRenames and SourceRenames map lower-case labels to canonical names
	SectorRenames map[string]string `yaml:"sector_renames" ignored:"true"`
	SourceRenames map[string]string `yaml:"source_renames" ignored:"true"`

	// GasColumns are applied in order; a later matching rule wins
	GasColumns []GasColumnRule `yaml:"gas_columns" ignored:"true" validate:"required,dive"`

	FossilSources []string `yaml:"fossil_sources" ignored:"true" validate:"required,min=1"`

	// TotalGeneratedAlternate is read when a generation row has no Total Generated column
	TotalGeneratedAlternate string `yaml:"total_generated_alternate" ignored:"true"`

	Units  UnitsConfig  `yaml:"units"`
	Influx InfluxConfig `yaml:"influx,omitempty"`

	// compiled (not serialized)
	sectors *Canonicalizer `yaml:"-"`
	sources *Canonicalizer `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.energy-breakdown/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".energy-breakdown", "config.yaml")
}

// defaultConfig returns the layout of the EIA downloads as published
func defaultConfig() *Config {
	return &Config{
		DataDir:     "USEIA_Data",
		Electricity: TableConfig{File: "Retail_sales_of_electricity.csv", SkipRows: 4},
		Generation:  TableConfig{File: "Net_generation_for_all_sectors.csv", SkipRows: 4},
		GasSkipRows: 2,
		Regions: []RegionConfig{
			{Name: RegionWashington, GasFile: "NG_CONS_SUM_DCU_SWA_A.csv", Match: "Washington"},
			{Name: RegionOregon, GasFile: "NG_CONS_SUM_DCU_SOR_A.csv", Match: "Oregon"},
			{Name: RegionCalifornia, GasFile: "NG_CONS_SUM_DCU_SCA_A.csv", Match: "California"},
			{Name: RegionWestCoast, Components: []Region{RegionWashington, RegionOregon, RegionCalifornia}},
			{Name: RegionUnitedStates, GasFile: "NG_CONS_SUM_DCU_NUS_A.csv", Match: "United States"},
		},
		SectorRenames: map[string]string{
			"all sectors":    SectorTotalDelivered,
			"residential":    SectorResidential,
			"commercial":     SectorCommercial,
			"industrial":     SectorIndustrial,
			"transportation": SectorVehicleFuel,
			"other":          SectorOther,
		},
		SourceRenames: map[string]string{
			"all fuels":         SourceTotalGenerated,
			"coal":              SourceCoal,
			"petroleum liquids": SourcePetroleum,
			"petroleum coke":    SourcePetroleumCoke,
			"natural gas":       SourceNaturalGas,
			"other":             SourceOtherGases,
		},
		GasColumns: []GasColumnRule{
			{Keyword: "Residential", Sector: SectorResidential},
			{Keyword: "Commercial", Sector: SectorCommercial},
			{Keyword: "Industrial", Sector: SectorIndustrial},
			{Keyword: "Vehicle Fuel Consumption", Sector: SectorVehicleFuel},
			{Keyword: "Electric Power", Sector: SectorElectricPower},
			{Keyword: "Delivered to Consumers", Sector: SectorTotalDelivered},
		},
		FossilSources:           []string{SourceCoal, SourceNaturalGas, SourcePetroleumCoke, SourcePetroleum},
		TotalGeneratedAlternate: "all fuels (utility-scale)",
		Units: UnitsConfig{
			Gas:         "MMcf",
			Electricity: "GWh",
			Generation:  "GWh",
		},
		Influx: InfluxConfig{Measurement: "energy_consumption"},
	}
}

// NewDefaultConfig creates the built-in configuration with environment overrides applied.
// Use this when no config file exists.
func NewDefaultConfig() (*Config, error) {
	cfg := defaultConfig()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a yaml config file on top of the built-in defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies environment overrides, validates and compiles the rename tables
func (c *Config) finish() error {
	if err := envconfig.Process(envPrefix, c); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}

	if err := c.Validate(); err != nil {
		return err
	}

	c.sectors = NewCanonicalizer(c.SectorRenames, SectorVocabulary...)
	c.sources = NewCanonicalizer(c.SourceRenames, SourceVocabulary...)
	return nil
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	// Region values must belong to the closed set of supported regions
	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		r, err := ParseRegion(fl.Field().String())
		return err == nil && string(r) == fl.Field().String()
	})
	return v
}

// Validate checks field constraints and that every derived region refers to configured regions
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	known := make(map[Region]RegionConfig, len(c.Regions))
	for _, r := range c.Regions {
		if _, ok := known[r.Name]; ok {
			return fmt.Errorf("invalid config: region %q configured twice", r.Name)
		}
		known[r.Name] = r
	}
	// Components must be base regions, so derived regions are one level deep
	// and cannot form cycles
	for _, r := range c.Regions {
		if r.Derived() && (r.GasFile != "" || r.Match != "") {
			return fmt.Errorf("invalid config: derived region %q cannot also have gas_file or match", r.Name)
		}
		for _, comp := range r.Components {
			if comp == r.Name {
				return fmt.Errorf("invalid config: region %q refers to itself", r.Name)
			}
			target, ok := known[comp]
			if !ok {
				return fmt.Errorf("invalid config: region %q refers to unconfigured region %q", r.Name, comp)
			}
			if target.Derived() {
				return fmt.Errorf("invalid config: region %q refers to derived region %q", r.Name, comp)
			}
		}
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Region returns the configuration of a region
func (c *Config) Region(name Region) (RegionConfig, error) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, nil
		}
	}
	return RegionConfig{}, fmt.Errorf("%w: %q is not configured", ErrUnknownRegion, name)
}

// DataPath resolves a configured file name against DataDir, keeping any format prefix
func (c *Config) DataPath(file string) string {
	format, path := ParseFileArg(file)
	if !filepath.IsAbs(path) && c.DataDir != "" {
		path = filepath.Join(c.DataDir, path)
	}
	if format != "" {
		return format + ":" + path
	}
	return path
}

// SectorNames returns the compiled sector canonicalizer
func (c *Config) SectorNames() *Canonicalizer {
	if c.sectors == nil {
		c.sectors = NewCanonicalizer(c.SectorRenames, SectorVocabulary...)
	}
	return c.sectors
}

// SourceNames returns the compiled generation source canonicalizer
func (c *Config) SourceNames() *Canonicalizer {
	if c.sources == nil {
		c.sources = NewCanonicalizer(c.SourceRenames, SourceVocabulary...)
	}
	return c.sources
}

// ClassifyRules returns the renewable/fossil classification rules of this config
func (c *Config) ClassifyRules() ClassifyRules {
	return ClassifyRules{
		FossilSources:  c.FossilSources,
		AlternateTotal: strings.TrimSpace(c.TotalGeneratedAlternate),
	}
}
