// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and RESUMEDASH_* env vars.
// - Validation failures wrap ErrInvalidConfig; provider failures wrap ErrLoadConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the resume dataset (.csv or .xlsx).
	DatasetPath string `koanf:"dataset_path"`

	// DatasetFormat forces "csv" or "xlsx"; empty means detect from the extension.
	DatasetFormat string `koanf:"dataset_format"`

	// DatasetEncoding is the CSV charset: "utf-8" or "windows-1251".
	DatasetEncoding string `koanf:"dataset_encoding"`

	// CSVDelimiter is the single-character CSV field separator.
	CSVDelimiter string `koanf:"csv_delimiter"`

	// XLSXSheet selects the workbook sheet; empty means the first one.
	XLSXSheet string `koanf:"xlsx_sheet"`

	// RegionColumn is the source column renamed to "Region" on load.
	RegionColumn string `koanf:"region_column"`

	// Language selects dashboard labels: "en" or "ru".
	Language string `koanf:"language"`

	// ScatterHue colors the salary/experience scatter plot by region.
	ScatterHue bool `koanf:"scatter_hue"`

	// TopRegions, TopProfessions and StatsLimit cap the ranked charts.
	TopRegions     int `koanf:"top_regions"`
	TopProfessions int `koanf:"top_professions"`
	StatsLimit     int `koanf:"stats_limit"`

	// ChartWidth and ChartHeight size rendered PNG charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// PrerenderWorkers renders the unfiltered charts at startup; 0 disables it.
	PrerenderWorkers int `koanf:"prerender_workers"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DatasetPath:     "resumes_cleaned.csv",
		DatasetEncoding: "utf-8",
		CSVDelimiter:    ",",
		RegionColumn:    "Область",
		Language:        "en",
		ScatterHue:      true,
		TopRegions:      20,
		TopProfessions:  10,
		StatsLimit:      20,
		ChartWidth:      960,
		ChartHeight:     640,

		PrerenderWorkers: 2,
	}
}
