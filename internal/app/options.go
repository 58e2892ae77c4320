package service

import (
	"github.com/okian/resumedash/internal/dataset"
	"github.com/okian/resumedash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetPath sets the dataset file loaded on Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithDatasetFormat forces csv or xlsx; empty detects from the extension.
func WithDatasetFormat(format string) Option {
	return func(s *Service) {
		s.format = format
	}
}

// WithEncoding sets the CSV charset.
func WithEncoding(encoding string) Option {
	return func(s *Service) {
		s.encoding = encoding
	}
}

// WithDelimiter sets the CSV field separator.
func WithDelimiter(r rune) Option {
	return func(s *Service) {
		if r != 0 {
			s.delimiter = r
		}
	}
}

// WithSheet sets the workbook sheet read from xlsx datasets.
func WithSheet(sheet string) Option {
	return func(s *Service) {
		s.sheet = sheet
	}
}

// WithRegionColumn sets the source column that holds the region.
func WithRegionColumn(column string) Option {
	return func(s *Service) {
		if column != "" {
			s.regionColumn = column
		}
	}
}

// WithLanguage sets the chart label language.
func WithLanguage(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.language = lang
		}
	}
}

// WithTopRegions sets the length of the region ranking.
func WithTopRegions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topRegions = n
		}
	}
}

// WithTopProfessions sets the length of the profession ranking.
func WithTopProfessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topProfessions = n
		}
	}
}

// WithStatsLimit sets how many regions the salary table keeps.
func WithStatsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.statsLimit = n
		}
	}
}

// WithScatterHue toggles colouring scatter points by region.
func WithScatterHue(on bool) Option {
	return func(s *Service) {
		s.scatterHue = on
	}
}

// WithChartSize sets the rendered image size in pixels.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.chartWidth, s.chartHeight = width, height
		}
	}
}

// WithPrerenderWorkers sets the startup prerender pool size; 0 disables it.
func WithPrerenderWorkers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.prerenderWorkers = n
		}
	}
}

// WithCache shares a dataset cache between services.
func WithCache(c *dataset.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
