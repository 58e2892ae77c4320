package gendata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/okian/resumedash/internal/dataset"
	"github.com/okian/resumedash/internal/domain/model"
	"github.com/okian/resumedash/pkg/logger"
)

var (
	// ErrInvalidConfig is returned for unusable generation settings.
	ErrInvalidConfig = errors.New("invalid generator config")
	// ErrReadBack is returned when the written file does not load back as generated.
	ErrReadBack = errors.New("written dataset does not match the generated records")
)

// readBackTolerance absorbs the fixed-point formatting of written floats.
const readBackTolerance = 1e-6

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("%w: rows must be positive", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// Run generates the dataset, writes it and optionally verifies a running dashboard.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := logger.Get().Named("gendata")
	stats := &Stats{StartTime: time.Now()}

	records := NewGenerator(cfg.Seed).Generate(cfg.Rows)
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Region == "" {
			stats.MissingRegions++
		} else {
			seen[r.Region] = struct{}{}
		}
		if math.IsNaN(r.Salary) {
			stats.MissingSalary++
		}
	}
	stats.Rows = len(records)
	stats.Regions = len(seen)

	if err := Write(cfg.Output, records, cfg.Localized); err != nil {
		return nil, err
	}
	if err := readBack(ctx, cfg.Output, records); err != nil {
		return nil, err
	}
	stats.Duration = time.Since(stats.StartTime)
	l.Info(ctx, "dataset written",
		logger.String("output", cfg.Output),
		logger.Int("rows", stats.Rows),
		logger.Int("regions", stats.Regions),
		logger.Int("missing_regions", stats.MissingRegions),
		logger.Int("missing_salary", stats.MissingSalary),
		logger.Duration("duration", stats.Duration),
	)

	if cfg.VerifyURL != "" {
		if err := Verify(ctx, cfg.VerifyURL, cfg.Output, cfg.Timeout); err != nil {
			return stats, fmt.Errorf("verify: %w", err)
		}
		l.Info(ctx, "dashboard counts verified", logger.String("url", cfg.VerifyURL))
	}
	return stats, nil
}

// readBack loads path through the dashboard loader and checks it against records.
func readBack(ctx context.Context, path string, records []model.ResumeRecord) error {
	ds, err := dataset.NewCache().Load(ctx, path)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}
	return compareRecords(records, ds.Records())
}

func compareRecords(want, got []model.ResumeRecord) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: %d rows generated, %d loaded", ErrReadBack, len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		region := w.Region
		if region == "" {
			region = model.MissingRegion
		}
		switch {
		case g.Region != region:
			return fmt.Errorf("%w: row %d region %q, loaded %q", ErrReadBack, i+1, region, g.Region)
		case g.Category != w.Category:
			return fmt.Errorf("%w: row %d category %q, loaded %q", ErrReadBack, i+1, w.Category, g.Category)
		case !sameNumber(w.Salary, g.Salary):
			return fmt.Errorf("%w: row %d salary %v, loaded %v", ErrReadBack, i+1, w.Salary, g.Salary)
		case !sameNumber(w.Experience, g.Experience):
			return fmt.Errorf("%w: row %d experience %v, loaded %v", ErrReadBack, i+1, w.Experience, g.Experience)
		}
	}
	return nil
}

func sameNumber(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= readBackTolerance
}
