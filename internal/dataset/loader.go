package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/okian/resumedash/internal/domain/filter"
	"github.com/okian/resumedash/internal/domain/model"
	"github.com/okian/resumedash/pkg/logger"
	"github.com/okian/resumedash/pkg/metrics"
)

// naValues are the cell spellings read as missing.
var naValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// Cache loads datasets and memoizes them by cleaned path for the process lifetime.
// Loaded datasets are never mutated, so callers may share them freely.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Dataset

	format       string
	encoding     string
	delimiter    rune
	sheet        string
	regionColumn string
	logger       logger.Logger
}

// NewCache creates a Cache with the given options.
func NewCache(opts ...Option) *Cache {
	c := defaultCache()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the dataset at path, reading it on first use.
// Failures wrap ErrNotFound or ErrParse and are not cached.
func (c *Cache) Load(ctx context.Context, path string) (*Dataset, error) {
	key := filepath.Clean(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ds, ok := c.entries[key]; ok {
		return ds, nil
	}

	start := time.Now()
	ds, err := c.read(key)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, err
	}
	elapsed := time.Since(start)
	c.entries[key] = ds

	metrics.RecordDatasetLoad(ds.Rows(), len(ds.Regions), float64(elapsed.Milliseconds()))
	if c.logger != nil {
		c.logger.Info(ctx, "dataset loaded",
			logger.String("path", key),
			logger.Int("rows", ds.Rows()),
			logger.Int("regions", len(ds.Regions)),
			logger.Duration("took", elapsed),
		)
	}
	return ds, nil
}

// Len returns the number of memoized datasets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) read(path string) (*Dataset, error) {
	format := c.format
	if format == "" {
		format = detectFormat(path)
	}

	var (
		df  dataframe.DataFrame
		err error
	)
	switch format {
	case FormatXLSX:
		df, err = c.readXLSX(path)
	default:
		df, err = c.readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	df, err = c.normalize(df)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	return &Dataset{
		Path:     path,
		Frame:    df,
		Regions:  filter.Regions(df),
		LoadedAt: time.Now(),
	}, nil
}

func (c *Cache) readCSV(path string) (dataframe.DataFrame, error) {
	f, err := openFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(c.decoder(f), c.loadOptions(dataframe.WithDelimiter(c.delimiter))...)
	if df.Err != nil {
		return df, fmt.Errorf("%w: %s: %w", ErrParse, path, df.Err)
	}
	return df, nil
}

func (c *Cache) readXLSX(path string) (dataframe.DataFrame, error) {
	if _, err := os.Stat(path); err != nil {
		return dataframe.DataFrame{}, statError(path, err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	defer func() { _ = wb.Close() }()

	sheet := c.sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s: workbook has no sheets", ErrParse, path)
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: sheet %q: %w", ErrParse, path, sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: sheet %q is empty", ErrParse, path, sheet)
	}

	// GetRows drops trailing empty cells; pad every row to the header width.
	width := len(rows[0])
	for i, row := range rows {
		if len(row) > width {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s: row %d has %d cells, header has %d", ErrParse, path, i+1, len(row), width)
		}
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}

	df := dataframe.LoadRecords(rows, c.loadOptions()...)
	if df.Err != nil {
		return df, fmt.Errorf("%w: %s: %w", ErrParse, path, df.Err)
	}
	return df, nil
}

// loadOptions reads every column as text; normalize parses the numeric ones.
func (c *Cache) loadOptions(extra ...dataframe.LoadOption) []dataframe.LoadOption {
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	}
	return append(opts, extra...)
}

func (c *Cache) decoder(r io.Reader) io.Reader {
	if c.encoding == EncodingWindows1251 {
		return transform.NewReader(r, charmap.Windows1251.NewDecoder())
	}
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// normalize renames the region column, checks the schema, parses numeric
// columns and labels missing regions.
func (c *Cache) normalize(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := df.Names()
	if !contains(names, model.ColRegion) && contains(names, c.regionColumn) {
		df = df.Rename(model.ColRegion, c.regionColumn)
		if df.Err != nil {
			return df, df.Err
		}
		names = df.Names()
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if !contains(names, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return df, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	for _, name := range names {
		if !model.IsNumeric(name) {
			continue
		}
		col, err := parseFloats(df.Col(name))
		if err != nil {
			return df, err
		}
		df = df.Mutate(col)
		if df.Err != nil {
			return df, df.Err
		}
	}

	region := df.Col(model.ColRegion)
	values := make([]string, region.Len())
	changed := false
	for i := range values {
		e := region.Elem(i)
		if e.IsNA() || strings.TrimSpace(e.String()) == "" {
			values[i] = model.MissingRegion
			changed = true
			continue
		}
		values[i] = e.String()
	}
	if changed {
		df = df.Mutate(series.New(values, series.String, model.ColRegion))
		if df.Err != nil {
			return df, df.Err
		}
	}
	return df, nil
}

// parseFloats converts a text column to float64. Missing cells become NaN;
// any other cell that is not a number fails the whole column.
func parseFloats(s series.Series) (series.Series, error) {
	values := make([]string, s.Len())
	for i := range values {
		e := s.Elem(i)
		v := strings.TrimSpace(e.String())
		if e.IsNA() || v == "" {
			values[i] = "NaN"
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return s, fmt.Errorf("column %s, data row %d: %q is not a number", s.Name, i+1, e.String())
		}
		values[i] = v
	}
	return series.New(values, series.Float, s.Name), nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, statError(path, err)
	}
	return f, nil
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrParse, path, err)
}

func detectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

func contains(items []string, s string) bool {
	for _, v := range items {
		if v == s {
			return true
		}
	}
	return false
}

func cell(s series.Series, i int) string {
	e := s.Elem(i)
	if e.IsNA() {
		return ""
	}
	return e.String()
}
