package dataset

import (
	"strings"

	"github.com/okian/resumedash/internal/domain/model"
	"github.com/okian/resumedash/pkg/logger"
)

// Supported file formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Supported CSV charsets.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
)

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithFormat forces the file format; empty means detect from the extension.
func WithFormat(format string) Option {
	return func(c *Cache) {
		c.format = strings.ToLower(strings.TrimSpace(format))
	}
}

// WithEncoding sets the CSV charset. Unknown names fall back to UTF-8.
func WithEncoding(encoding string) Option {
	return func(c *Cache) {
		switch strings.ToLower(strings.TrimSpace(encoding)) {
		case "windows-1251", "cp1251":
			c.encoding = EncodingWindows1251
		default:
			c.encoding = EncodingUTF8
		}
	}
}

// WithDelimiter sets the CSV field separator.
func WithDelimiter(r rune) Option {
	return func(c *Cache) {
		if r != 0 {
			c.delimiter = r
		}
	}
}

// WithSheet selects the workbook sheet for xlsx datasets.
func WithSheet(sheet string) Option {
	return func(c *Cache) {
		c.sheet = sheet
	}
}

// WithRegionColumn sets the source column renamed to model.ColRegion.
func WithRegionColumn(column string) Option {
	return func(c *Cache) {
		if column != "" {
			c.regionColumn = column
		}
	}
}

// WithLogger sets a custom logger for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func defaultCache() *Cache {
	return &Cache{
		entries:      make(map[string]*Dataset),
		encoding:     EncodingUTF8,
		delimiter:    ',',
		regionColumn: model.LocalizedRegionColumn,
	}
}
