package chart

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithLanguage selects the label language. Unknown values keep English.
func WithLanguage(lang string) Option {
	return func(c *Catalog) {
		if _, ok := chartText[lang]; ok {
			c.lang = lang
		}
	}
}

// WithTopRegions sets how many regions the region ranking shows.
func WithTopRegions(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.topRegions = n
		}
	}
}

// WithTopProfessions sets how many professions the profession ranking shows.
func WithTopProfessions(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.topProfessions = n
		}
	}
}

// WithStatsLimit sets how many regions the salary statistics table keeps.
func WithStatsLimit(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.statsLimit = n
		}
	}
}

// WithScatterHue toggles colouring scatter points by region.
func WithScatterHue(on bool) Option {
	return func(c *Catalog) {
		c.scatterHue = on
	}
}
