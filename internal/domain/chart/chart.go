// Package chart maps a chart identifier to its filter and aggregate pipeline
// and produces a renderable Figure.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/okian/resumedash/internal/domain/aggregate"
	"github.com/okian/resumedash/internal/domain/filter"
	"github.com/okian/resumedash/internal/domain/model"
)

// ErrUnknownChart is returned for identifiers outside the catalog.
var ErrUnknownChart = errors.New("unknown chart")

// ID identifies one dashboard chart.
type ID string

// The seven dashboard charts, in sidebar order.
const (
	TopRegions         ID = "top-regions"
	TopProfessions     ID = "top-professions"
	SalaryVsExperience ID = "salary-vs-experience"
	Education          ID = "education"
	SalaryStats        ID = "salary-stats"
	SalaryByConditions ID = "salary-by-conditions"
	SalaryBySex        ID = "salary-by-sex"
)

// IDs lists every chart in sidebar order.
var IDs = []ID{
	TopRegions,
	TopProfessions,
	SalaryVsExperience,
	Education,
	SalaryStats,
	SalaryByConditions,
	SalaryBySex,
}

// Kind is the visual form of a chart.
type Kind string

const (
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
	KindBox     Kind = "box"
	KindTable   Kind = "table"
)

// Descriptor describes a catalog entry.
type Descriptor struct {
	ID    ID     `json:"id"`
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
}

// Figure is the data and labels of one built chart.
// Exactly one of the data slices is populated, according to Kind.
type Figure struct {
	Chart         ID                       `json:"chart"`
	Kind          Kind                     `json:"kind"`
	Title         string                   `json:"title"`
	Subtitle      string                   `json:"subtitle"`
	XLabel        string                   `json:"x_label,omitempty"`
	YLabel        string                   `json:"y_label,omitempty"`
	RotateXTicks  bool                     `json:"rotate_x_ticks,omitempty"`
	Regions       []string                 `json:"regions"`
	Rows          int                      `json:"rows"`
	Counts        []aggregate.Count        `json:"counts,omitempty"`
	Stats         []aggregate.GroupStat    `json:"stats,omitempty"`
	Points        []aggregate.Point        `json:"points,omitempty"`
	Distributions []aggregate.Distribution `json:"distributions,omitempty"`
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindBar:
		return len(f.Counts) == 0
	case KindTable:
		return len(f.Stats) == 0
	case KindScatter:
		return len(f.Points) == 0
	case KindBox:
		return len(f.Distributions) == 0
	}
	return true
}

var kinds = map[ID]Kind{
	TopRegions:         KindBar,
	TopProfessions:     KindBar,
	SalaryVsExperience: KindScatter,
	Education:          KindBar,
	SalaryStats:        KindTable,
	SalaryByConditions: KindBox,
	SalaryBySex:        KindBox,
}

// Catalog builds figures for the fixed set of charts.
// It holds configuration only and is safe for concurrent use.
type Catalog struct {
	lang           string
	topRegions     int
	topProfessions int
	statsLimit     int
	scatterHue     bool
}

// NewCatalog creates a Catalog with the given options.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		lang:           LangEN,
		topRegions:     20,
		topProfessions: 10,
		statsLimit:     20,
		scatterHue:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Language returns the configured label language.
func (c *Catalog) Language() string {
	return c.lang
}

// Descriptors lists the charts in sidebar order with localized titles.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(IDs))
	for _, id := range IDs {
		out = append(out, Descriptor{ID: id, Kind: kinds[id], Title: chartText[c.lang][id].title})
	}
	return out
}

// Lookup resolves a slug or a chart title in any supported language.
func (c *Catalog) Lookup(key string) (Descriptor, error) {
	key = strings.TrimSpace(key)
	for _, id := range IDs {
		if string(id) == key {
			return c.descriptor(id), nil
		}
	}
	for _, text := range chartText {
		for id, l := range text {
			if l.title == key {
				return c.descriptor(id), nil
			}
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownChart, key)
}

func (c *Catalog) descriptor(id ID) Descriptor {
	return Descriptor{ID: id, Kind: kinds[id], Title: chartText[c.lang][id].title}
}

// Build filters df by sel and computes the figure for id.
// It has no side effects: equal inputs give equal figures.
func (c *Catalog) Build(df dataframe.DataFrame, id ID, sel filter.Selection) (Figure, error) {
	kind, ok := kinds[id]
	if !ok {
		return Figure{}, fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}

	subset, err := filter.Apply(df, sel)
	if err != nil {
		return Figure{}, fmt.Errorf("build %s: %w", id, err)
	}

	l := chartText[c.lang][id]
	fig := Figure{
		Chart:   id,
		Kind:    kind,
		Title:   l.title,
		XLabel:  l.xLabel,
		YLabel:  l.yLabel,
		Regions: sel.Resolve(filter.Regions(df)),
		Rows:    subset.Nrow(),
	}

	switch id {
	case TopRegions:
		fig.Subtitle = fmt.Sprintf(l.subtitle, c.topRegions)
		var known dataframe.DataFrame
		if known, err = filter.Known(subset); err == nil {
			fig.Counts, err = aggregate.TopN(known, model.ColRegion, c.topRegions)
		}
	case TopProfessions:
		fig.Subtitle = l.subtitle
		fig.Counts, err = aggregate.TopN(subset, model.ColCategory, c.topProfessions)
	case Education:
		fig.Subtitle = l.subtitle
		fig.Counts, err = aggregate.TopN(subset, model.ColEducation, 0)
	case SalaryVsExperience:
		fig.Subtitle = l.subtitle
		hue := ""
		if c.scatterHue {
			hue = model.ColRegion
		}
		fig.Points, err = aggregate.Points(subset, model.ColExperience, model.ColSalary, hue)
	case SalaryStats:
		fig.Subtitle = fmt.Sprintf(l.subtitle, c.statsLimit)
		var known dataframe.DataFrame
		if known, err = filter.Known(subset); err == nil {
			fig.Stats, err = aggregate.GroupStats(known, model.ColRegion, model.ColSalary, c.statsLimit)
		}
	case SalaryByConditions:
		fig.Subtitle = l.subtitle
		fig.RotateXTicks = true
		fig.Distributions, err = aggregate.Distributions(subset, model.ColConditions, model.ColSalary)
	case SalaryBySex:
		fig.Subtitle = l.subtitle
		fig.Distributions, err = aggregate.Distributions(subset, model.ColSex, model.ColSalary)
	}
	if err != nil {
		return Figure{}, fmt.Errorf("build %s: %w", id, err)
	}
	return fig, nil
}
