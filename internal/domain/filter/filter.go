// Package filter narrows the resume table to a set of selected regions.
package filter

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/resumedash/internal/domain/model"
)

// Selection is a set of Region values. The zero value selects nothing;
// use All for the default "every region" selection.
type Selection struct {
	all     bool
	regions []string
}

// All selects every region present in the dataset.
func All() Selection {
	return Selection{all: true}
}

// Only selects exactly the given regions. Only() is the empty selection.
func Only(regions ...string) Selection {
	out := make([]string, len(regions))
	copy(out, regions)
	return Selection{regions: out}
}

// IsAll reports whether the selection is the "every region" default.
func (s Selection) IsAll() bool { return s.all }

// IsEmpty reports whether the selection excludes every row.
func (s Selection) IsEmpty() bool { return !s.all && len(s.regions) == 0 }

// Resolve expands the selection against the dataset's distinct regions.
func (s Selection) Resolve(available []string) []string {
	src := s.regions
	if s.all {
		src = available
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Apply returns the rows whose Region is in sel, in their original order and
// with all columns. Selecting every region returns df unchanged.
func Apply(df dataframe.DataFrame, sel Selection) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("filter: %w", df.Err)
	}
	if sel.all {
		return df, nil
	}

	out := df.Filter(dataframe.F{
		Colname:    model.ColRegion,
		Comparator: series.In,
		Comparando: sel.Resolve(nil),
	})
	if out.Err != nil {
		return out, fmt.Errorf("filter by %s: %w", model.ColRegion, out.Err)
	}
	return out, nil
}

// Known drops rows whose Region is the missing-region label. Such rows stay
// selectable but are not a region of their own in region-keyed aggregates.
func Known(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("filter: %w", df.Err)
	}
	if df.Nrow() == 0 || !hasMissingRegion(df) {
		return df, nil
	}
	out := df.Filter(dataframe.F{
		Colname:    model.ColRegion,
		Comparator: series.Neq,
		Comparando: model.MissingRegion,
	})
	if out.Err != nil {
		return out, fmt.Errorf("filter by %s: %w", model.ColRegion, out.Err)
	}
	return out, nil
}

func hasMissingRegion(df dataframe.DataFrame) bool {
	for _, v := range df.Col(model.ColRegion).Records() {
		if v == model.MissingRegion {
			return true
		}
	}
	return false
}

// Regions lists the distinct, non-missing Region values in first-encountered order.
func Regions(df dataframe.DataFrame) []string {
	return Distinct(df, model.ColRegion)
}

// Distinct lists the distinct, non-missing values of column in first-encountered order.
func Distinct(df dataframe.DataFrame, column string) []string {
	col := df.Col(column)
	if col.Err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.String()
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
