// Package aggregate computes the summaries behind every dashboard chart:
// value counts, per-group salary statistics and raw plot series.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownColumn is returned when a requested column is not in the table.
var ErrUnknownColumn = errors.New("unknown column")

// Count is one row of a value-count ranking.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GroupStat holds descriptive statistics for one group.
type GroupStat struct {
	Group  string  `json:"group"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   float64 `json:"mode"`
	Count  int     `json:"count"`
}

// Point is one scatter observation.
type Point struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Hue string  `json:"hue,omitempty"`
}

// Distribution holds the raw values observed for one category.
type Distribution struct {
	Category string    `json:"category"`
	Values   []float64 `json:"values"`
}

// TopN counts non-missing values of column and returns the n most frequent.
// Ties keep first-encountered order. n <= 0 returns every value.
func TopN(df dataframe.DataFrame, column string, n int) ([]Count, error) {
	col, err := columnOf(df, column)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	counts := make([]Count, 0)
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.String()
		pos, ok := index[v]
		if !ok {
			pos = len(counts)
			index[v] = pos
			counts = append(counts, Count{Value: v})
		}
		counts[pos].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}

// GroupStats computes mean, median and mode of valueColumn per distinct
// groupColumn value. Groups without numeric values have no mode and are
// omitted. The result is ordered by mean, highest first, and truncated to
// limit when limit > 0.
func GroupStats(df dataframe.DataFrame, groupColumn, valueColumn string, limit int) ([]GroupStat, error) {
	groups, values, err := collect(df, groupColumn, valueColumn)
	if err != nil {
		return nil, err
	}

	out := make([]GroupStat, 0, len(groups))
	for _, g := range groups {
		vals := values[g]
		mode, ok := Mode(vals)
		if !ok {
			continue
		}
		out = append(out, GroupStat{
			Group:  g,
			Mean:   stat.Mean(vals, nil),
			Median: Median(vals),
			Mode:   mode,
			Count:  len(vals),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mean > out[j].Mean
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Points extracts (x, y, hue) triples. Rows with a missing x or y are skipped.
// Hue is left empty when hueColumn is "".
func Points(df dataframe.DataFrame, xColumn, yColumn, hueColumn string) ([]Point, error) {
	xs, err := columnOf(df, xColumn)
	if err != nil {
		return nil, err
	}
	ys, err := columnOf(df, yColumn)
	if err != nil {
		return nil, err
	}
	var hue series.Series
	if hueColumn != "" {
		if hue, err = columnOf(df, hueColumn); err != nil {
			return nil, err
		}
	}

	xf, yf := xs.Float(), ys.Float()
	out := make([]Point, 0, len(xf))
	for i := range xf {
		if math.IsNaN(xf[i]) || math.IsNaN(yf[i]) {
			continue
		}
		p := Point{X: xf[i], Y: yf[i]}
		if hueColumn != "" {
			if e := hue.Elem(i); !e.IsNA() {
				p.Hue = e.String()
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Distributions groups the numeric values of valueColumn by categoryColumn.
// Categories keep first-encountered order; categories left without values are
// omitted.
func Distributions(df dataframe.DataFrame, categoryColumn, valueColumn string) ([]Distribution, error) {
	groups, values, err := collect(df, categoryColumn, valueColumn)
	if err != nil {
		return nil, err
	}
	out := make([]Distribution, 0, len(groups))
	for _, g := range groups {
		if len(values[g]) == 0 {
			continue
		}
		out = append(out, Distribution{Category: g, Values: values[g]})
	}
	return out, nil
}

// Median returns the middle value of vals, averaging the two middle values
// for even lengths. It returns NaN for an empty slice. vals is not modified.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Mode returns the most frequent value, preferring the smallest on ties.
// The second result is false for an empty slice.
func Mode(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	best, bestRun := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestRun {
			best, bestRun = sorted[i], j-i
		}
		i = j
	}
	return best, true
}

// collect returns group names in first-encountered order and the non-NaN
// values seen for each. Rows with a missing group are skipped.
func collect(df dataframe.DataFrame, groupColumn, valueColumn string) ([]string, map[string][]float64, error) {
	gcol, err := columnOf(df, groupColumn)
	if err != nil {
		return nil, nil, err
	}
	vcol, err := columnOf(df, valueColumn)
	if err != nil {
		return nil, nil, err
	}

	vals := vcol.Float()
	var order []string
	values := make(map[string][]float64)
	for i := 0; i < gcol.Len(); i++ {
		e := gcol.Elem(i)
		if e.IsNA() {
			continue
		}
		g := e.String()
		if _, ok := values[g]; !ok {
			order = append(order, g)
			values[g] = []float64{}
		}
		if math.IsNaN(vals[i]) {
			continue
		}
		values[g] = append(values[g], vals[i])
	}
	return order, values, nil
}

func columnOf(df dataframe.DataFrame, column string) (series.Series, error) {
	for _, name := range df.Names() {
		if name == column {
			return df.Col(column), nil
		}
	}
	return series.Series{}, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}
