package api

import (
	"net/url"

	"github.com/okian/resumedash/internal/domain/filter"
)

const regionParam = "region"

// parseSelection reads the region filter from the query string.
// No region key selects every region; otherwise the non-empty values are the
// selection, kept byte for byte, so ?region= alone selects nothing.
func parseSelection(q url.Values) filter.Selection {
	values, ok := q[regionParam]
	if !ok {
		return filter.All()
	}
	regions := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			regions = append(regions, v)
		}
	}
	return filter.Only(regions...)
}

// selectionQuery encodes sel back into a query string understood by parseSelection.
func selectionQuery(sel filter.Selection) url.Values {
	q := url.Values{}
	if sel.IsAll() {
		return q
	}
	regions := sel.Resolve(nil)
	if len(regions) == 0 {
		q.Set(regionParam, "")
		return q
	}
	q[regionParam] = regions
	return q
}
