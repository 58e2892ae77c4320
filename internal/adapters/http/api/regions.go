package api

import "net/http"

// RegionsHandler serves the distinct dataset regions.
type RegionsHandler struct {
	deps RegionDependencies
}

// NewRegionsHandler creates a new regions handler.
func NewRegionsHandler(deps RegionDependencies) *RegionsHandler {
	return &RegionsHandler{deps: deps}
}

// HandleRegions handles GET /api/regions requests.
func (h *RegionsHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_regions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	regions, err := h.deps.Regions(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, regions)
}
