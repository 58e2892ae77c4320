package api

import (
	"net/http"
	"strings"
)

// ChartsHandler serves the chart catalog, figure data and chart images.
type ChartsHandler struct {
	deps ChartDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleList handles GET /api/charts requests.
func (h *ChartsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_charts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	charts, err := h.deps.Charts(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

// HandleFigure handles GET /api/charts/{id}?region=... requests.
func (h *ChartsHandler) HandleFigure(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r.URL.Path, "/api/charts/", "")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	fig, err := h.deps.Figure(r.Context(), id, parseSelection(r.URL.Query()))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

// HandlePNG handles GET /charts/{id}.png?region=... requests.
func (h *ChartsHandler) HandlePNG(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart_png"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r.URL.Path, "/charts/", ".png")
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	img, err := h.deps.RenderPNG(r.Context(), id, parseSelection(r.URL.Query()))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// pathID extracts the single path segment between prefix and suffix.
func pathID(path, prefix, suffix string) (string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path {
		return "", false
	}
	if suffix != "" {
		trimmed := strings.TrimSuffix(rest, suffix)
		if trimmed == rest {
			return "", false
		}
		rest = trimmed
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
