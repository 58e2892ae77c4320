package api

import (
	"mime"
	"net/http"

	"github.com/okian/resumedash/internal/adapters/export"
)

// ExportHandler serves chart data as xlsx downloads.
type ExportHandler struct {
	deps ChartDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ChartDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /export/{id}.xlsx?region=... requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r.URL.Path, "/export/", ".xlsx")
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	data, err := h.deps.Export(r.Context(), id, parseSelection(r.URL.Query()))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": id + ".xlsx"}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
