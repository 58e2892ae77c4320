// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/resumedash/internal/adapters/render"
	"github.com/okian/resumedash/internal/domain/chart"
	"github.com/okian/resumedash/internal/domain/filter"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ChartDependencies
	RegionDependencies
	DashboardDependencies
}

// ChartDependencies builds, renders and exports charts.
type ChartDependencies interface {
	Charts(ctx context.Context) ([]chart.Descriptor, error)
	Figure(ctx context.Context, key string, sel filter.Selection) (chart.Figure, error)
	RenderPNG(ctx context.Context, key string, sel filter.Selection) ([]byte, error)
	Export(ctx context.Context, key string, sel filter.Selection) ([]byte, error)
}

// RegionDependencies lists the dataset regions.
type RegionDependencies interface {
	Regions(ctx context.Context) ([]string, error)
}

// Server wires HTTP routes for the dashboard and its API.
type Server struct {
	opsHandler       *OpsHandler
	chartsHandler    *ChartsHandler
	regionsHandler   *RegionsHandler
	exportHandler    *ExportHandler
	dashboardHandler *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		opsHandler:       NewOpsHandler(statsProvider),
		chartsHandler:    NewChartsHandler(deps),
		regionsHandler:   NewRegionsHandler(deps),
		exportHandler:    NewExportHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.opsHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.opsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/api/charts", MetricsMiddleware(s.chartsHandler.HandleList, "charts"))
	mux.HandleFunc("/api/charts/", MetricsMiddleware(s.chartsHandler.HandleFigure, "chart"))
	mux.HandleFunc("/api/regions", MetricsMiddleware(s.regionsHandler.HandleRegions, "regions"))
	mux.HandleFunc("/charts/", MetricsMiddleware(s.chartsHandler.HandlePNG, "chart_png"))
	mux.HandleFunc("/export/", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps pipeline errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, chart.ErrUnknownChart), errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, render.ErrNotRenderable), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
