package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/resumedash/pkg/metrics"
)

// StatsProvider reports service statistics. A "started" entry set to false
// marks the service as not ready.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// OpsHandler serves the operational endpoints: metrics and stats.
type OpsHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

// NewOpsHandler creates the handler for /healthz and /stats.
func NewOpsHandler(stats StatsProvider) *OpsHandler {
	return &OpsHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth serves GET /healthz with the Prometheus exposition.
func (h *OpsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

// HandleStats serves GET /stats; 503 until the service has started.
func (h *OpsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.stats.GetStats()
	status := http.StatusOK
	if started, ok := stats["started"].(bool); ok && !started {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, stats)
}
