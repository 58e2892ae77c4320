package api

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/okian/resumedash/internal/domain/chart"
	"github.com/okian/resumedash/internal/domain/filter"
	"github.com/okian/resumedash/pkg/logger"
)

// DashboardDependencies are the queries behind the dashboard page.
type DashboardDependencies interface {
	Charts(ctx context.Context) ([]chart.Descriptor, error)
	Regions(ctx context.Context) ([]string, error)
	Figure(ctx context.Context, key string, sel filter.Selection) (chart.Figure, error)
	Language() string
}

// DashboardHandler renders the interactive dashboard page.
type DashboardHandler struct {
	deps DashboardDependencies
	tmpl *template.Template
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{
		deps: deps,
		tmpl: template.Must(template.ParseFS(dashboardFS, "dashboard.html")),
	}
}

type regionOption struct {
	Name     string
	Selected bool
}

type chartOption struct {
	chart.Descriptor
	Active bool
}

type tableRow struct {
	Group  string
	Mean   string
	Median string
	Mode   string
}

type dashboardView struct {
	Lang      string
	UI        chart.UI
	Charts    []chartOption
	Regions   []regionOption
	Figure    chart.Figure
	ImageURL  string
	ExportURL string
	Table     []tableRow
	Empty     bool
}

// HandleDashboard handles GET /dashboard?chart=<id>&region=... requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	charts, err := h.deps.Charts(ctx)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	regions, err := h.deps.Regions(ctx)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	key := q.Get("chart")
	if key == "" && len(charts) > 0 {
		key = string(charts[0].ID)
	}
	sel := parseSelection(q)
	fig, err := h.deps.Figure(ctx, key, sel)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	view := dashboardView{
		Lang:   h.deps.Language(),
		UI:     chart.Text(h.deps.Language()),
		Figure: fig,
		Empty:  fig.Empty(),
	}
	for _, c := range charts {
		view.Charts = append(view.Charts, chartOption{Descriptor: c, Active: c.ID == fig.Chart})
	}
	selected := make(map[string]bool, len(fig.Regions))
	for _, name := range fig.Regions {
		selected[name] = true
	}
	for _, name := range regions {
		view.Regions = append(view.Regions, regionOption{Name: name, Selected: selected[name]})
	}

	query := selectionQuery(sel).Encode()
	view.ExportURL = withQuery("/export/"+url.PathEscape(string(fig.Chart))+".xlsx", query)
	if fig.Kind == chart.KindTable {
		for _, s := range fig.Stats {
			view.Table = append(view.Table, tableRow{
				Group:  s.Group,
				Mean:   fmt.Sprintf("%.0f", s.Mean),
				Median: fmt.Sprintf("%.0f", s.Median),
				Mode:   fmt.Sprintf("%.0f", s.Mode),
			})
		}
	} else {
		view.ImageURL = withQuery("/charts/"+url.PathEscape(string(fig.Chart))+".png", query)
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		logger.Get().Error(ctx, "dashboard render failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
