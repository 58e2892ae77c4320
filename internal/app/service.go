// Package service wires the dataset, chart catalog and renderer together and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/resumedash/internal/adapters/export"
	"github.com/okian/resumedash/internal/adapters/mq/queue"
	"github.com/okian/resumedash/internal/adapters/mq/worker"
	"github.com/okian/resumedash/internal/adapters/render"
	"github.com/okian/resumedash/internal/dataset"
	"github.com/okian/resumedash/internal/domain/chart"
	"github.com/okian/resumedash/internal/domain/filter"
	"github.com/okian/resumedash/pkg/logger"
	"github.com/okian/resumedash/pkg/metrics"
)

// Service answers dashboard queries against one loaded dataset.
type Service struct {
	mu sync.RWMutex

	// Core components
	cache    *dataset.Cache
	catalog  *chart.Catalog
	renderer *render.Renderer
	data     *dataset.Dataset

	// Dataset configuration
	datasetPath  string
	format       string
	encoding     string
	delimiter    rune
	sheet        string
	regionColumn string

	// Chart configuration
	language       string
	topRegions     int
	topProfessions int
	statsLimit     int
	scatterHue     bool
	chartWidth     int
	chartHeight    int

	// Prerendered unfiltered charts
	prerenderWorkers int
	pool             *worker.Pool
	stopPrerender    context.CancelFunc
	pngMu            sync.RWMutex
	pngCache         map[chart.ID][]byte

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:    "resumes_cleaned.csv",
		encoding:       dataset.EncodingUTF8,
		delimiter:      ',',
		language:       chart.LangEN,
		topRegions:     20,
		topProfessions: 10,
		statsLimit:     20,
		scatterHue:     true,
		chartWidth:     960,
		chartHeight:    640,

		prerenderWorkers: 2,
		pngCache:         make(map[chart.ID][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and prepares the chart pipeline. A missing or
// malformed dataset is returned as an error and the service stays stopped.
// Unfiltered charts are then prerendered in the background.
func (s *Service) Start(ctx context.Context) error {
	fresh, err := s.start(ctx)
	if err != nil || !fresh {
		return err
	}
	s.startPrerender(ctx)
	return nil
}

func (s *Service) start(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return false, nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...", logger.String("dataset", s.datasetPath))

	if s.cache == nil {
		s.cache = dataset.NewCache(
			dataset.WithFormat(s.format),
			dataset.WithEncoding(s.encoding),
			dataset.WithDelimiter(s.delimiter),
			dataset.WithSheet(s.sheet),
			dataset.WithRegionColumn(s.regionColumn),
			dataset.WithLogger(s.logger),
		)
	}
	data, err := s.cache.Load(ctx, s.datasetPath)
	if err != nil {
		return false, fmt.Errorf("start: %w", err)
	}

	s.catalog = chart.NewCatalog(
		chart.WithLanguage(s.language),
		chart.WithTopRegions(s.topRegions),
		chart.WithTopProfessions(s.topProfessions),
		chart.WithStatsLimit(s.statsLimit),
		chart.WithScatterHue(s.scatterHue),
	)
	s.renderer = render.New(
		render.WithSize(s.chartWidth, s.chartHeight),
		render.WithEmptyTitle(chart.Text(s.catalog.Language()).Empty),
		render.WithLogger(s.logger),
	)
	s.data = data
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "dashboard service started",
		logger.Int("rows", data.Rows()),
		logger.Int("regions", len(data.Regions)),
		logger.String("language", s.catalog.Language()),
	)
	return true, nil
}

// startPrerender queues every chart and lets a worker pool render the
// unfiltered images.
func (s *Service) startPrerender(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prerenderWorkers <= 0 || s.pool != nil {
		return
	}
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(chart.IDs)))
	enqueueCharts(ctx, s.logger, q, chart.IDs)
	_ = q.Close()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.stopPrerender = cancel
	s.pool = worker.NewPool(s.prerenderWorkers, q, s)
	s.pool.Start(runCtx)
}

// enqueueCharts queues one prerender job per chart and returns how many were
// accepted. Rejected charts are rendered on first request instead.
func enqueueCharts(ctx context.Context, log logger.Logger, q queue.Queue, ids []chart.ID) int {
	accepted := 0
	for _, id := range ids {
		if q.Enqueue(ctx, queue.Job{Chart: id}) {
			accepted++
			continue
		}
		log.Warn(ctx, "prerender job rejected", logger.String("chart", string(id)))
	}
	return accepted
}

// WaitPrerender blocks until the startup prerender finishes or ctx is done.
func (s *Service) WaitPrerender(ctx context.Context) error {
	s.mu.RLock()
	pool := s.pool
	s.mu.RUnlock()
	if pool == nil {
		return nil
	}
	select {
	case <-pool.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Prerender renders chart id for every region and keeps the PNG. Tables are
// skipped and reported as not stored.
func (s *Service) Prerender(ctx context.Context, id chart.ID) (bool, error) {
	png, err := s.renderPNG(ctx, string(id), filter.All())
	if errors.Is(err, render.ErrNotRenderable) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.pngMu.Lock()
	s.pngCache[id] = png
	s.pngMu.Unlock()
	return true, nil
}

// Stop marks the service as stopped. The memoized dataset stays in the cache.
func (s *Service) Stop() {
	s.mu.Lock()
	pool, cancel := s.pool, s.stopPrerender
	s.pool, s.stopPrerender = nil, nil
	s.mu.Unlock()

	// Workers take the read lock, so they are stopped without holding it.
	if pool != nil {
		cancel()
		_ = pool.Shutdown(context.Background())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pngMu.Lock()
	s.pngCache = make(map[chart.ID][]byte)
	s.pngMu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.data = nil
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Language returns the configured label language.
func (s *Service) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return s.language
	}
	return s.catalog.Language()
}

// Regions lists the dataset's distinct regions in first-encountered order.
func (s *Service) Regions(ctx context.Context) ([]string, error) {
	data, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(data.Regions))
	copy(out, data.Regions)
	return out, nil
}

// Charts lists the chart catalog in sidebar order.
func (s *Service) Charts(ctx context.Context) ([]chart.Descriptor, error) {
	_, catalog, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return catalog.Descriptors(), nil
}

// Figure resolves key (slug or title) and builds the chart for sel.
func (s *Service) Figure(ctx context.Context, key string, sel filter.Selection) (chart.Figure, error) {
	data, catalog, err := s.snapshot()
	if err != nil {
		return chart.Figure{}, err
	}
	d, err := catalog.Lookup(key)
	if err != nil {
		return chart.Figure{}, err
	}
	fig, err := catalog.Build(data.Frame, d.ID, sel)
	if err != nil {
		return chart.Figure{}, err
	}

	metrics.RecordChartBuild(string(fig.Chart), fig.Rows)
	s.logger.Debug(ctx, "chart built",
		logger.String("chart", string(fig.Chart)),
		logger.Int("rows", fig.Rows),
		logger.Bool("all_regions", sel.IsAll()),
	)
	return fig, nil
}

// RenderPNG builds the chart for sel and renders it as PNG.
// Unfiltered requests are served from the prerendered images when available.
func (s *Service) RenderPNG(ctx context.Context, key string, sel filter.Selection) ([]byte, error) {
	if sel.IsAll() {
		if png, ok := s.cachedPNG(key); ok {
			return png, nil
		}
	}
	return s.renderPNG(ctx, key, sel)
}

func (s *Service) cachedPNG(key string) ([]byte, bool) {
	_, catalog, err := s.snapshot()
	if err != nil {
		return nil, false
	}
	d, err := catalog.Lookup(key)
	if err != nil {
		return nil, false
	}
	s.pngMu.RLock()
	defer s.pngMu.RUnlock()
	png, ok := s.pngCache[d.ID]
	return png, ok
}

func (s *Service) renderPNG(ctx context.Context, key string, sel filter.Selection) ([]byte, error) {
	fig, err := s.Figure(ctx, key, sel)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	r := s.renderer
	s.mu.RUnlock()
	return r.PNG(ctx, fig)
}

// Export builds the chart for sel and returns its data as an xlsx workbook.
func (s *Service) Export(ctx context.Context, key string, sel filter.Selection) ([]byte, error) {
	fig, err := s.Figure(ctx, key, sel)
	if err != nil {
		return nil, err
	}
	out, err := export.Workbook(fig)
	if err != nil {
		s.logger.Error(ctx, "export failed", logger.String("chart", string(fig.Chart)), logger.Error(err))
		return nil, err
	}
	metrics.RecordExport(string(fig.Chart))
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"dataset":  s.datasetPath,
		"language": s.language,
	}
	if s.started {
		stats["rows"] = s.data.Rows()
		stats["regions"] = len(s.data.Regions)
		stats["charts"] = len(chart.IDs)
		stats["loadedAt"] = s.data.LoadedAt.UTC().Format(time.RFC3339)
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())

		s.pngMu.RLock()
		stats["prerendered"] = len(s.pngCache)
		s.pngMu.RUnlock()
	}
	return stats
}

func (s *Service) snapshot() (*dataset.Dataset, *chart.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.data, s.catalog, nil
}
