package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/okian/resumedash/internal/adapters/http/api"
	"github.com/okian/resumedash/internal/adapters/http/site"
	"github.com/okian/resumedash/internal/adapters/http/swagger"
	app "github.com/okian/resumedash/internal/app"
	"github.com/okian/resumedash/internal/config"
	"github.com/okian/resumedash/pkg/logger"
	"github.com/okian/resumedash/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// flags holds the command-line overrides.
type flags struct {
	configPath  string
	datasetPath string
	addr        string
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet("resumedash", pflag.ContinueOnError)
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to YAML config file (overrides "+config.EnvConfigFile+")")
	fs.StringVarP(&f.datasetPath, "dataset", "d", "", "Path to the resume dataset (csv or xlsx)")
	fs.StringVar(&f.addr, "addr", "", "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

// loadConfig layers the command-line overrides on top of the loaded config.
func loadConfig(ctx context.Context, f flags) (*config.Config, error) {
	cfg, err := config.Load(ctx, f.configPath)
	if err != nil {
		return nil, err
	}
	if f.datasetPath != "" {
		cfg.DatasetPath = f.datasetPath
	}
	if f.addr != "" {
		cfg.Addr = f.addr
	}
	return cfg, cfg.Validate()
}

func newService(cfg *config.Config, l logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(l),
		app.WithDatasetPath(cfg.DatasetPath),
		app.WithDatasetFormat(cfg.DatasetFormat),
		app.WithEncoding(cfg.DatasetEncoding),
		app.WithDelimiter(cfg.Delimiter()),
		app.WithSheet(cfg.XLSXSheet),
		app.WithRegionColumn(cfg.RegionColumn),
		app.WithLanguage(cfg.Language),
		app.WithScatterHue(cfg.ScatterHue),
		app.WithTopRegions(cfg.TopRegions),
		app.WithTopProfessions(cfg.TopProfessions),
		app.WithStatsLimit(cfg.StatsLimit),
		app.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		app.WithPrerenderWorkers(cfg.PrerenderWorkers),
	)
}

func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

func main() {
	// Keep the default registry free of Go collectors; system metrics are our own.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Stderr.WriteString("invalid arguments: " + err.Error() + "\n")
		os.Exit(2)
	}

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := loadConfig(ctx, f)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to load config", logger.Error(err))
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// A missing or malformed dataset aborts startup.
	svc := newService(cfg, loggerInstance)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Fatal(ctx, "failed to start service", logger.String("dataset", cfg.DatasetPath), logger.Error(err))
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(shutdownCtx, "server stopped")
}

// startSystemMetricsUpdater periodically refreshes system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
