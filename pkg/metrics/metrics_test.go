package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "resumedash")
				So(manager.subsystem, ShouldEqual, "dashboard")
			})
		})

		Convey("When metrics are written", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))
			manager.datasetRows.Set(3)

			Convey("Then they are gathered under the dashboard namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				found := false
				for _, mf := range families {
					if mf.GetName() == "resumedash_dashboard_dataset_rows" {
						found = true
						So(mf.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 3)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When a nil registry is passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it is ignored", func() {
				So(manager.registry, ShouldEqual, registry)
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording a dataset load", func() {
			RecordDatasetLoad(120, 7, 12.5)

			Convey("Then the gauges should reflect it", func() {
				So(testutil.ToFloat64(globalManager.datasetRows), ShouldEqual, 120)
				So(testutil.ToFloat64(globalManager.datasetRegions), ShouldEqual, 7)
			})
		})

		Convey("When recording chart builds", func() {
			before := testutil.ToFloat64(globalManager.chartBuilds.WithLabelValues("top-regions"))
			RecordChartBuild("top-regions", 40)
			RecordChartBuild("top-regions", 10)

			Convey("Then the counter should grow by two", func() {
				after := testutil.ToFloat64(globalManager.chartBuilds.WithLabelValues("top-regions"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording exports and errors", func() {
			before := testutil.ToFloat64(globalManager.exportsTotal.WithLabelValues("salary-stats"))
			RecordExport("salary-stats")
			RecordChartRenderError("salary-by-sex")
			RecordDatasetLoadError()

			Convey("Then the counters should move", func() {
				So(testutil.ToFloat64(globalManager.exportsTotal.WithLabelValues("salary-stats"))-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.chartRenderErrors.WithLabelValues("salary-by-sex")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.datasetLoadErrors), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording prerender metrics", func() {
			before := testutil.ToFloat64(globalManager.prerenderJobs.WithLabelValues("ok"))
			RecordPrerenderJob("ok")
			UpdatePrerenderQueueSize(3)
			UpdatePrerenderWorkers(2)

			Convey("Then the gauges and counter should reflect them", func() {
				So(testutil.ToFloat64(globalManager.prerenderJobs.WithLabelValues("ok"))-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.prerenderQueueSize), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.prerenderWorkers), ShouldEqual, 2)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("dashboard", "GET", "200")
				RecordHTTPRequestDuration("dashboard", "GET", "200", 3)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("charts", "GET", "not_found")
				RecordChartRender("top-regions", "png", 15)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)

			Convey("Then the registry should expose them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, mf := range families {
					names = append(names, mf.GetName())
				}
				joined := strings.Join(names, ",")
				So(joined, ShouldContainSubstring, "resumedash_dashboard_http_requests_total")
				So(joined, ShouldContainSubstring, "resumedash_dashboard_chart_render_duration_milliseconds")
				So(joined, ShouldContainSubstring, "resumedash_dashboard_system_goroutine_count")
			})
		})
	})
}
