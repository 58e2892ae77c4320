package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/resumedash/internal/config"
	"github.com/okian/resumedash/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const datasetCSV = "Область,Category,Salary,Work experience (year),Education,working conditions,Sex\n" +
	"Moscow,Driver,50000,3,Higher,Full day,Male\n" +
	"Tomsk,Nurse,30000,5,Higher,Remote,Female\n"

func TestParseFlags(t *testing.T) {
	convey.Convey("Given command-line arguments", t, func() {
		convey.Convey("When short and long flags are used", func() {
			f, err := parseFlags([]string{"-c", "cfg.yaml", "--dataset", "data.csv", "--addr", ":9999"})

			convey.Convey("Then every override is captured", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(f.configPath, convey.ShouldEqual, "cfg.yaml")
				convey.So(f.datasetPath, convey.ShouldEqual, "data.csv")
				convey.So(f.addr, convey.ShouldEqual, ":9999")
			})
		})

		convey.Convey("When an unknown flag is used", func() {
			_, err := parseFlags([]string{"--nope"})

			convey.Convey("Then parsing fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestLoadConfig(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("RESUMEDASH_ADDR", ":8080")
		_ = os.Setenv("RESUMEDASH_LANGUAGE", "ru")
		defer func() {
			_ = os.Unsetenv("RESUMEDASH_ADDR")
			_ = os.Unsetenv("RESUMEDASH_LANGUAGE")
		}()

		convey.Convey("When no flags are given", func() {
			cfg, err := loadConfig(context.Background(), flags{})

			convey.Convey("Then env values apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Language, convey.ShouldEqual, "ru")
			})
		})

		convey.Convey("When flags are given", func() {
			cfg, err := loadConfig(context.Background(), flags{addr: ":7070", datasetPath: "other.csv"})

			convey.Convey("Then flags win over env", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "other.csv")
			})
		})
	})

	convey.Convey("Given a config file that does not exist", t, func() {
		_, err := loadConfig(context.Background(), flags{configPath: filepath.Join(t.TempDir(), "missing.yaml")})

		convey.Convey("Then loading fails", func() {
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestServerWiring(t *testing.T) {
	convey.Convey("Given a started service on a small dataset", t, func() {
		path := filepath.Join(t.TempDir(), "resumes.csv")
		convey.So(os.WriteFile(path, []byte(datasetCSV), 0o600), convey.ShouldBeNil)

		cfg := config.New()
		cfg.DatasetPath = path
		cfg.ChartWidth, cfg.ChartHeight = 320, 240
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(context.Background(), svc))
		defer srv.Close()

		client := &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		get := func(path string) *http.Response {
			resp, err := client.Get(srv.URL + path)
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			return resp
		}

		convey.Convey("Then every route family answers", func() {
			convey.So(get("/").StatusCode, convey.ShouldEqual, http.StatusFound)
			convey.So(get("/dashboard").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/charts").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/regions").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/charts/salary-stats?region=Tomsk").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/charts/top-regions.png").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/charts/salary-stats.png").StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			convey.So(get("/export/education.xlsx").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/charts/pie").StatusCode, convey.ShouldEqual, http.StatusNotFound)
			convey.So(get("/healthz").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/assets/style.css").StatusCode, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it returns once the context is done", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}
