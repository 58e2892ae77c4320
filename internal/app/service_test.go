package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/okian/resumedash/internal/app"
	"github.com/okian/resumedash/internal/dataset"
	"github.com/okian/resumedash/internal/domain/chart"
	"github.com/okian/resumedash/internal/domain/filter"
	"github.com/okian/resumedash/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const fixtureCSV = "Область,Category,Salary,Work experience (year),Education,working conditions,Sex\n" +
	"Moscow,Driver,50000,3,Higher,Full day,Male\n" +
	"Tomsk,Nurse,50,2,Higher,Remote,Female\n" +
	"Moscow,Cook,45000,7,Secondary,Shift,Male\n" +
	"Tomsk,Nurse,50,5,Higher,Remote,Female\n" +
	"Moscow,Driver,52000,10,Secondary,Full day,Female\n" +
	"Tomsk,Cook,70,1,Secondary,Full day,Male\n"

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resumes.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Language(), ShouldEqual, chart.LangEN)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["dataset"], ShouldEqual, "resumes_cleaned.csv")
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then queries report ErrNotStarted", func() {
			_, err := svc.Regions(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Figure(context.Background(), string(chart.TopRegions), filter.All())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service pointed at a dataset", t, func() {
		svc := service.New(service.WithDatasetPath(writeFixture(t)))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["rows"], ShouldEqual, 6)
				So(stats["regions"], ShouldEqual, 2)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given a service pointed at a missing dataset", t, func() {
		svc := service.New(service.WithDatasetPath(filepath.Join(t.TempDir(), "nope.csv")))

		Convey("Then Start fails with ErrNotFound", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, dataset.ErrNotFound), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithDatasetPath(writeFixture(t)))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Convey("And stopping twice is safe", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_SharedCache(t *testing.T) {
	Convey("Given two services sharing a cache", t, func() {
		path := writeFixture(t)
		cache := dataset.NewCache()
		a := service.New(service.WithDatasetPath(path), service.WithCache(cache))
		b := service.New(service.WithDatasetPath(path), service.WithCache(cache), service.WithLanguage(chart.LangRU))

		So(a.Start(context.Background()), ShouldBeNil)
		So(b.Start(context.Background()), ShouldBeNil)
		defer a.Stop()
		defer b.Stop()

		Convey("Then the dataset is loaded once", func() {
			So(cache.Len(), ShouldEqual, 1)
		})

		Convey("And each service keeps its own language", func() {
			So(a.Language(), ShouldEqual, chart.LangEN)
			So(b.Language(), ShouldEqual, chart.LangRU)
		})
	})
}

func TestService_Prerender(t *testing.T) {
	Convey("Given a started service with prerender workers", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithDatasetPath(writeFixture(t)), service.WithPrerenderWorkers(3))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		So(svc.WaitPrerender(waitCtx), ShouldBeNil)

		Convey("Then every image chart is cached and tables are skipped", func() {
			So(svc.GetStats()["prerendered"], ShouldEqual, len(chart.IDs)-1)
		})

		Convey("Then unfiltered requests return the cached image", func() {
			first, err := svc.RenderPNG(ctx, string(chart.TopRegions), filter.All())
			So(err, ShouldBeNil)
			second, err := svc.RenderPNG(ctx, string(chart.TopRegions), filter.All())
			So(err, ShouldBeNil)
			So(&first[0], ShouldEqual, &second[0])
		})

		Convey("Then filtered requests still render", func() {
			out, err := svc.RenderPNG(ctx, string(chart.TopRegions), filter.Only("Moscow"))
			So(err, ShouldBeNil)
			So(len(out), ShouldBeGreaterThan, 0)
		})

		Convey("When the service stops", func() {
			svc.Stop()

			Convey("Then the cache is dropped", func() {
				So(svc.WaitPrerender(ctx), ShouldBeNil)
				_, err := svc.RenderPNG(ctx, string(chart.TopRegions), filter.All())
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service with prerendering disabled", t, func() {
		svc := service.New(service.WithDatasetPath(writeFixture(t)), service.WithPrerenderWorkers(0))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then nothing is cached", func() {
			So(svc.WaitPrerender(context.Background()), ShouldBeNil)
			So(svc.GetStats()["prerendered"], ShouldEqual, 0)
		})
	})
}
