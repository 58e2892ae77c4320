package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/resumedash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DatasetEncoding, convey.ShouldEqual, "utf-8")
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 960)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RESUMEDASH_ADDR", ":8080")
			_ = os.Setenv("RESUMEDASH_DATASET_PATH", "/data/resumes.xlsx")
			_ = os.Setenv("RESUMEDASH_LANGUAGE", "ru")
			_ = os.Setenv("RESUMEDASH_SCATTER_HUE", "false")
			_ = os.Setenv("RESUMEDASH_TOP_REGIONS", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/resumes.xlsx")
				convey.So(cfg.Language, convey.ShouldEqual, "ru")
				convey.So(cfg.ScatterHue, convey.ShouldBeFalse)
				convey.So(cfg.TopRegions, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
dataset_path: "resumes_en.csv"
region_column: "Region"
dataset_encoding: "windows-1251"
csv_delimiter: ";"
chart_width: 1200
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RESUMEDASH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "resumes_en.csv")
				convey.So(cfg.RegionColumn, convey.ShouldEqual, "Region")
				convey.So(cfg.DatasetEncoding, convey.ShouldEqual, "windows-1251")
				convey.So(cfg.Delimiter(), convey.ShouldEqual, ';')
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 1200)
				convey.So(cfg.ChartHeight, convey.ShouldEqual, 640) // From defaults
				convey.So(cfg.PrerenderWorkers, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When an explicit path is passed", func() {
			tmpFile := createTempConfigFile(`addr: ":7070"`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then it should be used without the env var", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\ntop_professions: 15\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RESUMEDASH_CONFIG", tmpFile)
			_ = os.Setenv("RESUMEDASH_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")        // Overridden by env
				convey.So(cfg.TopProfessions, convey.ShouldEqual, 15) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.Load(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("RESUMEDASH_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RESUMEDASH_CHART_WIDTH", "wide")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		convey.Convey("When the language is unknown", func() {
			cfg := config.New()
			cfg.Language = "de"

			convey.Convey("Then it should be rejected", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "language")
			})
		})

		convey.Convey("When the encoding is unknown", func() {
			cfg := config.New()
			cfg.DatasetEncoding = "koi8-r"

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the delimiter has several characters", func() {
			cfg := config.New()
			cfg.CSVDelimiter = ";;"

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the chart size is zero", func() {
			cfg := config.New()
			cfg.ChartHeight = 0

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When prerender workers are negative", func() {
			cfg := config.New()
			cfg.PrerenderWorkers = -1

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the dataset format is forced to xlsx", func() {
			cfg := config.New()
			cfg.DatasetFormat = "xlsx"

			convey.Convey("Then it should be accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RESUMEDASH_CONFIG",
		"RESUMEDASH_ADDR",
		"RESUMEDASH_DATASET_PATH",
		"RESUMEDASH_LANGUAGE",
		"RESUMEDASH_SCATTER_HUE",
		"RESUMEDASH_TOP_REGIONS",
		"RESUMEDASH_CHART_WIDTH",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "resumedash-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
