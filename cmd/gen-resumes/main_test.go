package main

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/resumedash/internal/gendata"
)

func TestParseFlags(t *testing.T) {
	Convey("Given gen-resumes arguments", t, func() {
		Convey("When no flags are passed", func() {
			cfg, err := parseFlags(nil)

			Convey("Then defaults are used", func() {
				So(err, ShouldBeNil)
				So(cfg.Rows, ShouldEqual, defaultRows)
				So(cfg.Output, ShouldEqual, defaultOutput)
				So(cfg.Seed, ShouldEqual, uint64(defaultSeed))
				So(cfg.Localized, ShouldBeFalse)
				So(cfg.Timeout, ShouldEqual, defaultTimeout)
			})
		})

		Convey("When every flag is passed", func() {
			cfg, err := parseFlags([]string{"-n", "10", "-o", "out.xlsx", "--seed", "7", "--timeout", "2s"})

			Convey("Then they are applied", func() {
				So(err, ShouldBeNil)
				So(cfg.Rows, ShouldEqual, 10)
				So(cfg.Output, ShouldEqual, "out.xlsx")
				So(cfg.Seed, ShouldEqual, uint64(7))
				So(cfg.Timeout, ShouldEqual, 2*time.Second)
			})
		})

		Convey("When rows is not positive", func() {
			_, err := parseFlags([]string{"--rows", "0"})

			Convey("Then the config is rejected", func() {
				So(errors.Is(err, gendata.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When an unknown flag is passed", func() {
			_, err := parseFlags([]string{"--bogus"})

			Convey("Then parsing fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
