package aggregate_test

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/resumedash/internal/domain/aggregate"
	"github.com/okian/resumedash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func frame(rows ...[]string) dataframe.DataFrame {
	records := append([][]string{{
		model.ColRegion, model.ColCategory, model.ColSalary, model.ColExperience,
	}}, rows...)
	return dataframe.LoadRecords(
		records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			model.ColSalary:     series.Float,
			model.ColExperience: series.Float,
		}),
	)
}

func TestTopN(t *testing.T) {
	Convey("Given three Moscow resumes and one Tomsk resume", t, func() {
		df := frame(
			[]string{"Moscow", "Driver", "50", "1"},
			[]string{"Tomsk", "Nurse", "50", "2"},
			[]string{"Moscow", "Cook", "70", "3"},
			[]string{"Moscow", "Driver", "60", "4"},
		)
		So(df.Err, ShouldBeNil)

		Convey("When taking the top region", func() {
			out, err := aggregate.TopN(df, model.ColRegion, 1)

			Convey("Then Moscow wins with three resumes", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, []aggregate.Count{{Value: "Moscow", Count: 3}})
			})
		})

		Convey("When n exceeds the number of distinct values", func() {
			out, err := aggregate.TopN(df, model.ColRegion, 10)

			Convey("Then every value is returned once", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 2)
			})
		})

		Convey("When counts tie", func() {
			out, err := aggregate.TopN(df, model.ColCategory, 0)

			Convey("Then first-encountered order breaks the tie", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, []aggregate.Count{
					{Value: "Driver", Count: 2},
					{Value: "Nurse", Count: 1},
					{Value: "Cook", Count: 1},
				})
			})
		})

		Convey("When the column does not exist", func() {
			_, err := aggregate.TopN(df, "Nope", 3)

			Convey("Then ErrUnknownColumn is returned", func() {
				So(errors.Is(err, aggregate.ErrUnknownColumn), ShouldBeTrue)
			})
		})
	})

	Convey("Given values marked as missing", t, func() {
		df := frame(
			[]string{"Moscow", "NaN", "50", "1"},
			[]string{"Tomsk", "Cook", "50", "1"},
		)

		Convey("Then missing values are not counted", func() {
			out, err := aggregate.TopN(df, model.ColCategory, 0)
			So(err, ShouldBeNil)
			So(out, ShouldResemble, []aggregate.Count{{Value: "Cook", Count: 1}})
		})
	})
}

func TestGroupStats(t *testing.T) {
	Convey("Given Tomsk salaries 50, 50 and 70", t, func() {
		df := frame(
			[]string{"Tomsk", "A", "50", "1"},
			[]string{"Tomsk", "B", "50", "2"},
			[]string{"Tomsk", "C", "70", "3"},
			[]string{"Moscow", "D", "100", "4"},
			[]string{"Kazan", "E", "NaN", "5"},
		)
		So(df.Err, ShouldBeNil)

		stats, err := aggregate.GroupStats(df, model.ColRegion, model.ColSalary, 20)
		So(err, ShouldBeNil)

		Convey("Then groups are sorted by mean, highest first", func() {
			So(len(stats), ShouldEqual, 2)
			So(stats[0].Group, ShouldEqual, "Moscow")
			So(stats[1].Group, ShouldEqual, "Tomsk")
		})

		Convey("And Tomsk has mean 56.67, median 50 and mode 50", func() {
			tomsk := stats[1]
			So(tomsk.Mean, ShouldAlmostEqual, 56.6667, 0.001)
			So(tomsk.Median, ShouldEqual, 50)
			So(tomsk.Mode, ShouldEqual, 50)
			So(tomsk.Count, ShouldEqual, 3)
		})

		Convey("And a group without salaries is omitted", func() {
			for _, s := range stats {
				So(s.Group, ShouldNotEqual, "Kazan")
				So(s.Count, ShouldBeGreaterThan, 0)
			}
		})

		Convey("And the limit truncates the result", func() {
			top, err := aggregate.GroupStats(df, model.ColRegion, model.ColSalary, 1)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 1)
			So(top[0].Group, ShouldEqual, "Moscow")
		})

		Convey("And repeating the computation yields the same result", func() {
			again, err := aggregate.GroupStats(df, model.ColRegion, model.ColSalary, 20)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, stats)
		})
	})

	Convey("Given a table where no salary is known", t, func() {
		df := frame(
			[]string{"Moscow", "Driver", "NaN", "1"},
			[]string{"Tomsk", "Cook", "NaN", "2"},
		)

		Convey("Then no groups are returned", func() {
			stats, err := aggregate.GroupStats(df, model.ColRegion, model.ColSalary, 20)
			So(err, ShouldBeNil)
			So(stats, ShouldBeEmpty)
		})
	})
}

func TestMedianAndMode(t *testing.T) {
	Convey("Median", t, func() {
		So(aggregate.Median([]float64{3, 1, 2}), ShouldEqual, 2)
		So(aggregate.Median([]float64{4, 1, 3, 2}), ShouldEqual, 2.5)
		So(math.IsNaN(aggregate.Median(nil)), ShouldBeTrue)

		Convey("does not reorder its input", func() {
			in := []float64{3, 1, 2}
			aggregate.Median(in)
			So(in, ShouldResemble, []float64{3, 1, 2})
		})
	})

	Convey("Mode", t, func() {
		m, ok := aggregate.Mode([]float64{70, 50, 50})
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, 50)

		Convey("prefers the smallest value on ties", func() {
			m, ok := aggregate.Mode([]float64{9, 3, 9, 3, 5})
			So(ok, ShouldBeTrue)
			So(m, ShouldEqual, 3)
		})

		Convey("is undefined for an empty series", func() {
			_, ok := aggregate.Mode(nil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestPointsAndDistributions(t *testing.T) {
	Convey("Given rows with a missing salary", t, func() {
		df := frame(
			[]string{"Moscow", "Driver", "50", "1"},
			[]string{"Tomsk", "Driver", "NaN", "2"},
			[]string{"Tomsk", "Cook", "30", "3"},
		)

		Convey("Points skips incomplete rows and carries the hue", func() {
			pts, err := aggregate.Points(df, model.ColExperience, model.ColSalary, model.ColRegion)
			So(err, ShouldBeNil)
			So(pts, ShouldResemble, []aggregate.Point{
				{X: 1, Y: 50, Hue: "Moscow"},
				{X: 3, Y: 30, Hue: "Tomsk"},
			})
		})

		Convey("Points without a hue column leaves hue empty", func() {
			pts, err := aggregate.Points(df, model.ColExperience, model.ColSalary, "")
			So(err, ShouldBeNil)
			So(len(pts), ShouldEqual, 2)
			So(pts[0].Hue, ShouldBeEmpty)
		})

		Convey("Distributions groups values by category in order", func() {
			dist, err := aggregate.Distributions(df, model.ColCategory, model.ColSalary)
			So(err, ShouldBeNil)
			So(dist, ShouldResemble, []aggregate.Distribution{
				{Category: "Driver", Values: []float64{50}},
				{Category: "Cook", Values: []float64{30}},
			})
		})

		Convey("Unknown columns are rejected", func() {
			_, err := aggregate.Distributions(df, "Nope", model.ColSalary)
			So(errors.Is(err, aggregate.ErrUnknownColumn), ShouldBeTrue)
		})
	})
}
