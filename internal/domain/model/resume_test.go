package model_test

import (
	"testing"

	"github.com/okian/resumedash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSchema(t *testing.T) {
	Convey("Given the dataset schema", t, func() {
		Convey("Then salary and experience are numeric", func() {
			So(model.IsNumeric(model.ColSalary), ShouldBeTrue)
			So(model.IsNumeric(model.ColExperience), ShouldBeTrue)
		})

		Convey("And categorical columns are not", func() {
			for _, col := range []string{model.ColRegion, model.ColCategory, model.ColEducation, model.ColConditions, model.ColSex} {
				So(model.IsNumeric(col), ShouldBeFalse)
			}
		})

		Convey("And every required column is distinct", func() {
			seen := map[string]bool{}
			for _, col := range model.RequiredColumns {
				So(seen[col], ShouldBeFalse)
				seen[col] = true
			}
			So(len(seen), ShouldEqual, 7)
		})
	})
}
