// Package dataset loads the resume table once per path and keeps it in memory.
package dataset

import (
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/okian/resumedash/internal/domain/model"
)

// Dataset is an immutable, loaded resume table.
type Dataset struct {
	Path     string
	Frame    dataframe.DataFrame
	Regions  []string // distinct regions, first-encountered order
	LoadedAt time.Time
}

// Rows returns the number of resume rows.
func (d *Dataset) Rows() int {
	return d.Frame.Nrow()
}

// Records materializes the typed rows. Missing numbers are NaN.
func (d *Dataset) Records() []model.ResumeRecord {
	n := d.Frame.Nrow()
	region := d.Frame.Col(model.ColRegion)
	category := d.Frame.Col(model.ColCategory)
	salary := d.Frame.Col(model.ColSalary).Float()
	experience := d.Frame.Col(model.ColExperience).Float()
	education := d.Frame.Col(model.ColEducation)
	conditions := d.Frame.Col(model.ColConditions)
	sex := d.Frame.Col(model.ColSex)

	out := make([]model.ResumeRecord, n)
	for i := 0; i < n; i++ {
		out[i] = model.ResumeRecord{
			Region:     cell(region, i),
			Category:   cell(category, i),
			Salary:     salary[i],
			Experience: experience[i],
			Education:  cell(education, i),
			Conditions: cell(conditions, i),
			Sex:        cell(sex, i),
		}
	}
	return out
}
