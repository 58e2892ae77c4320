// Package model contains the resume dataset schema shared between layers.
package model

// Column names of the normalized dataset. Lookup is always by name.
const (
	ColRegion     = "Region"
	ColCategory   = "Category"
	ColSalary     = "Salary"
	ColExperience = "Work experience (year)"
	ColEducation  = "Education"
	ColConditions = "working conditions"
	ColSex        = "Sex"
)

// LocalizedRegionColumn is the region header used by the localized export.
const LocalizedRegionColumn = "Область"

// MissingRegion labels rows whose region cell is empty so they stay selectable.
const MissingRegion = "(not specified)"

// RequiredColumns lists the columns every dataset must provide after renaming.
var RequiredColumns = []string{
	ColRegion,
	ColCategory,
	ColSalary,
	ColExperience,
	ColEducation,
	ColConditions,
	ColSex,
}

// NumericColumns are parsed as float64; every other column is a string.
var NumericColumns = []string{ColSalary, ColExperience}

// ResumeRecord is one row of the dataset.
type ResumeRecord struct {
	Region     string
	Category   string
	Salary     float64 // NaN when missing
	Experience float64 // years, NaN when missing
	Education  string
	Conditions string
	Sex        string
}

// IsNumeric reports whether column is parsed as float64.
func IsNumeric(column string) bool {
	for _, c := range NumericColumns {
		if c == column {
			return true
		}
	}
	return false
}
