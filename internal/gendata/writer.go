package gendata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/okian/resumedash/internal/domain/model"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o640
)

// Frame converts records to a table with the dataset schema. Missing regions
// are empty strings and missing numbers are NaN.
func Frame(records []model.ResumeRecord, localized bool) dataframe.DataFrame {
	n := len(records)
	region := make([]string, n)
	category := make([]string, n)
	salary := make([]float64, n)
	experience := make([]float64, n)
	education := make([]string, n)
	conds := make([]string, n)
	sex := make([]string, n)
	for i, r := range records {
		region[i] = r.Region
		category[i] = r.Category
		salary[i] = r.Salary
		experience[i] = r.Experience
		education[i] = r.Education
		conds[i] = r.Conditions
		sex[i] = r.Sex
	}

	regionHeader := model.ColRegion
	if localized {
		regionHeader = model.LocalizedRegionColumn
	}
	return dataframe.New(
		series.New(region, series.String, regionHeader),
		series.New(category, series.String, model.ColCategory),
		series.New(salary, series.Float, model.ColSalary),
		series.New(experience, series.Float, model.ColExperience),
		series.New(education, series.String, model.ColEducation),
		series.New(conds, series.String, model.ColConditions),
		series.New(sex, series.String, model.ColSex),
	)
}

// Write stores records at path as CSV, or as a workbook when path ends in .xlsx.
func Write(path string, records []model.ResumeRecord, localized bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	df := Frame(records, localized)
	if df.Err != nil {
		return fmt.Errorf("build table: %w", df.Err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, df)
	}
	return writeCSV(path, df)
}

func writeCSV(path string, df dataframe.DataFrame) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, df dataframe.DataFrame) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	for i, row := range df.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			if v == "NaN" {
				v = ""
			}
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
