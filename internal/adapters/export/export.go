// Package export writes figure data to xlsx workbooks.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/resumedash/internal/domain/chart"
)

// Sheet names of an exported workbook.
const (
	DataSheet = "Data"
	InfoSheet = "Info"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook returns an xlsx file with the figure's data on the Data sheet and
// its labels and selection on the Info sheet.
func Workbook(fig chart.Figure) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return nil, fmt.Errorf("export %s: %w", fig.Chart, err)
	}
	if err := writeRows(f, DataSheet, dataRows(fig)); err != nil {
		return nil, fmt.Errorf("export %s: %w", fig.Chart, err)
	}

	if _, err := f.NewSheet(InfoSheet); err != nil {
		return nil, fmt.Errorf("export %s: %w", fig.Chart, err)
	}
	info := [][]interface{}{
		{"chart", string(fig.Chart)},
		{"title", fig.Title},
		{"subtitle", fig.Subtitle},
		{"rows", fig.Rows},
		{"regions", strings.Join(fig.Regions, "; ")},
	}
	if err := writeRows(f, InfoSheet, info); err != nil {
		return nil, fmt.Errorf("export %s: %w", fig.Chart, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", fig.Chart, err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for a chart workbook.
func Filename(id chart.ID) string {
	return string(id) + ".xlsx"
}

func dataRows(fig chart.Figure) [][]interface{} {
	var rows [][]interface{}
	switch fig.Kind {
	case chart.KindBar:
		rows = append(rows, []interface{}{orDefault(fig.YLabel, "Value"), orDefault(fig.XLabel, "Count")})
		for _, c := range fig.Counts {
			rows = append(rows, []interface{}{c.Value, c.Count})
		}
	case chart.KindTable:
		rows = append(rows, []interface{}{"Region", "Mean", "Median", "Mode", "Count"})
		for _, s := range fig.Stats {
			rows = append(rows, []interface{}{s.Group, s.Mean, s.Median, s.Mode, s.Count})
		}
	case chart.KindScatter:
		rows = append(rows, []interface{}{orDefault(fig.XLabel, "X"), orDefault(fig.YLabel, "Y"), "Region"})
		for _, p := range fig.Points {
			rows = append(rows, []interface{}{p.X, p.Y, p.Hue})
		}
	case chart.KindBox:
		rows = append(rows, []interface{}{orDefault(fig.XLabel, "Category"), orDefault(fig.YLabel, "Value")})
		for _, d := range fig.Distributions {
			for _, v := range d.Values {
				rows = append(rows, []interface{}{d.Category, v})
			}
		}
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
