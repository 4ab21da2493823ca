// Package excel renders frequency comparisons as xlsx workbooks with
// native column charts.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"likertlab/app"
	"likertlab/internal/errors"
)

// Section is one worksheet-backed comparison in the workbook.
type Section struct {
	Title      string
	Comparison *app.Comparison
}

// ReportWriter builds xlsx workbooks from frequency comparisons. Each
// panel gets a sheet holding its zero-filled series plus a column chart
// whose category axis carries the scale labels and whose y-axis is
// clamped to the comparison's shared bound.
type ReportWriter struct{}

// NewReportWriter creates a new report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Build assembles a workbook from the given sections.
func (w *ReportWriter) Build(sections []Section) (*excelize.File, error) {
	if len(sections) == 0 {
		return nil, errors.InvalidInput("no sections to write")
	}

	f := excelize.NewFile()
	first := ""

	for _, section := range sections {
		for _, panel := range section.Comparison.Panels {
			sheet := sheetName(section.Title, panel.Title)
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, errors.ReportFailed(fmt.Sprintf("failed to create sheet %s", sheet), err)
			}
			if first == "" {
				first = sheet
			}
			if err := w.writePanel(f, sheet, panel, section.Comparison.YAxisMax); err != nil {
				return nil, err
			}
		}
	}

	// Drop the implicit default sheet and land on the first panel.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.ReportFailed("failed to remove default sheet", err)
	}
	index, err := f.GetSheetIndex(first)
	if err != nil {
		return nil, errors.ReportFailed("failed to resolve first sheet", err)
	}
	f.SetActiveSheet(index)

	return f, nil
}

// WriteTo builds the workbook and streams it to out.
func (w *ReportWriter) WriteTo(out io.Writer, sections []Section) error {
	f, err := w.Build(sections)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return errors.ReportFailed("failed to write workbook", err)
	}
	return nil
}

// SaveFile builds the workbook and saves it at path.
func (w *ReportWriter) SaveFile(path string, sections []Section) error {
	f, err := w.Build(sections)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.ReportFailed(fmt.Sprintf("failed to save workbook to %s", path), err)
	}
	return nil
}

func (w *ReportWriter) writePanel(f *excelize.File, sheet string, panel app.PanelResult, yMax float64) error {
	if err := f.SetCellValue(sheet, "A1", "Response"); err != nil {
		return errors.ReportFailed("failed to write header", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Percent"); err != nil {
		return errors.ReportFailed("failed to write header", err)
	}

	for i, point := range panel.Series {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), point.Label); err != nil {
			return errors.ReportFailed("failed to write label", err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), point.Percent); err != nil {
			return errors.ReportFailed("failed to write percent", err)
		}
	}

	lastRow := len(panel.Series) + 1
	yMin := 0.0
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       panel.Title,
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, lastRow),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, lastRow),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: panel.Title},
		},
		YAxis: excelize.ChartAxis{
			Minimum: &yMin,
			Maximum: &yMax,
		},
		Legend: excelize.ChartLegend{
			Position: "none",
		},
	}
	if err := f.AddChart(sheet, "D2", chart); err != nil {
		return errors.ReportFailed(fmt.Sprintf("failed to add chart to %s", sheet), err)
	}
	return nil
}

// sheetName derives a legal, unique-enough worksheet name. Excel caps
// names at 31 characters and forbids : \ / ? * [ ].
func sheetName(section, panel string) string {
	name := section + " " + panel
	replacer := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")
	name = replacer.Replace(name)
	if len(name) > 31 {
		name = name[:31]
	}
	return strings.TrimSpace(name)
}
