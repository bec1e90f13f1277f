package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/whiskerlabs/catstonks/internal/analysis"
	"github.com/xuri/excelize/v2"
)

const (
	dataSheet    = "Cat vs Stock Data"
	summarySheet = "Summary"
)

// ExcelReporter writes the full workbook report: a data sheet with an
// embedded line chart and a summary sheet with the statistics and verdict.
type ExcelReporter struct {
	basePath string
}

func NewExcelReporter(basePath string) *ExcelReporter {
	return &ExcelReporter{
		basePath: basePath,
	}
}

// WriteReport writes the workbook and returns its path.
func (e *ExcelReporter) WriteReport(report *analysis.Report) (string, error) {
	if err := os.MkdirAll(e.basePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(dataSheet)
	if err != nil {
		return "", fmt.Errorf("failed to create data sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := e.writeDataSheet(f, report); err != nil {
		return "", err
	}
	if err := e.addChart(f, report); err != nil {
		return "", err
	}
	if err := e.writeSummarySheet(f, report); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s_cat_vs_stock_report_%s.xlsx",
		sanitizeSymbol(report.Symbol), time.Now().Format("20060102_150405"))
	filePath := filepath.Join(e.basePath, filename)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return filePath, nil
}

func (e *ExcelReporter) writeDataSheet(f *excelize.File, report *analysis.Report) error {
	headers := []interface{}{"Date", "Close", "FinanceCatCount"}
	if err := f.SetSheetRow(dataSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range report.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.Date.Format(analysis.DateKey),
			row.Close,
			row.FinanceCatCount,
		}
		if err := f.SetSheetRow(dataSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return nil
}

func (e *ExcelReporter) addChart(f *excelize.File, report *analysis.Report) error {
	if len(report.Rows) == 0 {
		return nil
	}

	lastRow := len(report.Rows) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", dataSheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", dataSheet, lastRow),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", dataSheet, lastRow),
			},
			{
				Name:       fmt.Sprintf("'%s'!$C$1", dataSheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", dataSheet, lastRow),
				Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", dataSheet, lastRow),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: fmt.Sprintf("Finance Cat Names vs %s", report.Symbol)},
		},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}

	if err := f.AddChart(dataSheet, "E5", chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

func (e *ExcelReporter) writeSummarySheet(f *excelize.File, report *analysis.Report) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	cells := map[string]interface{}{
		"A1": "Cat Names vs Stock Market Report Summary",
		"A3": fmt.Sprintf("Symbol: %s", report.Symbol),
		"A4": fmt.Sprintf("Pearson Correlation Coefficient: %.3f", report.Correlation),
		"A5": fmt.Sprintf("P-value: %.4f", report.PValue),
		"A7": report.Verdict,
	}
	for cell, value := range cells {
		if err := f.SetCellValue(summarySheet, cell, value); err != nil {
			return fmt.Errorf("failed to write summary cell %s: %w", cell, err)
		}
	}
	return nil
}
