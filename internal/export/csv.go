// Package export writes the finished report as CSV, Excel and PNG chart
// files. It consumes the assembled report and never feeds back into the
// analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/whiskerlabs/catstonks/internal/analysis"
)

type CSVManager struct {
	basePath string
}

func NewCSVManager(basePath string) *CSVManager {
	return &CSVManager{
		basePath: basePath,
	}
}

// WriteReportCSV writes the merged rows to a timestamped CSV file and
// returns its path.
func (c *CSVManager) WriteReportCSV(report *analysis.Report) (string, error) {
	if err := os.MkdirAll(c.basePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := fmt.Sprintf("%s_cat_vs_stock_%s.csv",
		sanitizeSymbol(report.Symbol), time.Now().Format("20060102_150405"))
	filePath := filepath.Join(c.basePath, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Date", "Close", "FinanceCatCount"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.Date.Format(analysis.DateKey),
			strconv.FormatFloat(row.Close, 'f', 4, 64),
			strconv.Itoa(row.FinanceCatCount),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return filePath, nil
}

func sanitizeSymbol(symbol string) string {
	out := make([]rune, 0, len(symbol))
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
