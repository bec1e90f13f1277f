package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/whiskerlabs/catstonks/internal/analysis"
)

// ChartRenderer draws the price series and the per-day finance-name counts
// as two aligned panels in one PNG.
type ChartRenderer struct {
	basePath string
}

func NewChartRenderer(basePath string) *ChartRenderer {
	return &ChartRenderer{
		basePath: basePath,
	}
}

// Render writes the chart PNG and returns its path.
func (c *ChartRenderer) Render(report *analysis.Report) (string, error) {
	if len(report.Rows) == 0 {
		return "", fmt.Errorf("no rows to chart")
	}
	if err := os.MkdirAll(c.basePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	pricePlot, err := c.buildPricePlot(report)
	if err != nil {
		return "", err
	}
	countPlot, err := c.buildCountPlot(report)
	if err != nil {
		return "", err
	}

	img := vgimg.New(12*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)

	plots := [][]*plot.Plot{{pricePlot}, {countPlot}}
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	pricePlot.Draw(canvases[0][0])
	countPlot.Draw(canvases[1][0])

	filename := fmt.Sprintf("%s_cat_vs_stock_chart_%s.png",
		sanitizeSymbol(report.Symbol), time.Now().Format("20060102_150405"))
	filePath := filepath.Join(c.basePath, filename)

	w, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return filePath, nil
}

func (c *ChartRenderer) buildPricePlot(report *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Finance-Inspired Cat Names vs %s", report.Symbol)
	p.Y.Label.Text = fmt.Sprintf("%s Closing Price", report.Symbol)
	p.X.Tick.Marker = plot.TimeTicks{Format: analysis.DateKey}

	points := make(plotter.XYs, len(report.Rows))
	for i, row := range report.Rows {
		points[i].X = float64(row.Date.Unix())
		points[i].Y = row.Close
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build price line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("Close", line)

	return p, nil
}

func (c *ChartRenderer) buildCountPlot(report *analysis.Report) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Finance-Inspired Cat Names"

	counts := make(plotter.Values, len(report.Rows))
	labels := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		counts[i] = float64(row.FinanceCatCount)
		labels[i] = row.Date.Format("01-02")
	}

	bars, err := plotter.NewBarChart(counts, vg.Points(8))
	if err != nil {
		return nil, fmt.Errorf("failed to build count bars: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	return p, nil
}
