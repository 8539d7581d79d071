package export

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

// Plots renders the standing analysis charts as PNG files next to the
// workbook and returns their paths.
func (e *Exporter) Plots(ctx context.Context) ([]string, error) {
	trendsPath := filepath.Join(e.outputDir, "trade_trends.png")
	if err := e.plotTradeTrends(ctx, trendsPath); err != nil {
		return nil, fmt.Errorf("trade trends plot: %w", err)
	}
	riskPath := filepath.Join(e.outputDir, "risk_scores.png")
	if err := e.plotRiskScores(ctx, riskPath); err != nil {
		return nil, fmt.Errorf("risk scores plot: %w", err)
	}
	return []string{trendsPath, riskPath}, nil
}

func (e *Exporter) plotTradeTrends(ctx context.Context, path string) error {
	totals, err := e.trades.YearlyFlowTotals(ctx)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Global Trade by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Value (USD)"
	p.Add(plotter.NewGrid())

	imports := make(plotter.XYs, 0, len(totals))
	exports := make(plotter.XYs, 0, len(totals))
	for _, t := range totals {
		pt := plotter.XY{X: float64(t.Year), Y: t.Value}
		if t.Flow == trade.FlowImport {
			imports = append(imports, pt)
		} else {
			exports = append(exports, pt)
		}
	}

	importLine, err := plotter.NewLine(imports)
	if err != nil {
		return err
	}
	importLine.Color = color.RGBA{R: 214, G: 69, B: 65, A: 255}
	exportLine, err := plotter.NewLine(exports)
	if err != nil {
		return err
	}
	exportLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	p.Add(importLine, exportLine)
	p.Legend.Add("Imports", importLine)
	p.Legend.Add("Exports", exportLine)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func (e *Exporter) plotRiskScores(ctx context.Context, path string) error {
	assessments, err := e.risks.Assessments(ctx, storage.Filter{})
	if err != nil {
		return err
	}

	values := make(plotter.Values, len(assessments))
	names := make([]string, len(assessments))
	for i, a := range assessments {
		values[i] = a.Composite
		names[i] = a.Country
	}

	p := plot.New()
	p.Title.Text = "Composite Risk by Country"
	p.Y.Label.Text = "Composite Score"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 214, G: 69, B: 65, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9

	return p.Save(9*vg.Inch, 4*vg.Inch, path)
}
