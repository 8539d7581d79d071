package dashboard

import (
	"fmt"
	"image/color"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tradewatch/internal/trade"
)

func (h *Handler) chartTradeTrends(w http.ResponseWriter, r *http.Request) {
	totals, err := h.trade.YearlyTotals(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
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
		h.fail(w, r, err)
		return
	}
	importLine.Color = color.RGBA{R: 214, G: 69, B: 65, A: 255}
	exportLine, err := plotter.NewLine(exports)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	exportLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	p.Add(importLine, exportLine)
	p.Legend.Add("Imports", importLine)
	p.Legend.Add("Exports", exportLine)
	p.Legend.Top = true

	h.renderPNG(w, r, p, 8*vg.Inch, 4*vg.Inch)
}

func (h *Handler) chartRiskScores(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.risks.Assessments(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(assessments) == 0 {
		writeError(w, http.StatusNotFound, "no risk data")
		return
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
		h.fail(w, r, err)
		return
	}
	bars.Color = color.RGBA{R: 214, G: 69, B: 65, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9

	h.renderPNG(w, r, p, 9*vg.Inch, 4*vg.Inch)
}

func (h *Handler) chartGreenTrade(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.econ.GreenRankings(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(ranks) == 0 {
		writeError(w, http.StatusNotFound, "no environmental data")
		return
	}

	circular := make(plotter.Values, len(ranks))
	green := make(plotter.Values, len(ranks))
	names := make([]string, len(ranks))
	for i, rank := range ranks {
		circular[i] = rank.CircularScore
		green[i] = rank.GreenTradeShare
		names[i] = rank.Country
	}

	p := plot.New()
	p.Title.Text = "Green Trade Performance"
	p.Y.Label.Text = "Score"

	circularBars, err := plotter.NewBarChart(circular, vg.Points(12))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	circularBars.Color = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	circularBars.Offset = -vg.Points(7)

	greenBars, err := plotter.NewBarChart(green, vg.Points(12))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	greenBars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	greenBars.Offset = vg.Points(7)

	p.Add(circularBars, greenBars)
	p.Legend.Add("Circular Economy Score", circularBars)
	p.Legend.Add("Green Trade Share", greenBars)
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9

	h.renderPNG(w, r, p, 9*vg.Inch, 4*vg.Inch)
}

func (h *Handler) renderPNG(w http.ResponseWriter, r *http.Request, p *plot.Plot, width, height vg.Length) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		h.fail(w, r, fmt.Errorf("render chart: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := writer.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "chart write interrupted", "error", err)
	}
}
