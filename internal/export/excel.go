package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"tradewatch/internal/economy"
	"tradewatch/internal/platform/metrics"
	"tradewatch/internal/policy"
	"tradewatch/internal/risk"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

// Exporter builds the analysis workbook from the collected dataset.
type Exporter struct {
	db      *storage.DB
	trades  *trade.SQLStore
	econ    *economy.SQLStore
	pol     *policy.SQLStore
	risks   *risk.Service
	logger  *slog.Logger
	metrics *metrics.Metrics

	outputDir string
}

func New(db *storage.DB, trades *trade.SQLStore, econ *economy.SQLStore, pol *policy.SQLStore, risks *risk.Service, logger *slog.Logger, m *metrics.Metrics, outputDir string) *Exporter {
	return &Exporter{
		db:        db,
		trades:    trades,
		econ:      econ,
		pol:       pol,
		risks:     risks,
		logger:    logger,
		metrics:   m,
		outputDir: outputDir,
	}
}

// Build writes the workbook and returns its path. The filename carries the
// generation date so repeated runs don't clobber older reports.
func (e *Exporter) Build(ctx context.Context) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return "", fmt.Errorf("create title style: %w", err)
	}
	w := &writer{f: f, header: headerStyle, title: titleStyle}

	if err := e.dashboardSheet(ctx, w); err != nil {
		return "", fmt.Errorf("dashboard sheet: %w", err)
	}
	if err := e.tradeDataSheet(ctx, w); err != nil {
		return "", fmt.Errorf("trade data sheet: %w", err)
	}
	if err := e.indicatorsSheet(ctx, w); err != nil {
		return "", fmt.Errorf("economic indicators sheet: %w", err)
	}
	if err := e.policySheet(ctx, w); err != nil {
		return "", fmt.Errorf("policy analysis sheet: %w", err)
	}
	if err := e.scenarioSheet(w); err != nil {
		return "", fmt.Errorf("scenario modeling sheet: %w", err)
	}
	if err := e.riskSheet(ctx, w); err != nil {
		return "", fmt.Errorf("risk assessment sheet: %w", err)
	}
	if err := e.pivotSheet(ctx, w); err != nil {
		return "", fmt.Errorf("pivot tables sheet: %w", err)
	}
	if err := e.chartsSheet(ctx, w); err != nil {
		return "", fmt.Errorf("charts sheet: %w", err)
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("trade_analysis_%s.xlsx", time.Now().Format("20060102")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	if e.metrics != nil {
		e.metrics.ReportsWritten.Inc()
	}
	e.logger.Info("workbook written", "path", path)
	return path, nil
}

func (e *Exporter) dashboardSheet(ctx context.Context, w *writer) error {
	// reuse the default sheet so the workbook opens on the dashboard
	if err := w.f.SetSheetName("Sheet1", "Dashboard"); err != nil {
		return err
	}
	sheet := "Dashboard"

	w.titleCell(sheet, 1, "Global Trade Analysis Dashboard")
	w.cell(sheet, 2, 1, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))

	countries, err := storage.ListCountries(ctx, e.db)
	if err != nil {
		return err
	}
	trades, err := e.trades.Count(ctx)
	if err != nil {
		return err
	}
	indicators, err := e.econ.IndicatorCount(ctx)
	if err != nil {
		return err
	}
	sanctions, err := e.pol.Sanctions(ctx)
	if err != nil {
		return err
	}
	active := 0
	for _, s := range sanctions {
		if s.Status == "active" {
			active++
		}
	}

	w.sectionCell(sheet, 4, "Key Metrics")
	w.row(sheet, 6, "Total Countries", len(countries))
	w.row(sheet, 7, "Trade Records", trades)
	w.row(sheet, 8, "Economic Indicators", indicators)
	w.row(sheet, 9, "Active Sanctions", active)

	w.sectionCell(sheet, 11, "Recent Trade Summary")
	w.headerRow(sheet, 12, "Country", "Year", "Trade Flow", "Total Value (USD)")

	recent, err := e.trades.FlowSummary(ctx, storage.Filter{YearFrom: 2022})
	if err != nil {
		return err
	}
	sort.Slice(recent, func(i, j int) bool {
		if recent[i].Year != recent[j].Year {
			return recent[i].Year > recent[j].Year
		}
		return recent[i].Value > recent[j].Value
	})
	if len(recent) > 20 {
		recent = recent[:20]
	}
	for i, p := range recent {
		w.row(sheet, 13+i, p.Country, p.Year, string(p.Flow), p.Value)
	}

	return w.colWidths(sheet, map[string]float64{"A": 24, "B": 12, "C": 12, "D": 20})
}

func (e *Exporter) tradeDataSheet(ctx context.Context, w *writer) error {
	sheet := "Trade Data"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Trade Data Analysis")

	records, err := e.trades.List(ctx, 0)
	if err != nil {
		return err
	}
	w.headerRow(sheet, 3, "Year", "Reporter", "Partner", "Commodity", "Flow", "Value (USD)", "Source")
	for i, r := range records {
		w.row(sheet, 4+i, r.Year, r.Reporter, r.Partner, r.Commodity, string(r.Flow), r.ValueUSD, r.Source)
	}

	pivotRow := 4 + len(records) + 2
	w.sectionCell(sheet, pivotRow, "Trade Summary Pivot")
	w.headerRow(sheet, pivotRow+1, "Country", "Year", "Exports", "Imports")

	summary, err := e.trades.FlowSummary(ctx, storage.Filter{})
	if err != nil {
		return err
	}
	type key struct {
		country string
		year    int
	}
	pivot := make(map[key]*[2]float64)
	var order []key
	for _, p := range summary {
		k := key{p.Country, p.Year}
		vals, ok := pivot[k]
		if !ok {
			vals = &[2]float64{}
			pivot[k] = vals
			order = append(order, k)
		}
		if p.Flow == trade.FlowExport {
			vals[0] += p.Value
		} else {
			vals[1] += p.Value
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].country != order[j].country {
			return order[i].country < order[j].country
		}
		return order[i].year < order[j].year
	})
	for i, k := range order {
		vals := pivot[k]
		w.row(sheet, pivotRow+2+i, k.country, k.year, vals[0], vals[1])
	}
	return w.colWidths(sheet, map[string]float64{"A": 14, "B": 20, "C": 20, "D": 14, "E": 10, "F": 18, "G": 14})
}

func (e *Exporter) indicatorsSheet(ctx context.Context, w *writer) error {
	sheet := "Economic Indicators"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Economic Indicators Analysis")

	indicators, err := e.econ.List(ctx, 0)
	if err != nil {
		return err
	}
	w.headerRow(sheet, 3, "Country", "Indicator", "Year", "Value", "Source")
	for i, ind := range indicators {
		w.row(sheet, 4+i, ind.Country, ind.Name, ind.Year, ind.Value, ind.Source)
	}

	points, err := e.econ.IndicatorPoints(ctx, storage.Filter{}, "")
	if err != nil {
		return err
	}
	names := make([]string, 0)
	seen := make(map[string]bool)
	for _, p := range points {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)

	pivotRow := 4 + len(indicators) + 2
	w.sectionCell(sheet, pivotRow, "Economic Indicators Summary")
	header := append([]any{"Country", "Year"}, toAny(names)...)
	w.headerRow(sheet, pivotRow+1, header...)

	type key struct {
		country string
		year    int
	}
	pivot := make(map[key]map[string]float64)
	var order []key
	for _, p := range points {
		k := key{p.Country, p.Year}
		if pivot[k] == nil {
			pivot[k] = make(map[string]float64)
			order = append(order, k)
		}
		pivot[k][p.Name] = p.Value
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].country != order[j].country {
			return order[i].country < order[j].country
		}
		return order[i].year < order[j].year
	})
	for i, k := range order {
		values := []any{k.country, k.year}
		for _, name := range names {
			values = append(values, pivot[k][name])
		}
		w.row(sheet, pivotRow+2+i, values...)
	}
	return w.colWidths(sheet, map[string]float64{"A": 20, "B": 28, "C": 10, "D": 16, "E": 14})
}

func (e *Exporter) policySheet(ctx context.Context, w *writer) error {
	sheet := "Policy Analysis"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Trade Policy Analysis")

	w.sectionCell(sheet, 3, "Tariff Data")
	w.headerRow(sheet, 4, "Imposing Country", "Target Country", "Commodity", "Rate (%)", "Type", "Effective", "Source")
	tariffs, err := e.pol.Tariffs(ctx)
	if err != nil {
		return err
	}
	for i, t := range tariffs {
		w.row(sheet, 5+i, t.Country, t.Partner, t.CommodityCode, t.TariffRate, t.TariffType, t.EffectiveDate, t.Source)
	}

	sanctionRow := 5 + len(tariffs) + 2
	w.sectionCell(sheet, sanctionRow, "Sanctions Data")
	w.headerRow(sheet, sanctionRow+1, "Sanctioning Country", "Target Country", "Type", "Description", "Start", "Status", "Source")
	sanctions, err := e.pol.Sanctions(ctx)
	if err != nil {
		return err
	}
	for i, s := range sanctions {
		w.row(sheet, sanctionRow+2+i, s.Sanctioning, s.Target, s.Type, s.Description, s.StartDate, s.Status, s.Source)
	}
	return w.colWidths(sheet, map[string]float64{"A": 20, "B": 20, "C": 14, "D": 50, "E": 12, "F": 10, "G": 12})
}

// scenarioSheet lays out the static planning model: a base state table, a
// scenario comparison matrix, and a six-year cash flow projection.
func (e *Exporter) scenarioSheet(w *writer) error {
	sheet := "Scenario Modeling"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Scenario Modeling & Financial Analysis")

	w.sectionCell(sheet, 3, "Base Scenario (Current State)")
	w.headerRow(sheet, 4, "Metric", "Value", "Unit")
	base := []struct {
		metric string
		value  float64
		unit   string
	}{
		{"Total Trade Volume", 1000000, "USD"},
		{"Average Tariff Rate", 2.5, "%"},
		{"GDP Growth", 3.2, "%"},
		{"Unemployment Rate", 5.1, "%"},
	}
	for i, b := range base {
		w.row(sheet, 5+i, b.metric, b.value, b.unit)
	}

	w.sectionCell(sheet, 10, "Scenario Analysis")
	scenarios := []string{"Base", "Optimistic", "Pessimistic", "Tariff Increase", "Trade Agreement"}
	metricNames := []string{"Trade Volume", "GDP Impact", "Employment Impact", "Risk Score"}
	values := [][4]float64{
		{100, 0, 0, 50},
		{120, 2.5, -0.5, 30},
		{80, -2.0, 1.0, 70},
		{85, -1.5, 0.8, 65},
		{115, 1.8, -0.3, 35},
	}
	w.headerRow(sheet, 11, append([]any{""}, toAny(scenarios)...)...)
	for i, metric := range metricNames {
		rowValues := []any{metric}
		for _, scenarioValues := range values {
			rowValues = append(rowValues, scenarioValues[i])
		}
		w.row(sheet, 12+i, rowValues...)
	}

	w.sectionCell(sheet, 18, "Financial Modeling")
	w.headerRow(sheet, 19, "Year", "Revenue", "Costs", "Net Income", "Cumulative Cash Flow")
	cumulative := 0.0
	revenue, costs := 1000000.0, 800000.0
	for i := 0; i < 6; i++ {
		net := revenue - costs
		cumulative += net
		w.row(sheet, 20+i, 2024+i, revenue, costs, net, cumulative)
		revenue *= 1.05
		costs *= 1.03
	}
	return w.colWidths(sheet, map[string]float64{"A": 22, "B": 16, "C": 16, "D": 16, "E": 22, "F": 16})
}

func (e *Exporter) riskSheet(ctx context.Context, w *writer) error {
	sheet := "Risk Assessment"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Risk Assessment & Scoring")

	w.sectionCell(sheet, 3, "Risk Factors")
	w.headerRow(sheet, 4, "Risk Factor", "Weight (%)", "High Risk", "Medium Risk", "Low Risk")
	factors := []struct {
		name   string
		weight int
		high   string
		medium string
		low    string
	}{
		{"Trade Volatility", 25, "High", "Medium", "Low"},
		{"Political Stability", 20, "Low", "Medium", "High"},
		{"Economic Growth", 20, "Low", "Medium", "High"},
		{"Regulatory Environment", 15, "Unfavorable", "Neutral", "Favorable"},
		{"Geographic Risk", 10, "High", "Medium", "Low"},
		{"Currency Risk", 10, "High", "Medium", "Low"},
	}
	for i, f := range factors {
		w.row(sheet, 5+i, f.name, f.weight, f.high, f.medium, f.low)
	}

	w.sectionCell(sheet, 13, "Risk Scoring Matrix")
	w.headerRow(sheet, 14, "Country", "Composite Score", "Risk Level", "Hidden Risk")
	assessments, err := e.risks.Assessments(ctx, storage.Filter{})
	if err != nil {
		return err
	}
	for i, a := range assessments {
		w.row(sheet, 15+i, a.Country, a.Composite, string(a.Level), a.Hidden)
	}
	return w.colWidths(sheet, map[string]float64{"A": 24, "B": 18, "C": 14, "D": 14, "E": 12})
}

func (e *Exporter) pivotSheet(ctx context.Context, w *writer) error {
	sheet := "Pivot Tables"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Pivot Tables & Data Analysis")

	summary, err := e.trades.FlowSummary(ctx, storage.Filter{})
	if err != nil {
		return err
	}

	years := make([]int, 0)
	seenYears := make(map[int]bool)
	byCountryYear := make(map[string]map[int]float64)
	byCountryFlow := make(map[string]map[trade.Flow]float64)
	countries := make([]string, 0)
	for _, p := range summary {
		if !seenYears[p.Year] {
			seenYears[p.Year] = true
			years = append(years, p.Year)
		}
		if byCountryYear[p.Country] == nil {
			byCountryYear[p.Country] = make(map[int]float64)
			byCountryFlow[p.Country] = make(map[trade.Flow]float64)
			countries = append(countries, p.Country)
		}
		byCountryYear[p.Country][p.Year] += p.Value
		byCountryFlow[p.Country][p.Flow] += p.Value
	}
	sort.Ints(years)
	sort.Strings(countries)

	w.sectionCell(sheet, 3, "Trade Volume by Country and Year")
	header := []any{"Country"}
	for _, y := range years {
		header = append(header, y)
	}
	w.headerRow(sheet, 4, header...)
	for i, c := range countries {
		values := []any{c}
		for _, y := range years {
			values = append(values, byCountryYear[c][y])
		}
		w.row(sheet, 5+i, values...)
	}

	flowRow := 5 + len(countries) + 2
	w.sectionCell(sheet, flowRow, "Trade Flow Analysis (Imports vs Exports)")
	w.headerRow(sheet, flowRow+1, "Country", "Exports", "Imports")
	for i, c := range countries {
		w.row(sheet, flowRow+2+i, c, byCountryFlow[c][trade.FlowExport], byCountryFlow[c][trade.FlowImport])
	}
	return w.colWidths(sheet, map[string]float64{"A": 24, "B": 18, "C": 18, "D": 18, "E": 18})
}

func (e *Exporter) chartsSheet(ctx context.Context, w *writer) error {
	sheet := "Charts"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	w.titleCell(sheet, 1, "Data Visualizations")

	totals, err := e.trades.YearlyFlowTotals(ctx)
	if err != nil {
		return err
	}

	w.sectionCell(sheet, 3, "Trade Trends Data")
	w.headerRow(sheet, 4, "Year", "Trade Flow", "Total Value (USD)")
	for i, t := range totals {
		w.row(sheet, 5+i, t.Year, string(t.Flow), t.Value)
	}
	if len(totals) == 0 {
		return nil
	}

	lastRow := 4 + len(totals)
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$C$4", sheet),
			Categories: fmt.Sprintf("%s!$A$5:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("%s!$C$5:$C$%d", sheet, lastRow),
		}},
		Title: []excelize.RichTextRun{{Text: "Global Trade Trends"}},
	}
	if err := w.f.AddChart(sheet, "E3", chart); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return w.colWidths(sheet, map[string]float64{"A": 10, "B": 14, "C": 20})
}

// writer wraps the workbook with row-oriented helpers.
type writer struct {
	f      *excelize.File
	header int
	title  int
}

func (w *writer) cell(sheet string, row, col int, value any) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = w.f.SetCellValue(sheet, name, value)
}

func (w *writer) row(sheet string, row int, values ...any) {
	for i, v := range values {
		w.cell(sheet, row, i+1, v)
	}
}

func (w *writer) headerRow(sheet string, row int, values ...any) {
	w.row(sheet, row, values...)
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(len(values), row)
	_ = w.f.SetCellStyle(sheet, start, end, w.header)
}

func (w *writer) titleCell(sheet string, row int, text string) {
	w.cell(sheet, row, 1, text)
	name, _ := excelize.CoordinatesToCellName(1, row)
	_ = w.f.SetCellStyle(sheet, name, name, w.title)
}

func (w *writer) sectionCell(sheet string, row int, text string) {
	w.cell(sheet, row, 1, text)
	name, _ := excelize.CoordinatesToCellName(1, row)
	_ = w.f.SetCellStyle(sheet, name, name, w.header)
}

func (w *writer) colWidths(sheet string, widths map[string]float64) error {
	for col, width := range widths {
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
