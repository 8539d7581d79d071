package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tradewatch/internal/economy"
	"tradewatch/internal/platform/metrics"
	"tradewatch/internal/platform/middleware"
	"tradewatch/internal/policy"
	"tradewatch/internal/risk"
	"tradewatch/internal/scenario"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

// Handler serves the dashboard API and, when configured, the static UI.
type Handler struct {
	db        *storage.DB
	trade     *trade.Service
	tradeRows *trade.SQLStore
	econ      *economy.Service
	econRows  *economy.SQLStore
	policies  *policy.Service
	polRows   *policy.SQLStore
	risks     *risk.Service
	scenarios *scenario.Service
	metrics   *metrics.Metrics
	logger    *slog.Logger
	staticDir string
}

// Deps carries everything the handler needs.
type Deps struct {
	DB        *storage.DB
	Trade     *trade.Service
	TradeRows *trade.SQLStore
	Economy   *economy.Service
	EconRows  *economy.SQLStore
	Policies  *policy.Service
	PolRows   *policy.SQLStore
	Risks     *risk.Service
	Scenarios *scenario.Service
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	StaticDir string
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		db:        d.DB,
		trade:     d.Trade,
		tradeRows: d.TradeRows,
		econ:      d.Economy,
		econRows:  d.EconRows,
		policies:  d.Policies,
		polRows:   d.PolRows,
		risks:     d.Risks,
		scenarios: d.Scenarios,
		metrics:   d.Metrics,
		logger:    d.Logger,
		staticDir: d.StaticDir,
	}
}

// Routes assembles the router with the full middleware chain.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", h.countries)
		r.Get("/overview", h.overview)
		r.Get("/trade/flows", h.tradeFlows)
		r.Get("/trade/balance", h.tradeBalance)
		r.Get("/trade/partners", h.tradePartners)
		r.Get("/trade/top", h.topTraders)
		r.Get("/indicators", h.indicators)
		r.Get("/indicators/correlation", h.indicatorCorrelation)
		r.Get("/indicators/normalized", h.indicatorsNormalized)
		r.Get("/environment", h.environment)
		r.Get("/environment/trends", h.environmentTrends)
		r.Get("/policies", h.policyMeasures)
		r.Get("/tariffs", h.tariffs)
		r.Get("/tariffs/pairs", h.tariffPairs)
		r.Get("/sanctions", h.sanctions)
		r.Get("/sanctions/summary", h.sanctionSummary)
		r.Get("/risk", h.tradeRisk)
		r.Get("/risk/composite", h.compositeRisk)
		r.Get("/risk/trend", h.riskTrend)
		r.Post("/scenario", h.runScenario)

		r.Get("/charts/trade-trends.png", h.chartTradeTrends)
		r.Get("/charts/risk-scores.png", h.chartRiskScores)
		r.Get("/charts/green-trade.png", h.chartGreenTrade)
	})

	if h.staticDir != "" {
		r.Get("/*", h.serveStatic)
	}
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) countries(w http.ResponseWriter, r *http.Request) {
	countries, err := storage.ListCountries(r.Context(), h.db)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countries, err := storage.ListCountries(ctx, h.db)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	trades, err := h.tradeRows.Count(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	indicators, err := h.econRows.IndicatorCount(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	tariffs, sanctions, measures, err := h.polRows.Counts(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"countries":     len(countries),
		"trade_records": trades,
		"indicators":    indicators,
		"tariffs":       tariffs,
		"sanctions":     sanctions,
		"policies":      measures,
	})
}

func (h *Handler) tradeFlows(w http.ResponseWriter, r *http.Request) {
	flows, err := h.trade.Flows(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flows)
}

func (h *Handler) tradeBalance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.trade.Balances(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (h *Handler) tradePartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.trade.Partners(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

func (h *Handler) topTraders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	ranks, err := h.trade.TopTraders(r.Context(), parseFilter(r), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranks)
}

func (h *Handler) indicators(w http.ResponseWriter, r *http.Request) {
	points, err := h.econ.Indicators(r.Context(), parseFilter(r), r.URL.Query().Get("name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) indicatorCorrelation(w http.ResponseWriter, r *http.Request) {
	cells, err := h.econ.Correlations(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (h *Handler) indicatorsNormalized(w http.ResponseWriter, r *http.Request) {
	points, err := h.econ.Normalized(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) environment(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.econ.GreenRankings(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranks)
}

func (h *Handler) environmentTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.econ.Trends(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

func (h *Handler) policyMeasures(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	measures, err := h.policies.Measures(r.Context(), activeOnly)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, measures)
}

func (h *Handler) tariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.policies.Tariffs(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tariffs)
}

func (h *Handler) tariffPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.policies.AvgTariffPairs(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pairs)
}

func (h *Handler) sanctions(w http.ResponseWriter, r *http.Request) {
	sanctions, err := h.policies.Sanctions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sanctions)
}

func (h *Handler) sanctionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.policies.SanctionSummary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) tradeRisk(w http.ResponseWriter, r *http.Request) {
	risks, err := h.risks.TradeRisks(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, risks)
}

func (h *Handler) compositeRisk(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.risks.Assessments(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (h *Handler) riskTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.risks.Trend(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) runScenario(w http.ResponseWriter, r *http.Request) {
	var req scenario.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.scenarios.Run(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.metrics.ScenarioRuns.Inc()
	writeJSON(w, http.StatusOK, res)
}

// serveStatic serves the UI bundle, falling back to index.html for
// client-side routes.
func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		"request_id", middleware.GetRequestID(r.Context()),
		"path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// parseFilter reads year_from, year_to and the countries CSV off the query.
func parseFilter(r *http.Request) storage.Filter {
	var f storage.Filter
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("year_from")); err == nil {
		f.YearFrom = v
	}
	if v, err := strconv.Atoi(q.Get("year_to")); err == nil {
		f.YearTo = v
	}
	if raw := q.Get("countries"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				f.Countries = append(f.Countries, c)
			}
		}
	}
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
