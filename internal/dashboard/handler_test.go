package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradewatch/internal/collector"
	"tradewatch/internal/economy"
	"tradewatch/internal/platform/metrics"
	"tradewatch/internal/policy"
	"tradewatch/internal/risk"
	"tradewatch/internal/scenario"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

type HandlerSuite struct {
	suite.Suite
	db     *storage.DB
	server *httptest.Server
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupSuite() {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(storage.CreateSchema(ctx, db))
	s.Require().NoError(storage.Seed(ctx, db))
	s.db = db

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tradeStore := trade.NewStore(db)
	econStore := economy.NewStore(db)
	polStore := policy.NewStore(db)
	scenStore := scenario.NewStore(db)

	c := collector.New(tradeStore, econStore, polStore, logger, 2021, 2023)
	s.Require().NoError(c.Run(ctx))

	handler := NewHandler(Deps{
		DB:        db,
		Trade:     trade.NewService(tradeStore),
		TradeRows: tradeStore,
		Economy:   economy.NewService(econStore),
		EconRows:  econStore,
		Policies:  policy.NewService(polStore),
		PolRows:   polStore,
		Risks:     risk.NewService(tradeStore, econStore),
		Scenarios: scenario.NewService(scenStore, econStore),
		Metrics:   metrics.New(),
		Logger:    logger,
	})
	s.server = httptest.NewServer(handler.Routes())
}

func (s *HandlerSuite) TearDownSuite() {
	s.server.Close()
	_ = s.db.Close()
}

func (s *HandlerSuite) getJSON(path string, out any) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()
	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *HandlerSuite) TestHealth() {
	var body map[string]string
	resp := s.getJSON("/healthz", &body)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])
}

func (s *HandlerSuite) TestCountries() {
	var countries []storage.Country
	resp := s.getJSON("/api/countries", &countries)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(countries, 10)
	s.Equal("United States", countries[0].Name)
}

func (s *HandlerSuite) TestOverview() {
	var body map[string]int
	resp := s.getJSON("/api/overview", &body)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(10, body["countries"])
	s.Equal(600, body["trade_records"], "3 years of sample data")
	s.Equal(210, body["indicators"])
	s.Equal(8, body["sanctions"])
}

func (s *HandlerSuite) TestTradeBalanceFiltered() {
	var balances []trade.Balance
	resp := s.getJSON("/api/trade/balance?year_from=2022&year_to=2022&countries=Germany", &balances)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(balances, 1)
	s.Equal("Germany", balances[0].Country)
	s.Equal(2022, balances[0].Year)
}

func (s *HandlerSuite) TestIndicatorsByName() {
	var points []economy.IndicatorPoint
	resp := s.getJSON("/api/indicators?name=GDP+(current+US$)", &points)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(points, 30, "10 countries over 3 years")
	for _, p := range points {
		s.Equal("GDP (current US$)", p.Name)
	}
}

func (s *HandlerSuite) TestTopTraders() {
	var ranks []trade.TraderRank
	resp := s.getJSON("/api/trade/top?limit=3", &ranks)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(ranks, 3)
	s.Equal("China", ranks[0].Country)
}

func (s *HandlerSuite) TestIndicatorsNormalized() {
	var points []economy.IndicatorPoint
	resp := s.getJSON("/api/indicators/normalized", &points)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(points, 210)
}

func (s *HandlerSuite) TestTariffPairsAndSanctionSummary() {
	var pairs []policy.TariffPair
	resp := s.getJSON("/api/tariffs/pairs", &pairs)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(pairs)

	var summary []policy.SanctionSummary
	resp = s.getJSON("/api/sanctions/summary", &summary)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(summary)
}

func (s *HandlerSuite) TestIndicatorCorrelation() {
	var cells []economy.Correlation
	resp := s.getJSON("/api/indicators/correlation", &cells)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(cells, 21, "7 indicators pair into 21 cells")
}

func (s *HandlerSuite) TestEnvironment() {
	var ranks []economy.GreenRank
	resp := s.getJSON("/api/environment", &ranks)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(ranks, 10)
	s.Equal("Germany", ranks[0].Country, "green leader ranks first")
}

func (s *HandlerSuite) TestRiskComposite() {
	var assessments []risk.Assessment
	resp := s.getJSON("/api/risk/composite", &assessments)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(assessments, 10)

	counts := make(map[risk.Level]int)
	for _, a := range assessments {
		counts[a.Level]++
	}
	s.Equal(3, counts[risk.LevelHigh])
	s.Equal(4, counts[risk.LevelMedium])
	s.Equal(3, counts[risk.LevelLow])
}

func (s *HandlerSuite) TestRunScenario() {
	body := `{"scenario_name": "tariff shock", "scenario_type": "tariff_change",
		"base_year": 2024, "projection_years": 3, "tariff_change": 10}`
	resp, err := http.Post(s.server.URL+"/api/scenario", "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var res scenario.Result
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&res))
	s.NotEmpty(res.RunID)
	s.Len(res.Points, 3)
	s.InDelta(950, res.Points[0].TradeValue, 1e-9)
}

func (s *HandlerSuite) TestRunScenarioRejectsBadInput() {
	resp, err := http.Post(s.server.URL+"/api/scenario", "application/json", strings.NewReader("{not json"))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(s.server.URL+"/api/scenario", "application/json",
		strings.NewReader(`{"scenario_type": "weather", "base_year": 2024, "projection_years": 2}`))
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerSuite) TestCharts() {
	for _, path := range []string{
		"/api/charts/trade-trends.png",
		"/api/charts/risk-scores.png",
		"/api/charts/green-trade.png",
	} {
		resp, err := http.Get(s.server.URL + path)
		s.Require().NoError(err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode, path)
		s.Equal("image/png", resp.Header.Get("Content-Type"), path)
		s.NotEmpty(body, path)
	}
}

func (s *HandlerSuite) TestMetricsEndpoint() {
	resp, err := http.Get(s.server.URL + "/metrics")
	s.Require().NoError(err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), "tradewatch_http_requests_total")
}
