package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/services/resample"
	"CoinPulse/internal/services/strategy"
	"CoinPulse/internal/usecase"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
	"CoinPulse/pkg/util"
)

const (
	defaultCandleLimit  = 180
	defaultForecastDays = 7
)

// Handler serves the JSON API.
type Handler struct {
	store      domrepo.SeriesStore
	aggregator *usecase.ResilientAggregator
	insight    *usecase.Insight
	pipeline   *usecase.IngestionPipeline
	prober     *usecase.ReadinessProber
	forecast   domservice.ForecastService
	engine     *strategy.Engine
	symbols    []string
	log        *logger.Logger
}

// New creates the API handler.
func New(
	store domrepo.SeriesStore,
	aggregator *usecase.ResilientAggregator,
	insight *usecase.Insight,
	pipeline *usecase.IngestionPipeline,
	prober *usecase.ReadinessProber,
	forecast domservice.ForecastService,
	symbols []string,
	log *logger.Logger,
) *Handler {
	return &Handler{
		store:      store,
		aggregator: aggregator,
		insight:    insight,
		pipeline:   pipeline,
		prober:     prober,
		forecast:   forecast,
		engine:     strategy.NewEngine(),
		symbols:    symbols,
		log:        log,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/readyz", h.Ready)

	g := e.Group("/api")
	g.POST("/analyze", h.Analyze)
	g.GET("/report/:symbol", h.Report)
	g.GET("/candles/:symbol", h.Candles)
	g.GET("/details/:symbol", h.Details)
	g.GET("/leaders", h.Leaders)
	g.GET("/search", h.Search)
	g.GET("/forecast/:symbol", h.Forecast)
	g.POST("/ingest/run", h.RunIngest)
}

// Health reports process liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the remote collaborators answer their health
// endpoints.
func (h *Handler) Ready(c echo.Context) error {
	if h.prober != nil && !h.prober.Ready(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// AnalyzeBar is one OHLCV row of an analyze request. Dates accept the
// day layout plus day+time variants.
type AnalyzeBar struct {
	Date   string  `json:"Date" validate:"required"`
	Open   float64 `json:"Open"`
	High   float64 `json:"High"`
	Low    float64 `json:"Low"`
	Close  float64 `json:"Close"`
	Volume float64 `json:"Volume"`
}

// AnalyzeRequest is the analyze request payload.
type AnalyzeRequest struct {
	Data []AnalyzeBar `json:"data" validate:"required,min=1,dive"`
}

// Analyze scores a posted bar series with the in-process strategy set.
func (h *Handler) Analyze(c echo.Context) error {
	req := new(AnalyzeRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	bars := make([]models.Bar, 0, len(req.Data))
	for _, row := range req.Data {
		date, ok := util.ParseDay(row.Date)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("unparseable date: "+row.Date))
		}
		bars = append(bars, models.Bar{
			Date:   date,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	return c.JSON(http.StatusOK, h.engine.Analyze(bars))
}

// Report returns the aggregated multi-provider report for a symbol.
func (h *Handler) Report(c echo.Context) error {
	symbol := c.Param("symbol")
	report := h.aggregator.Aggregate(c.Request().Context(), symbol)
	return xhttp.SuccessResponse(c, report)
}

// Candles returns stored bars for a symbol, resampled to the requested
// timeframe and truncated to the newest `limit` bars.
func (h *Handler) Candles(c echo.Context) error {
	symbol := c.Param("symbol")
	tf := domrepo.NormalizeTimeframe(c.QueryParam("tf"))

	limit := defaultCandleLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("limit must be a positive integer"))
		}
		limit = n
	}

	bars, err := h.store.Load(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, domrepo.ErrNoSeries) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no data for %s", symbol))
		}
		h.log.Error("load series failed", logger.String("symbol", symbol), logger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	sampled := resample.Resample(bars, tf)
	if len(sampled) > limit {
		sampled = sampled[len(sampled)-limit:]
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol":    symbol,
		"timeframe": string(tf),
		"bars":      sampled,
	})
}

// Details returns the per-symbol market view.
func (h *Handler) Details(c echo.Context) error {
	symbol := c.Param("symbol")
	details, err := h.insight.CoinDetails(c.Request().Context(), symbol, c.QueryParam("window"))
	if err != nil {
		if errors.Is(err, domrepo.ErrNoSeries) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no data for %s", symbol))
		}
		h.log.Error("coin details failed", logger.String("symbol", symbol), logger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, details)
}

// Leaders returns basic info for the configured universe.
func (h *Handler) Leaders(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.insight.MarketLeaders(c.Request().Context()))
}

// Search returns stored symbols matching the query substring.
func (h *Handler) Search(c echo.Context) error {
	matches, err := h.insight.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.log.Error("search failed", logger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, matches)
}

// Forecast proxies the price-forecasting service for a symbol.
func (h *Handler) Forecast(c echo.Context) error {
	symbol := c.Param("symbol")

	days := defaultForecastDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("days must be a positive integer"))
		}
		days = n
	}

	target := util.Day(time.Now().UTC()).AddDate(0, 0, days)
	forecast, err := h.forecast.Predict(c.Request().Context(), symbol, target)
	if err != nil {
		h.log.Warn("forecast unavailable", logger.String("symbol", symbol), logger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("forecast service unavailable"))
	}
	return xhttp.SuccessResponse(c, forecast)
}

// RunIngest triggers a backfill run and returns the per-symbol outcomes.
func (h *Handler) RunIngest(c echo.Context) error {
	outcomes := h.pipeline.Run(c.Request().Context(), h.symbols)
	for symbol, o := range outcomes {
		if o.Status == models.OutcomeSuccess && o.Added > 0 {
			h.aggregator.Invalidate(c.Request().Context(), symbol)
		}
	}
	return xhttp.SuccessResponse(c, outcomes)
}
