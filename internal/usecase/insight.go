package usecase

import (
	"context"
	"sort"
	"strings"

	talib "github.com/markcheno/go-talib"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/pkg/util"
)

// Window sizes for the coin-details view, in daily bars.
var detailWindows = map[string]int{
	"30d": 30,
	"1y":  365,
	"10y": 3650,
}

const chartMAPeriod = 7

// CoinRow is one table row of the coin-details view.
type CoinRow struct {
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	ChangePct float64 `json:"change_pct"`
}

// CoinChart holds the chart series for the coin-details view. SMA7 and
// EMA7 are aligned with Labels; leading warm-up entries are zero.
type CoinChart struct {
	Labels []string  `json:"labels"`
	Close  []float64 `json:"close"`
	SMA7   []float64 `json:"sma7"`
	EMA7   []float64 `json:"ema7"`
}

// CoinDetails is the per-symbol market view.
type CoinDetails struct {
	Symbol       string    `json:"symbol"`
	Window       string    `json:"window"`
	LastClose    float64   `json:"last_close"`
	DayChangePct float64   `json:"day_change_pct"`
	Rows         []CoinRow `json:"rows"`
	Chart        CoinChart `json:"chart"`
}

// LeaderInfo is one entry of the market-leaders view.
type LeaderInfo struct {
	Symbol       string  `json:"symbol"`
	LastClose    float64 `json:"last_close"`
	DayChangePct float64 `json:"day_change_pct"`
	Bars         int     `json:"bars"`
}

// Insight serves read-only market views over the stored series.
type Insight struct {
	store    domrepo.SeriesStore
	universe []string
}

// NewInsight creates the insight usecase over the configured universe.
func NewInsight(store domrepo.SeriesStore, universe []string) *Insight {
	return &Insight{store: store, universe: universe}
}

// CoinDetails builds the per-symbol view for the requested window.
// Unknown windows fall back to 30d. Returns ErrNoSeries for symbols with
// no stored data.
func (in *Insight) CoinDetails(ctx context.Context, symbol, window string) (CoinDetails, error) {
	days, ok := detailWindows[window]
	if !ok {
		window, days = "30d", detailWindows["30d"]
	}

	bars, err := in.store.Load(ctx, symbol)
	if err != nil {
		return CoinDetails{}, err
	}
	if len(bars) == 0 {
		return CoinDetails{}, domrepo.ErrNoSeries
	}

	d := CoinDetails{
		Symbol:       symbol,
		Window:       window,
		LastClose:    bars[len(bars)-1].Close,
		DayChangePct: dayChange(bars),
	}

	start := len(bars) - days
	if start < 0 {
		start = 0
	}
	visible := bars[start:]

	// Table rows, newest first.
	d.Rows = make([]CoinRow, 0, len(visible))
	for i := len(visible) - 1; i >= 0; i-- {
		b := visible[i]
		row := CoinRow{
			Date:   b.Date.Format(util.DayFormat),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
		globalIdx := start + i
		if globalIdx > 0 && bars[globalIdx-1].Close != 0 {
			row.ChangePct = (b.Close - bars[globalIdx-1].Close) / bars[globalIdx-1].Close * 100
		}
		d.Rows = append(d.Rows, row)
	}

	d.Chart = buildChart(visible)
	return d, nil
}

func buildChart(bars []models.Bar) CoinChart {
	chart := CoinChart{
		Labels: make([]string, len(bars)),
		Close:  make([]float64, len(bars)),
	}
	for i, b := range bars {
		chart.Labels[i] = b.Date.Format(util.DayFormat)
		chart.Close[i] = b.Close
	}
	if len(bars) >= chartMAPeriod {
		chart.SMA7 = talib.Sma(chart.Close, chartMAPeriod)
		chart.EMA7 = talib.Ema(chart.Close, chartMAPeriod)
	} else {
		chart.SMA7 = make([]float64, len(bars))
		chart.EMA7 = make([]float64, len(bars))
	}
	return chart
}

func dayChange(bars []models.Bar) float64 {
	if len(bars) < 2 {
		return 0
	}
	prev := bars[len(bars)-2].Close
	if prev == 0 {
		return 0
	}
	return (bars[len(bars)-1].Close - prev) / prev * 100
}

// MarketLeaders returns basic info for every universe symbol that has
// stored data, in universe order.
func (in *Insight) MarketLeaders(ctx context.Context) []LeaderInfo {
	leaders := make([]LeaderInfo, 0, len(in.universe))
	for _, symbol := range in.universe {
		bars, err := in.store.Load(ctx, symbol)
		if err != nil || len(bars) == 0 {
			continue
		}
		leaders = append(leaders, LeaderInfo{
			Symbol:       symbol,
			LastClose:    bars[len(bars)-1].Close,
			DayChangePct: dayChange(bars),
			Bars:         len(bars),
		})
	}
	return leaders
}

// Search returns stored symbols containing q, case-insensitive, sorted.
// An empty query matches nothing.
func (in *Insight) Search(ctx context.Context, q string) ([]string, error) {
	if strings.TrimSpace(q) == "" {
		return []string{}, nil
	}
	symbols, err := in.store.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToUpper(strings.TrimSpace(q))
	matches := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if strings.Contains(strings.ToUpper(s), needle) {
			matches = append(matches, s)
		}
	}
	sort.Strings(matches)
	return matches, nil
}
