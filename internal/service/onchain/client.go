package onchain

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/service/providerbase"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
)

// Client builds on-chain stats from the market-stats gateway. The market
// snapshot is the primary call: if it fails the whole result comes from
// the static fallback table. The enrichment calls (dominance, TVL, hash
// rate, active addresses) degrade individually.
type Client struct {
	baseURL string
	caller  *providerbase.Caller
}

// New creates an on-chain stats client.
func New(baseURL string, timeout time.Duration, retries int, backoff time.Duration, metrics domrepo.Metrics, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		caller:  providerbase.NewCaller(models.SourceOnChain, timeout, retries, backoff, metrics, log),
	}
}

type marketSnapshot struct {
	MarketCap         float64 `json:"market_cap"`
	TotalVolume       float64 `json:"total_volume"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
}

type globalSnapshot struct {
	Data struct {
		TotalMarketCap struct {
			USD float64 `json:"usd"`
		} `json:"total_market_cap"`
	} `json:"data"`
}

type addressSeries struct {
	Values []struct {
		Y float64 `json:"y"`
	} `json:"values"`
}

// Fetch assembles on-chain stats for a symbol. It never errors; Degraded
// marks a whole-table fallback and DegradedFields lists enrichment fields
// that individually fell back.
func (c *Client) Fetch(ctx context.Context, symbol string) models.OnChainResult {
	coin := coinOf(symbol)
	coinID, ok := coinIDs[coin]
	if !ok {
		coinID = strings.ToLower(coin)
	}

	stats := models.OnChainStats{
		HashLabel:       "Hash Rate / Security",
		HashValue:       "N/A",
		TransLabel:      "Transaction Vol (24h)",
		TransValue:      "N/A",
		Dominance:       "N/A",
		ActiveAddresses: "Premium API Only",
		NVTRatio:        "N/A",
		TVL:             "N/A",
		WhaleStatus:     "Low Activity",
		ExchangeFlows:   "Neutral",
		MVRV:            "Calculating...",
	}

	var snaps []marketSnapshot
	_, err := c.caller.Do(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/markets",
		QueryParams: map[string]string{"ids": coinID},
	}, &snaps)
	if err != nil || len(snaps) == 0 {
		return c.wholeFallback(coin, stats)
	}
	snap := snaps[0]

	if snap.TotalVolume > 0 {
		stats.NVTRatio = fmt.Sprintf("%.2f", snap.MarketCap/snap.TotalVolume)
	}
	switch {
	case snap.PriceChangePct24h < -2:
		stats.ExchangeFlows = "High Inflow (Selling)"
	case snap.PriceChangePct24h > 2:
		stats.ExchangeFlows = "High Outflow (Buying)"
	default:
		stats.ExchangeFlows = "Balanced"
	}
	if math.Abs(snap.PriceChangePct24h) > 5 || snap.TotalVolume > snap.MarketCap*0.15 {
		stats.WhaleStatus = "High Activity"
	} else {
		stats.WhaleStatus = "Normal Activity"
	}
	stats.TransValue = formatUSD(snap.TotalVolume)

	var degradedFields []string

	if coin == "BTC" {
		stats.HashLabel = "Hash Rate (Security)"
		stats.HashValue, stats.ActiveAddresses, degradedFields = c.btcEnrichment(ctx, degradedFields)
	} else {
		stats.HashLabel = "Market Cap"
		stats.HashValue = formatUSD(snap.MarketCap)
	}

	stats.Dominance, degradedFields = c.dominance(ctx, coin, snap.MarketCap, degradedFields)
	stats.TVL, degradedFields = c.tvl(ctx, coin, coinID, degradedFields)

	return models.OnChainResult{Stats: stats, DegradedFields: degradedFields}
}

func (c *Client) wholeFallback(coin string, stats models.OnChainStats) models.OnChainResult {
	fb := Fallback(coin)
	if coin == "BTC" {
		stats.HashLabel = "Hash Rate (Security)"
	} else {
		stats.HashLabel = "Market Cap"
	}
	stats.HashValue = fb.HashValue
	stats.TransValue = fb.TransValue
	stats.Dominance = fb.Dominance
	stats.ActiveAddresses = fb.ActiveAddresses
	stats.NVTRatio = fb.NVTRatio
	stats.WhaleStatus = fb.WhaleStatus
	stats.ExchangeFlows = fb.ExchangeFlows
	stats.MVRV = fb.MVRV
	if fb.TVL != "" {
		stats.TVL = fb.TVL
	}
	return models.OnChainResult{Stats: stats, Degraded: true}
}

func (c *Client) dominance(ctx context.Context, coin string, mcap float64, degraded []string) (string, []string) {
	var glob globalSnapshot
	_, err := c.caller.Do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/global",
	}, &glob)
	total := glob.Data.TotalMarketCap.USD
	if err != nil || total <= 0 || mcap <= 0 {
		return Fallback(coin).Dominance, append(degraded, "dominance")
	}
	dom := mcap / total * 100
	if dom < 0.01 {
		return "< 0.01%", degraded
	}
	return fmt.Sprintf("%.2f%%", dom), degraded
}

func (c *Client) tvl(ctx context.Context, coin, coinID string, degraded []string) (string, []string) {
	backup, isDeFi := backupTVL[coin]
	if !isDeFi {
		if coin == "BTC" {
			return "N/A (Not DeFi)", degraded
		}
		return "N/A (Low DeFi)", degraded
	}

	var tvl float64
	_, err := c.caller.Do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/tvl/" + coinID,
	}, &tvl)
	if err != nil {
		return backup, append(degraded, "tvl")
	}
	return formatUSD(tvl), degraded
}

func (c *Client) btcEnrichment(ctx context.Context, degraded []string) (hash, addresses string, _ []string) {
	var ghs float64
	_, err := c.caller.Do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/hashrate",
	}, &ghs)
	if err != nil {
		hash = Fallback("BTC").HashValue
		degraded = append(degraded, "hash_value")
	} else {
		hash = fmt.Sprintf("%.2f EH/s", ghs/1000)
	}

	var series addressSeries
	_, err = c.caller.Do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/addresses",
	}, &series)
	if err != nil || len(series.Values) == 0 {
		addresses = Fallback("BTC").ActiveAddresses
		degraded = append(degraded, "active_addresses")
	} else {
		addresses = groupThousands(int64(series.Values[len(series.Values)-1].Y)) + " (24h)"
	}
	return hash, addresses, degraded
}

func coinOf(symbol string) string {
	coin, _, _ := strings.Cut(symbol, "-")
	return coin
}

func formatUSD(v float64) string {
	return "$" + groupThousands(int64(math.Round(v)))
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

var _ domservice.OnChainProvider = (*Client)(nil)
