package technical

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/logger"
)

func newClient(url string) *Client {
	return New(url, 2*time.Second, 0, time.Millisecond, nil, logger.Nop())
}

func sampleBars(n int) []models.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = models.Bar{Date: start.AddDate(0, 0, i), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}
	}
	return bars
}

func TestAnalyzeModernResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Data) != 3 {
			t.Errorf("expected 3 bars in payload, got %d", len(req.Data))
		}
		_, _ = w.Write([]byte(`{
			"overall_signal": "BUY",
			"overall_score": 4,
			"signals": [{"name":"RSI","score":1,"signal":"BUY","values":{"rsi":22.5}}]
		}`))
	}))
	defer srv.Close()

	got := newClient(srv.URL).Analyze(context.Background(), sampleBars(3))
	if got.Degraded {
		t.Fatal("unexpected degradation")
	}
	if got.Report.OverallSignal != models.SignalBuy || got.Report.OverallScore != 4 {
		t.Fatalf("report = %+v", got.Report)
	}
	if len(got.Report.Signals) != 1 || got.Report.Signals[0].Name != "RSI" {
		t.Fatalf("signals = %+v", got.Report.Signals)
	}
}

func TestAnalyzeLegacyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"signal": "SELL"}`))
	}))
	defer srv.Close()

	got := newClient(srv.URL).Analyze(context.Background(), sampleBars(3))
	if got.Degraded {
		t.Fatal("unexpected degradation")
	}
	if got.Report.OverallSignal != models.SignalSell {
		t.Fatalf("signal = %q, want SELL", got.Report.OverallSignal)
	}
	if got.Report.OverallScore != 0 || len(got.Report.Signals) != 0 {
		t.Fatalf("legacy shape must map to score 0 and no votes, got %+v", got.Report)
	}
	if got.Report.Signals == nil {
		t.Fatal("signals must be empty, not nil")
	}
}

func TestAnalyzeFailureDegradesToNA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := newClient(srv.URL).Analyze(context.Background(), sampleBars(3))
	if !got.Degraded {
		t.Fatal("expected degradation")
	}
	if got.Report.OverallSignal != models.SignalNA {
		t.Fatalf("signal = %q, want N/A", got.Report.OverallSignal)
	}
}

func TestLocalNeverDegrades(t *testing.T) {
	l := NewLocal()

	got := l.Analyze(context.Background(), sampleBars(3))
	if got.Degraded {
		t.Fatal("local provider cannot degrade")
	}
	if got.Report.OverallSignal != models.SignalNA {
		t.Fatalf("short series must be N/A, got %q", got.Report.OverallSignal)
	}

	got = l.Analyze(context.Background(), sampleBars(60))
	if got.Report.OverallSignal == models.SignalNA {
		t.Fatal("full series must be scored")
	}
}
