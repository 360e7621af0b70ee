package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"CoinPulse/pkg/logger"
)

func newClient(url string) *Client {
	return New(url, 2*time.Second, 0, time.Millisecond, nil, logger.Nop())
}

func TestFetchLiveReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sentiment/BTC-USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"news": [{"title":"BTC rallies","source":"CoinDesk","label":"Positive","color":"text-success"}],
			"score": 0.42,
			"prediction": "Bullish (Growth)",
			"prediction_color": "success"
		}`))
	}))
	defer srv.Close()

	got := newClient(srv.URL).Fetch(context.Background(), "BTC-USD")
	if got.Degraded {
		t.Fatal("unexpected degradation")
	}
	if got.Report.Score != 0.42 || len(got.Report.News) != 1 {
		t.Fatalf("report = %+v", got.Report)
	}
}

func TestFetchFailureServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	got := newClient(srv.URL).Fetch(context.Background(), "ETH-USD")
	if !got.Degraded {
		t.Fatal("expected degradation")
	}
	if got.Report.Score != 0.12 || got.Report.Prediction != "Bullish (Steady)" {
		t.Fatalf("fallback = %+v", got.Report)
	}
	if len(got.Report.News) != 4 {
		t.Fatalf("fallback article count = %d", len(got.Report.News))
	}
	if got.Report.News[0].Title != "Market outlook for ETH remains cautiously optimistic" {
		t.Fatalf("fallback title = %q", got.Report.News[0].Title)
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	a := FallbackReport("SOL")
	b := FallbackReport("SOL")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("fallback must be identical across calls")
	}
}

func TestCoinOf(t *testing.T) {
	tests := []struct{ in, want string }{
		{"BTC-USD", "BTC"},
		{"DOGE-USD", "DOGE"},
		{"BTC", "BTC"},
	}
	for _, tt := range tests {
		if got := CoinOf(tt.in); got != tt.want {
			t.Errorf("CoinOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
