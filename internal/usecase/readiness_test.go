package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"CoinPulse/pkg/logger"
)

func TestProbeReportsTargetHealth(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	p := NewReadinessProber([]ProbeTarget{
		{Name: "sentiment", URL: up.URL + "/health"},
		{Name: "technical", URL: down.URL + "/health"},
	}, time.Second, logger.Nop())

	got := p.Probe(context.Background())
	if !got["sentiment"] || got["technical"] {
		t.Fatalf("statuses = %v", got)
	}
	if p.Ready(context.Background()) {
		t.Fatal("not all targets healthy")
	}
}

func TestProbeRespectsMinimumInterval(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewReadinessProber([]ProbeTarget{{Name: "svc", URL: srv.URL}}, time.Second, logger.Nop())

	clock := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return clock }

	p.Probe(context.Background())
	p.Probe(context.Background())
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("second probe within interval must use cache, calls = %d", calls)
	}

	clock = clock.Add(DefaultProbeInterval)
	p.Probe(context.Background())
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("probe after interval must refresh, calls = %d", calls)
	}
}

func TestProbeCachedStatusSurvivesInterval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewReadinessProber([]ProbeTarget{{Name: "svc", URL: srv.URL}}, time.Second, logger.Nop())
	clock := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return clock }

	if !p.Ready(context.Background()) {
		t.Fatal("expected ready after first probe")
	}
	srv.Close()
	// The endpoint is gone but the cached status holds until re-probe.
	if !p.Ready(context.Background()) {
		t.Fatal("cached status must be served inside the interval")
	}
}

func TestReadyWithNoHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewReadinessProber(nil, time.Second, logger.Nop())
	if !p.Ready(context.Background()) {
		t.Fatal("prober with no targets is trivially ready")
	}
}
