package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func bar(date string, close float64) models.Bar {
	return models.Bar{Date: day(date), Open: close - 1, High: close + 1, Low: close - 2, Close: close, Volume: 100}
}

func TestLoadMissingSymbol(t *testing.T) {
	store, err := NewFileSeriesStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(context.Background(), "BTC-USD"); err != domrepo.ErrNoSeries {
		t.Fatalf("expected ErrNoSeries, got %v", err)
	}
}

func TestLoadEmptySeriesFile(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileSeriesStore(dir)
	ctx := context.Background()

	// A truncated download can leave an empty array on disk; that is no
	// series, not a zero-length one.
	if err := os.WriteFile(filepath.Join(dir, "BTC-USD.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(ctx, "BTC-USD"); err != domrepo.ErrNoSeries {
		t.Fatalf("expected ErrNoSeries, got %v", err)
	}
	if _, ok, err := store.LastDate(ctx, "BTC-USD"); err != nil || ok {
		t.Fatalf("expected no last date, got ok=%v err=%v", ok, err)
	}

	// The next ingest run repairs the file.
	added, err := store.Append(ctx, "BTC-USD", []models.Bar{bar("2024-01-01", 100)})
	if err != nil || added != 1 {
		t.Fatalf("append over empty file: added=%d err=%v", added, err)
	}
	bars, err := store.Load(ctx, "BTC-USD")
	if err != nil || len(bars) != 1 {
		t.Fatalf("reload after repair: bars=%v err=%v", bars, err)
	}
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	store, _ := NewFileSeriesStore(t.TempDir())
	ctx := context.Background()

	added, err := store.Append(ctx, "BTC-USD", []models.Bar{bar("2024-01-01", 100), bar("2024-01-02", 101)})
	if err != nil {
		t.Fatal(err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}

	bars, err := store.Load(ctx, "BTC-USD")
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Date.Equal(day("2024-01-01")) || bars[1].Close != 101 {
		t.Fatalf("unexpected bars %+v", bars)
	}
}

func TestAppendDeduplicatesByDate(t *testing.T) {
	store, _ := NewFileSeriesStore(t.TempDir())
	ctx := context.Background()

	if _, err := store.Append(ctx, "ETH-USD", []models.Bar{bar("2024-01-01", 100)}); err != nil {
		t.Fatal(err)
	}
	// Overlapping refetch: the stored bar must win, the new day must land.
	added, err := store.Append(ctx, "ETH-USD", []models.Bar{bar("2024-01-01", 999), bar("2024-01-02", 101)})
	if err != nil {
		t.Fatal(err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}

	bars, _ := store.Load(ctx, "ETH-USD")
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 100 {
		t.Fatalf("stored bar should win on duplicate date, got close %v", bars[0].Close)
	}
}

func TestAppendKeepsAscendingOrder(t *testing.T) {
	store, _ := NewFileSeriesStore(t.TempDir())
	ctx := context.Background()

	_, _ = store.Append(ctx, "SOL-USD", []models.Bar{bar("2024-01-03", 3)})
	_, _ = store.Append(ctx, "SOL-USD", []models.Bar{bar("2024-01-01", 1), bar("2024-01-02", 2)})

	bars, _ := store.Load(ctx, "SOL-USD")
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			t.Fatalf("dates not strictly ascending: %v", bars)
		}
	}
}

func TestLastDate(t *testing.T) {
	store, _ := NewFileSeriesStore(t.TempDir())
	ctx := context.Background()

	if _, ok, err := store.LastDate(ctx, "BTC-USD"); err != nil || ok {
		t.Fatalf("expected no last date, got ok=%v err=%v", ok, err)
	}

	_, _ = store.Append(ctx, "BTC-USD", []models.Bar{bar("2024-01-01", 100), bar("2024-01-05", 105)})
	last, ok, err := store.LastDate(ctx, "BTC-USD")
	if err != nil || !ok {
		t.Fatalf("expected last date, got ok=%v err=%v", ok, err)
	}
	if !last.Equal(day("2024-01-05")) {
		t.Fatalf("unexpected last date %v", last)
	}
}

func TestSymbols(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileSeriesStore(dir)
	ctx := context.Background()

	_, _ = store.Append(ctx, "ETH-USD", []models.Bar{bar("2024-01-01", 1)})
	_, _ = store.Append(ctx, "BTC-USD", []models.Bar{bar("2024-01-01", 1)})
	// non-series files are ignored
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	symbols, err := store.Symbols(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(symbols, ",") != "BTC-USD,ETH-USD" {
		t.Fatalf("unexpected symbols %v", symbols)
	}
}

func TestPersistedFormat(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileSeriesStore(dir)
	_, _ = store.Append(context.Background(), "BTC-USD", []models.Bar{bar("2024-01-01", 100)})

	raw, err := os.ReadFile(filepath.Join(dir, "BTC-USD.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"Date": "2024-01-01"`, `"Open"`, `"High"`, `"Low"`, `"Close"`, `"Volume"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("persisted file missing %s:\n%s", want, raw)
		}
	}
}
