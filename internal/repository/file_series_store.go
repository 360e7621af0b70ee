package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
)

// FileSeriesStore persists one JSON array file per symbol under a data
// directory. Writes read the full existing set, merge, and write the full
// set back; per-symbol locks serialize writers against readers.
type FileSeriesStore struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewFileSeriesStore creates the store, creating dir if needed.
func NewFileSeriesStore(dir string) (*FileSeriesStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileSeriesStore{
		dir:   dir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

func (s *FileSeriesStore) lock(symbol string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[symbol]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[symbol] = l
	}
	return l
}

func (s *FileSeriesStore) path(symbol string) string {
	return filepath.Join(s.dir, symbol+".json")
}

func (s *FileSeriesStore) Load(_ context.Context, symbol string) ([]models.Bar, error) {
	l := s.lock(symbol)
	l.RLock()
	defer l.RUnlock()
	return s.read(symbol)
}

func (s *FileSeriesStore) read(symbol string) ([]models.Bar, error) {
	b, err := os.ReadFile(s.path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domrepo.ErrNoSeries
		}
		return nil, fmt.Errorf("read series %s: %w", symbol, err)
	}

	var bars []models.Bar
	if err := json.Unmarshal(b, &bars); err != nil {
		return nil, fmt.Errorf("parse series %s: %w", symbol, err)
	}
	// A present-but-empty file holds no series; readers index the last bar.
	if len(bars) == 0 {
		return nil, domrepo.ErrNoSeries
	}
	return bars, nil
}

func (s *FileSeriesStore) Append(_ context.Context, symbol string, bars []models.Bar) (int, error) {
	if len(bars) == 0 {
		return 0, nil
	}

	l := s.lock(symbol)
	l.Lock()
	defer l.Unlock()

	existing, err := s.read(symbol)
	if err != nil && err != domrepo.ErrNoSeries {
		return 0, err
	}

	// Dedup by date: a bar already stored for a day wins over a refetched
	// one, so a pipeline re-run with an overlapping range stays idempotent.
	seen := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		seen[b.Date.Format("2006-01-02")] = struct{}{}
	}

	merged := existing
	added := 0
	for _, b := range bars {
		key := b.Date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, b)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	out, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("encode series %s: %w", symbol, err)
	}
	if err := os.WriteFile(s.path(symbol), out, 0o644); err != nil {
		return 0, fmt.Errorf("write series %s: %w", symbol, err)
	}
	return added, nil
}

func (s *FileSeriesStore) LastDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	bars, err := s.Load(ctx, symbol)
	if err != nil {
		if err == domrepo.ErrNoSeries {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	if len(bars) == 0 {
		return time.Time{}, false, nil
	}
	return bars[len(bars)-1].Date, true, nil
}

func (s *FileSeriesStore) Symbols(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data dir: %w", err)
	}

	var symbols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(symbols)
	return symbols, nil
}

var _ domrepo.SeriesStore = (*FileSeriesStore)(nil)
