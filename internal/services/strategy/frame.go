package strategy

import "CoinPulse/internal/domain/models"

// Frame holds a bar series plus the indicator columns computed over it.
// Columns are full-length float slices aligned with Bars; strategies
// consult Warmup to know where a column's values become meaningful.
type Frame struct {
	Bars []models.Bar

	open   []float64
	high   []float64
	low    []float64
	close  []float64
	volume []float64

	cols map[string][]float64
}

// NewFrame builds a frame over bars and extracts the price columns once.
func NewFrame(bars []models.Bar) *Frame {
	f := &Frame{
		Bars:   bars,
		open:   make([]float64, len(bars)),
		high:   make([]float64, len(bars)),
		low:    make([]float64, len(bars)),
		close:  make([]float64, len(bars)),
		volume: make([]float64, len(bars)),
		cols:   make(map[string][]float64),
	}
	for i, b := range bars {
		f.open[i] = b.Open
		f.high[i] = b.High
		f.low[i] = b.Low
		f.close[i] = b.Close
		f.volume[i] = b.Volume
	}
	return f
}

func (f *Frame) Len() int          { return len(f.Bars) }
func (f *Frame) Open() []float64   { return f.open }
func (f *Frame) High() []float64   { return f.high }
func (f *Frame) Low() []float64    { return f.low }
func (f *Frame) Close() []float64  { return f.close }
func (f *Frame) Volume() []float64 { return f.volume }

// SetColumn stores a computed indicator column.
func (f *Frame) SetColumn(name string, vals []float64) {
	f.cols[name] = vals
}

// Column returns a computed column by name.
func (f *Frame) Column(name string) ([]float64, bool) {
	c, ok := f.cols[name]
	return c, ok
}

// Value returns column name at row i. ok is false when the column is
// missing or i is out of range.
func (f *Frame) Value(name string, i int) (float64, bool) {
	c, ok := f.cols[name]
	if !ok || i < 0 || i >= len(c) {
		return 0, false
	}
	return c[i], true
}
