package strategy

import (
	talib "github.com/markcheno/go-talib"
)

// Strategy is one technical indicator voting on the latest row.
// Compute fills the frame with the columns listed by Columns; Evaluate
// reads them at a single row and returns a bounded vote in {-1, 0, +1}.
// Warmup is the first row index at which the columns are meaningful;
// earlier rows carry zero padding from the underlying indicator math.
type Strategy interface {
	Name() string
	Columns() []string
	Warmup() int
	Compute(f *Frame)
	Evaluate(f *Frame, i int) int
}

// --- RSI ---

type rsiStrategy struct{}

func (rsiStrategy) Name() string      { return "RSI" }
func (rsiStrategy) Columns() []string { return []string{"rsi"} }
func (rsiStrategy) Warmup() int       { return 14 }

func (rsiStrategy) Compute(f *Frame) {
	f.SetColumn("rsi", talib.Rsi(f.Close(), 14))
}

func (rsiStrategy) Evaluate(f *Frame, i int) int {
	rsi, _ := f.Value("rsi", i)
	switch {
	case rsi < 30:
		return 1
	case rsi > 70:
		return -1
	default:
		return 0
	}
}

// --- MACD ---

type macdStrategy struct{}

func (macdStrategy) Name() string      { return "MACD" }
func (macdStrategy) Columns() []string { return []string{"macd", "macd_signal"} }
func (macdStrategy) Warmup() int       { return 34 }

func (macdStrategy) Compute(f *Frame) {
	macd, signal, _ := talib.Macd(f.Close(), 12, 26, 9)
	f.SetColumn("macd", macd)
	f.SetColumn("macd_signal", signal)
}

func (macdStrategy) Evaluate(f *Frame, i int) int {
	macd, _ := f.Value("macd", i)
	signal, _ := f.Value("macd_signal", i)
	if macd > signal {
		return 1
	}
	return -1
}

// --- Stochastic oscillator ---

type stochStrategy struct{}

func (stochStrategy) Name() string      { return "Stochastic" }
func (stochStrategy) Columns() []string { return []string{"stoch_k", "stoch_d"} }
func (stochStrategy) Warmup() int       { return 18 }

func (stochStrategy) Compute(f *Frame) {
	k, d := talib.Stoch(f.High(), f.Low(), f.Close(), 14, 3, talib.SMA, 3, talib.SMA)
	f.SetColumn("stoch_k", k)
	f.SetColumn("stoch_d", d)
}

func (stochStrategy) Evaluate(f *Frame, i int) int {
	k, _ := f.Value("stoch_k", i)
	switch {
	case k < 20:
		return 1
	case k > 80:
		return -1
	default:
		return 0
	}
}

// --- ADX trend filter ---

type adxStrategy struct{}

func (adxStrategy) Name() string      { return "ADX" }
func (adxStrategy) Columns() []string { return []string{"adx", "ema20"} }
func (adxStrategy) Warmup() int       { return 28 }

func (adxStrategy) Compute(f *Frame) {
	f.SetColumn("adx", talib.Adx(f.High(), f.Low(), f.Close(), 14))
	if _, ok := f.Column("ema20"); !ok {
		f.SetColumn("ema20", talib.Ema(f.Close(), 20))
	}
}

// A strong trend (ADX above 25) votes with price direction relative to
// EMA20; a weak trend abstains.
func (adxStrategy) Evaluate(f *Frame, i int) int {
	adx, _ := f.Value("adx", i)
	if adx <= 25 {
		return 0
	}
	ema, _ := f.Value("ema20", i)
	if f.Bars[i].Close > ema {
		return 1
	}
	return -1
}

// --- CCI ---

type cciStrategy struct{}

func (cciStrategy) Name() string      { return "CCI" }
func (cciStrategy) Columns() []string { return []string{"cci"} }
func (cciStrategy) Warmup() int       { return 20 }

func (cciStrategy) Compute(f *Frame) {
	f.SetColumn("cci", talib.Cci(f.High(), f.Low(), f.Close(), 20))
}

func (cciStrategy) Evaluate(f *Frame, i int) int {
	cci, _ := f.Value("cci", i)
	switch {
	case cci < -100:
		return 1
	case cci > 100:
		return -1
	default:
		return 0
	}
}

// --- Bollinger bands ---

type bollingerStrategy struct{}

func (bollingerStrategy) Name() string      { return "Bollinger" }
func (bollingerStrategy) Columns() []string { return []string{"bb_upper", "bb_middle", "bb_lower"} }
func (bollingerStrategy) Warmup() int       { return 20 }

func (bollingerStrategy) Compute(f *Frame) {
	upper, middle, lower := talib.BBands(f.Close(), 20, 2, 2, talib.SMA)
	f.SetColumn("bb_upper", upper)
	f.SetColumn("bb_middle", middle)
	f.SetColumn("bb_lower", lower)
}

func (bollingerStrategy) Evaluate(f *Frame, i int) int {
	upper, _ := f.Value("bb_upper", i)
	lower, _ := f.Value("bb_lower", i)
	close := f.Bars[i].Close
	switch {
	case close < lower:
		return 1
	case close > upper:
		return -1
	default:
		return 0
	}
}

// --- Volume confirmation ---

type volumeStrategy struct{}

func (volumeStrategy) Name() string      { return "Volume" }
func (volumeStrategy) Columns() []string { return []string{"vol_sma20"} }
func (volumeStrategy) Warmup() int       { return 20 }

func (volumeStrategy) Compute(f *Frame) {
	f.SetColumn("vol_sma20", talib.Sma(f.Volume(), 20))
}

// Above-average volume confirms; it never votes against.
func (volumeStrategy) Evaluate(f *Frame, i int) int {
	avg, _ := f.Value("vol_sma20", i)
	if f.Bars[i].Volume > avg {
		return 1
	}
	return 0
}

// --- Moving average crosses ---

type maStrategy struct {
	name string
	col  string
	calc func([]float64, int) []float64
}

func (s maStrategy) Name() string      { return s.name }
func (s maStrategy) Columns() []string { return []string{s.col} }
func (maStrategy) Warmup() int         { return 20 }

func (s maStrategy) Compute(f *Frame) {
	if _, ok := f.Column(s.col); !ok {
		f.SetColumn(s.col, s.calc(f.Close(), 20))
	}
}

func (s maStrategy) Evaluate(f *Frame, i int) int {
	ma, _ := f.Value(s.col, i)
	if f.Bars[i].Close > ma {
		return 1
	}
	return -1
}

// All registered strategies in reporting order. The order is part of the
// response contract and must stay stable.
func All() []Strategy {
	return []Strategy{
		rsiStrategy{},
		macdStrategy{},
		stochStrategy{},
		adxStrategy{},
		cciStrategy{},
		bollingerStrategy{},
		volumeStrategy{},
		maStrategy{name: "SMA", col: "sma20", calc: talib.Sma},
		maStrategy{name: "EMA", col: "ema20", calc: talib.Ema},
		maStrategy{name: "WMA", col: "wma20", calc: talib.Wma},
	}
}
