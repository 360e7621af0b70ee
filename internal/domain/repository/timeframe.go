package repository

// Timeframe is the aggregation period of bars.
type Timeframe string

const (
	TFDaily   Timeframe = "1d"
	TFWeekly  Timeframe = "1w"
	TFMonthly Timeframe = "1mo"
)

// Timeframes lists supported timeframes in reporting order.
func Timeframes() []Timeframe {
	return []Timeframe{TFDaily, TFWeekly, TFMonthly}
}

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TFDaily, TFWeekly, TFMonthly:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TFDaily }

// NormalizeTimeframe converts a raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return DefaultTimeframe()
}
