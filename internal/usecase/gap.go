package usecase

import (
	"time"

	"CoinPulse/pkg/util"
)

// GapPlanner computes the missing date range to backfill for a symbol.
// It is a pure function of today's date and the last stored date, which
// makes the whole pipeline idempotent and resumable.
type GapPlanner struct {
	LookbackYears int
}

// Plan returns the first missing day for a symbol. ok is false when the
// series is fully caught up and the symbol can be skipped.
func (g GapPlanner) Plan(today time.Time, last time.Time, hasLast bool) (from time.Time, ok bool) {
	today = util.Day(today)

	if !hasLast {
		return today.AddDate(-g.LookbackYears, 0, 0), true
	}

	from = util.Day(last).AddDate(0, 0, 1)
	if !from.Before(today) {
		return time.Time{}, false
	}
	return from, true
}
