package resample

import (
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/pkg/util"
)

// Resample aggregates a daily series into the requested timeframe.
// Weekly periods start on ISO Monday, monthly periods on the first of the
// month. A period's bar takes the first open, max high, min low, last
// close, and summed volume, dated at the period start. Periods with no
// daily bars are absent from the output.
func Resample(bars []models.Bar, tf domrepo.Timeframe) []models.Bar {
	if tf == domrepo.TFDaily || len(bars) == 0 {
		return bars
	}

	periodStart := util.WeekStart
	if tf == domrepo.TFMonthly {
		periodStart = util.MonthStart
	}

	out := make([]models.Bar, 0, len(bars)/5+1)
	var cur models.Bar
	var curStart time.Time
	open := false

	for _, b := range bars {
		start := periodStart(b.Date)
		if !open || !start.Equal(curStart) {
			if open {
				out = append(out, cur)
			}
			cur = b
			cur.Date = start
			curStart = start
			open = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	if open {
		out = append(out, cur)
	}
	return out
}
