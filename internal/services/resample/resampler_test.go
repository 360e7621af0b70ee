package resample

import (
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func mk(date time.Time, o, h, l, c, v float64) models.Bar {
	return models.Bar{Date: date, Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestResampleDailyIsIdentity(t *testing.T) {
	bars := []models.Bar{
		mk(d(2024, 6, 10), 1, 2, 0.5, 1.5, 100),
		mk(d(2024, 6, 11), 1.5, 3, 1, 2, 200),
	}
	got := Resample(bars, domrepo.TFDaily)
	if len(got) != 2 || !got[0].Date.Equal(bars[0].Date) {
		t.Fatalf("daily resample must be identity, got %+v", got)
	}
}

func TestResampleWeekly(t *testing.T) {
	// 2024-06-10 is a Monday. Two full-ish weeks plus a lone Monday.
	bars := []models.Bar{
		mk(d(2024, 6, 10), 10, 15, 9, 12, 100), // week of Jun 10
		mk(d(2024, 6, 11), 12, 18, 11, 17, 150),
		mk(d(2024, 6, 14), 17, 17, 13, 14, 50),
		mk(d(2024, 6, 16), 14, 16, 12, 15, 80), // Sunday, still week of Jun 10
		mk(d(2024, 6, 17), 15, 20, 15, 19, 60), // week of Jun 17
	}

	got := Resample(bars, domrepo.TFWeekly)
	if len(got) != 2 {
		t.Fatalf("expected 2 weekly bars, got %d", len(got))
	}

	w := got[0]
	if !w.Date.Equal(d(2024, 6, 10)) {
		t.Errorf("week dated %v, want Monday Jun 10", w.Date)
	}
	if w.Open != 10 || w.High != 18 || w.Low != 9 || w.Close != 15 || w.Volume != 380 {
		t.Errorf("week bar = %+v", w)
	}
	if !got[1].Date.Equal(d(2024, 6, 17)) || got[1].Close != 19 {
		t.Errorf("second week = %+v", got[1])
	}
}

func TestResampleWeeklySkipsEmptyPeriods(t *testing.T) {
	bars := []models.Bar{
		mk(d(2024, 6, 10), 1, 1, 1, 1, 1),
		mk(d(2024, 7, 1), 2, 2, 2, 2, 2), // three weeks later
	}
	got := Resample(bars, domrepo.TFWeekly)
	if len(got) != 2 {
		t.Fatalf("empty weeks must be dropped, got %d bars", len(got))
	}
}

func TestResampleMonthly(t *testing.T) {
	bars := []models.Bar{
		mk(d(2024, 5, 30), 100, 110, 95, 105, 10),
		mk(d(2024, 5, 31), 105, 120, 100, 118, 20),
		mk(d(2024, 6, 3), 118, 125, 117, 121, 5),
	}

	got := Resample(bars, domrepo.TFMonthly)
	if len(got) != 2 {
		t.Fatalf("expected 2 monthly bars, got %d", len(got))
	}

	may := got[0]
	if !may.Date.Equal(d(2024, 5, 1)) {
		t.Errorf("may dated %v", may.Date)
	}
	if may.Open != 100 || may.High != 120 || may.Low != 95 || may.Close != 118 || may.Volume != 30 {
		t.Errorf("may bar = %+v", may)
	}
	if !got[1].Date.Equal(d(2024, 6, 1)) {
		t.Errorf("june dated %v", got[1].Date)
	}
}

func TestResampleEmptyInput(t *testing.T) {
	if got := Resample(nil, domrepo.TFWeekly); len(got) != 0 {
		t.Fatalf("expected empty output, got %+v", got)
	}
}
