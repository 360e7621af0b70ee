package util

import (
	"testing"
	"time"
)

func TestParseDayCanonical(t *testing.T) {
	got, ok := ParseDay("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Format(DayFormat) != "2024-10-10" {
		t.Fatalf("unexpected day %v", got)
	}
}

func TestParseDayWithTime(t *testing.T) {
	got, ok := ParseDay("2024-10-10 15:30:00")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 15 {
		t.Fatalf("unexpected hour %d", got.Hour())
	}
}

func TestParseDayEmpty(t *testing.T) {
	if _, ok := ParseDay(""); ok {
		t.Fatalf("expected not ok")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-10-07", "2024-10-07"}, // Monday maps to itself
		{"2024-10-10", "2024-10-07"}, // Thursday
		{"2024-10-13", "2024-10-07"}, // Sunday closes the week
		{"2024-10-14", "2024-10-14"}, // next Monday
	}
	for _, tt := range tests {
		in, _ := ParseDay(tt.in)
		if got := WeekStart(in).Format(DayFormat); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2024, 2, 29, 13, 0, 0, 0, time.UTC)
	if got := MonthStart(in).Format(DayFormat); got != "2024-02-01" {
		t.Fatalf("unexpected month start %s", got)
	}
}
