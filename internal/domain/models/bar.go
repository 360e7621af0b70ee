package models

import (
	"encoding/json"
	"fmt"
	"time"

	"CoinPulse/pkg/util"
)

// Bar is one OHLCV observation for one symbol over one time period.
// Within a stored series dates are strictly increasing and unique.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// barJSON is the persisted and wire representation of a bar. Field names
// and the date layout are fixed by the series file format.
type barJSON struct {
	Date   string  `json:"Date"`
	Open   float64 `json:"Open"`
	High   float64 `json:"High"`
	Low    float64 `json:"Low"`
	Close  float64 `json:"Close"`
	Volume float64 `json:"Volume"`
}

func (b Bar) MarshalJSON() ([]byte, error) {
	return json.Marshal(barJSON{
		Date:   b.Date.Format(util.DayFormat),
		Open:   b.Open,
		High:   b.High,
		Low:    b.Low,
		Close:  b.Close,
		Volume: b.Volume,
	})
}

func (b *Bar) UnmarshalJSON(data []byte) error {
	var raw barJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d, ok := util.ParseDay(raw.Date)
	if !ok {
		return fmt.Errorf("invalid bar date %q", raw.Date)
	}
	b.Date = util.Day(d)
	b.Open = raw.Open
	b.High = raw.High
	b.Low = raw.Low
	b.Close = raw.Close
	b.Volume = raw.Volume
	return nil
}

// ChangePct returns the open-to-close change in percent, 0 when open is 0.
func (b Bar) ChangePct() float64 {
	if b.Open == 0 {
		return 0
	}
	return (b.Close - b.Open) / b.Open * 100
}
