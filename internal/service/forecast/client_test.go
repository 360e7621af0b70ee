package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPredict(t *testing.T) {
	var gotPath, gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("date")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predicted_price":  71250.5,
			"last_known_price": 68000.0,
			"target_date":      "2024-06-22",
			"direction":        "UP",
			"days_ahead":       7,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	target := time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC)
	f, err := c.Predict(context.Background(), "BTC-USD", target)
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/predict/BTC-USD" {
		t.Errorf("path = %q", gotPath)
	}
	if gotDate != "2024-06-22" {
		t.Errorf("date param = %q", gotDate)
	}
	if f.PredictedPrice != 71250.5 || f.Direction != "UP" || f.DaysAhead != 7 {
		t.Fatalf("forecast = %+v", f)
	}
}

func TestPredictErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Predict(context.Background(), "ETH-USD", time.Now())
	if err == nil {
		t.Fatal("want error from unavailable service")
	}
}
