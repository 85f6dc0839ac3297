package marketdata_test

import (
	"errors"
	"testing"
	"time"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/marketdata"
)

func TestRateWithFallback_ExactDate(t *testing.T) {
	t.Parallel()

	feed := marketdata.NewMapFixingFeed(map[string]float64{
		"2025-08-20": 4.20,
	})

	rate, err := marketdata.RateWithFallback(feed, calendar.WeekendsOnly, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RateWithFallback error: %v", err)
	}
	if rate != 4.20 {
		t.Fatalf("rate = %f, want 4.20", rate)
	}
}

func TestRateWithFallback_PublicationHour(t *testing.T) {
	t.Parallel()

	feed := marketdata.NewMapFixingFeed(map[string]float64{
		"2025-08-21 11:00": 4.50,
	})

	rate, err := marketdata.RateWithFallback(feed, calendar.WeekendsOnly, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RateWithFallback error: %v", err)
	}
	if rate != 4.50 {
		t.Fatalf("rate = %f, want 4.50", rate)
	}
}

func TestRateWithFallback_PrecedingBusinessDay(t *testing.T) {
	t.Parallel()

	feed := marketdata.NewMapFixingFeed(map[string]float64{
		"2025-08-22": 4.10,
	})

	// Monday with no fixing falls back over the weekend to Friday.
	rate, err := marketdata.RateWithFallback(feed, calendar.WeekendsOnly, time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RateWithFallback error: %v", err)
	}
	if rate != 4.10 {
		t.Fatalf("rate = %f, want 4.10", rate)
	}
}

func TestRateWithFallback_Missing(t *testing.T) {
	t.Parallel()

	feed := marketdata.NewMapFixingFeed(map[string]float64{
		"2025-01-02": 4.00,
	})

	_, err := marketdata.RateWithFallback(feed, calendar.WeekendsOnly, time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, marketdata.ErrMissingFixing) {
		t.Fatalf("expected ErrMissingFixing, got %v", err)
	}

	if _, err := marketdata.RateWithFallback(nil, calendar.WeekendsOnly, time.Now()); !errors.Is(err, marketdata.ErrMissingFixing) {
		t.Fatalf("expected ErrMissingFixing for nil feed, got %v", err)
	}
}
