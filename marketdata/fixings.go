package marketdata

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/credlib/calendar"
)

// ErrMissingFixing is returned when no historical fixing can be found for a
// date after exhausting the fallback chain. It is surfaced to the caller
// rather than defaulted.
var ErrMissingFixing = errors.New("missing fixing")

// FixingHour is the publication hour tried when a date-keyed lookup misses.
const FixingHour = 11

// FixingFeed supplies historical rate fixings keyed by timestamp.
type FixingFeed interface {
	RateOn(ts time.Time) (float64, bool)
}

// MapFixingFeed is a static map-backed implementation for development/testing.
// Keys are "2006-01-02" for date-level fixings or "2006-01-02 15:04" when the
// source publishes at a specific time of day.
type MapFixingFeed struct {
	rates map[string]float64
}

func NewMapFixingFeed(rates map[string]float64) *MapFixingFeed {
	return &MapFixingFeed{rates: rates}
}

func (m *MapFixingFeed) RateOn(ts time.Time) (float64, bool) {
	if val, ok := m.rates[ts.Format("2006-01-02 15:04")]; ok {
		return val, true
	}
	val, ok := m.rates[ts.Format("2006-01-02")]
	return val, ok
}

// RateWithFallback resolves a fixing for the given date, trying in order:
// the exact date, the date at the publication hour, the preceding business
// day, and the preceding business day at the publication hour. When every
// lookup misses it returns ErrMissingFixing.
func RateWithFallback(feed FixingFeed, cal calendar.CalendarID, date time.Time) (float64, error) {
	if feed == nil {
		return 0, fmt.Errorf("RateWithFallback: %w: nil feed", ErrMissingFixing)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	prev := calendar.AddBusinessDays(cal, day, -1)

	candidates := []time.Time{
		day,
		day.Add(FixingHour * time.Hour),
		prev,
		prev.Add(FixingHour * time.Hour),
	}
	for _, ts := range candidates {
		if rate, ok := feed.RateOn(ts); ok {
			return rate, nil
		}
	}
	return 0, fmt.Errorf("RateWithFallback: %w: no fixing on or before %s", ErrMissingFixing, day.Format("2006-01-02"))
}
