package calendar

import (
	"fmt"
	"time"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// WeekendsOnly treats every weekday as a business day.
	WeekendsOnly CalendarID = "WEEKENDS"
	TARGET       CalendarID = "TARGET"
	USD          CalendarID = "USD"
	GBP          CalendarID = "GBP"
	JPN          CalendarID = "JPN"
)

// Convention selects the business-day adjustment rule applied to rolled dates.
type Convention string

const (
	Unadjusted        Convention = "UNADJUSTED"
	Following         Convention = "FOLLOWING"
	ModifiedFollowing Convention = "MODIFIED_FOLLOWING"
	Preceding         Convention = "PRECEDING"
)

var targetHolidays = map[string]struct{}{}
var usdHolidays = map[string]struct{}{}
var gbpHolidays = map[string]struct{}{}
var jpnHolidays = map[string]struct{}{}

// RegisterHolidays adds holiday dates (YYYY-MM-DD) to a calendar.
// The built-in sets are empty; callers load exchange or ISDA holiday
// files at startup when weekend-only adjustment is not enough.
// WeekendsOnly and unknown calendars carry no holiday set, so registering
// against them is an error rather than a silent drop.
func RegisterHolidays(cal CalendarID, dates []string) error {
	m := holidaySet(cal)
	if m == nil {
		return fmt.Errorf("RegisterHolidays: calendar %q has no holiday set", cal)
	}
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("RegisterHolidays: %w", err)
		}
		m[d] = struct{}{}
	}
	return nil
}

func holidaySet(cal CalendarID) map[string]struct{} {
	switch cal {
	case TARGET:
		return targetHolidays
	case USD:
		return usdHolidays
	case GBP:
		return gbpHolidays
	case JPN:
		return jpnHolidays
	default:
		return nil
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	m := holidaySet(cal)
	if m == nil {
		return false
	}
	_, ok := m[t.Format("2006-01-02")]
	return ok
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t to a business day under the given convention.
func Adjust(cal CalendarID, t time.Time, conv Convention) time.Time {
	switch conv {
	case Unadjusted:
		return t
	case Following:
		return AdjustFollowing(cal, t)
	case Preceding:
		return AdjustPreceding(cal, t)
	default:
		return AdjustModifiedFollowing(cal, t)
	}
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustPreceding rolls backward to the prior business day.
func AdjustPreceding(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AdjustModifiedFollowing applies Modified Following.
func AdjustModifiedFollowing(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}
