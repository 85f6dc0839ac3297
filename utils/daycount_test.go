package utils_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/credlib/utils"
)

func TestYearFraction(t *testing.T) {
	t.Parallel()

	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		start, end time.Time
		convention string
		want       float64
	}{
		{"act360 full year", d(2025, 1, 1), d(2026, 1, 1), "ACT/360", 365.0 / 360.0},
		{"act365 full year", d(2025, 1, 1), d(2026, 1, 1), "ACT/365", 1.0},
		{"act365 one day", d(2025, 6, 20), d(2025, 6, 21), "ACT/365", 1.0 / 365.0},
		{"act365f leap year", d(2024, 1, 1), d(2025, 1, 1), "ACT/365F", 366.0 / 365.0},
		{"30/360 half year month ends", d(2025, 1, 31), d(2025, 7, 31), "30/360", 0.5},
		{"30E/360 feb is not capped", d(2025, 2, 28), d(2025, 3, 30), "30E/360", 32.0 / 360.0},
		{"quarter act360", d(2025, 6, 20), d(2025, 9, 22), "ACT/360", 94.0 / 360.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := utils.YearFraction(tc.start, tc.end, tc.convention)
			if math.Abs(got-tc.want) > 1e-15 {
				t.Fatalf("YearFraction(%s, %s, %s) = %.12f, want %.12f",
					tc.start.Format("2006-01-02"), tc.end.Format("2006-01-02"), tc.convention, got, tc.want)
			}
		})
	}
}
