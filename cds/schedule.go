package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/cds/config"
	"github.com/meenmo/credlib/cds/market"
	"github.com/meenmo/credlib/utils"
)

// curveTimeDayCount is the time basis for the valuation time axis.
// The ISDA model measures all curve offsets on ACT/365 from the valuation date.
const curveTimeDayCount = "ACT/365"

// AdjustedEffectiveDate returns the business-day adjusted protection start date.
func AdjustedEffectiveDate(c Contract) time.Time {
	return calendar.Adjust(c.Calendar, c.EffectiveDate, c.BusinessDayAdjustment)
}

// AdjustedMaturityDate returns the business-day adjusted scheduled termination date.
func AdjustedMaturityDate(c Contract) time.Time {
	return calendar.Adjust(c.Calendar, c.MaturityDate, c.BusinessDayAdjustment)
}

// PremiumLegSchedule builds the accrual period boundary dates for the premium leg.
//
// Dates are generated backward from maturity at the coupon frequency, so any
// stub sits at the front. With StubShortFront the partial first period is
// kept; with StubLongFront it is merged into the following regular period.
// Every date is business-day adjusted per the contract convention. The result
// is strictly increasing, starts at the adjusted effective date, ends at the
// adjusted maturity date, and has at least two elements.
func PremiumLegSchedule(c Contract) ([]time.Time, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("PremiumLegSchedule: %w", err)
	}

	months := int(c.CouponFrequency)

	// Roll backward from maturity until we reach or pass the effective date.
	var unadjusted []time.Time
	current := c.MaturityDate
	for current.After(c.EffectiveDate) {
		unadjusted = append([]time.Time{current}, unadjusted...)
		current = utils.AddMonth(current, -months)
	}
	if len(unadjusted) == 0 {
		return nil, fmt.Errorf("PremiumLegSchedule: %w: maturity %s does not follow effective %s",
			ErrInvalidArgument, c.MaturityDate.Format("2006-01-02"), c.EffectiveDate.Format("2006-01-02"))
	}

	if !unadjusted[0].Equal(c.EffectiveDate) {
		// A front stub exists. Long stub merges it into the next regular period.
		if c.StubType == market.StubLongFront && len(unadjusted) > 1 {
			unadjusted = unadjusted[1:]
		}
		if cutoff := config.GetConfig().ShortStubCutoffDays; cutoff > 0 && len(unadjusted) > 1 {
			if d := utils.Days(c.EffectiveDate, unadjusted[0]); d > 0 && d <= float64(cutoff) {
				unadjusted = unadjusted[1:]
			}
		}
		unadjusted = append([]time.Time{c.EffectiveDate}, unadjusted...)
	}

	dates := make([]time.Time, 0, len(unadjusted))
	for _, d := range unadjusted {
		adj := calendar.Adjust(c.Calendar, d, c.BusinessDayAdjustment)
		// Adjacent dates can collide after adjustment around long holiday runs.
		if n := len(dates); n > 0 && !adj.After(dates[n-1]) {
			continue
		}
		dates = append(dates, adj)
	}
	if len(dates) < 2 {
		return nil, fmt.Errorf("PremiumLegSchedule: %w: schedule collapsed to %d date(s)", ErrInvalidArgument, len(dates))
	}
	return dates, nil
}

// StepinTime is the year offset of the stepin date (valuation + 1 calendar
// day) on the valuation time axis. Protection sellers are not on risk before
// this time, so it bounds the accrual-on-default integral from below.
func StepinTime(c Contract) float64 {
	return utils.YearFraction(c.ValuationDate, c.ValuationDate.AddDate(0, 0, 1), curveTimeDayCount)
}

// OffsetStepinTime is the stepin time shifted by the protection offset when
// protection starts at the beginning of each period.
func OffsetStepinTime(c Contract) float64 {
	t := StepinTime(c)
	if c.ProtectionStart {
		t -= config.GetConfig().ProtectionOffset
	}
	return t
}

// protectionEndTime is the year offset of the end of the protection period.
func protectionEndTime(c Contract) float64 {
	end := AdjustedMaturityDate(c)
	if c.ProtectionStart {
		end = end.AddDate(0, 0, 1)
	}
	return utils.YearFraction(c.ValuationDate, end, curveTimeDayCount)
}

// ContingentLegIntegrationSchedule builds the integration nodes for the
// contingent leg: the union of both curves' native pillar times falling inside
// the protection period, plus the period endpoints.
func ContingentLegIntegrationSchedule(c Contract, disc DiscountCurve, surv SurvivalCurve) ([]float64, error) {
	start := StepinTime(c)
	if c.ProtectionStart {
		start -= config.GetConfig().ProtectionOffset
	}
	if start < 0 {
		start = 0
	}
	return integrationNodes(c, disc, surv, start, protectionEndTime(c), nil)
}

// AccrualIntegrationSchedule builds the integration nodes for the
// accrual-on-default component: curve pillars merged with the coupon period
// boundary times. The schedule covers the full protection period; sub-intervals
// before the stepin time are skipped during valuation, not truncated here.
func AccrualIntegrationSchedule(c Contract, disc DiscountCurve, surv SurvivalCurve) ([]float64, error) {
	schedule, err := PremiumLegSchedule(c)
	if err != nil {
		return nil, fmt.Errorf("AccrualIntegrationSchedule: %w", err)
	}

	couponTimes := make([]float64, 0, len(schedule))
	for _, d := range schedule {
		t := utils.YearFraction(c.ValuationDate, d, curveTimeDayCount)
		if t >= 0 {
			couponTimes = append(couponTimes, t)
		}
	}

	start := 0.0
	return integrationNodes(c, disc, surv, start, protectionEndTime(c), couponTimes)
}

// integrationNodes merges curve pillars and optional extra times into a
// strictly increasing node array spanning [start, end].
func integrationNodes(c Contract, disc DiscountCurve, surv SurvivalCurve, start, end float64, extra []float64) ([]float64, error) {
	if disc == nil {
		return nil, fmt.Errorf("integration schedule: %w: discount curve", ErrNilCurve)
	}
	if surv == nil {
		return nil, fmt.Errorf("integration schedule: %w: survival curve", ErrNilCurve)
	}
	if start < 0 {
		return nil, fmt.Errorf("integration schedule: %w: start %f is negative", ErrCurveDomain, start)
	}
	if end < start {
		return nil, fmt.Errorf("integration schedule: %w: valuation date past protection end", ErrValuationAfterMaturity)
	}

	inRange := func(nodes []float64) []float64 {
		out := make([]float64, 0, len(nodes))
		for _, t := range nodes {
			if t > start && t < end {
				out = append(out, t)
			}
		}
		return out
	}

	tol := config.GetConfig().NodeMergeTolerance
	merged := utils.MergeSortedUnique(tol,
		[]float64{start, end},
		inRange(disc.Nodes()),
		inRange(surv.Nodes()),
		inRange(extra),
	)

	for _, t := range merged {
		if t < 0 {
			return nil, fmt.Errorf("integration schedule: %w: node %f is negative", ErrCurveDomain, t)
		}
	}
	return merged, nil
}
