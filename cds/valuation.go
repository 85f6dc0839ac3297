package cds

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/credlib/cds/config"
	"github.com/meenmo/credlib/cds/market"
	"github.com/meenmo/credlib/utils"
)

// PresentValue returns the signed present value of the CDS.
//
// Convention: buying protection pays the premium leg and receives the
// contingent leg, so PV = -(spread/10000) * premiumLeg + contingentLeg.
// Clean prices add accrued interest; selling protection negates the result.
func PresentValue(c Contract, disc DiscountCurve, surv SurvivalCurve) (float64, error) {
	pv, err := PresentValueByLeg(c, disc, surv)
	if err != nil {
		return 0, fmt.Errorf("PresentValue: %w", err)
	}
	return pv.PresentValue, nil
}

// PresentValueByLeg computes each leg of the CDS and the assembled signed PV.
func PresentValueByLeg(c Contract, disc DiscountCurve, surv SurvivalCurve) (LegPV, error) {
	if err := c.Validate(); err != nil {
		return LegPV{}, err
	}
	if disc == nil {
		return LegPV{}, fmt.Errorf("%w: discount curve", ErrNilCurve)
	}
	if surv == nil {
		return LegPV{}, fmt.Errorf("%w: survival curve", ErrNilCurve)
	}

	premium, accrual, err := premiumLeg(c, disc, surv)
	if err != nil {
		return LegPV{}, err
	}
	contingent, err := contingentLeg(c, disc, surv)
	if err != nil {
		return LegPV{}, err
	}

	pv := LegPV{
		PremiumLegPV:     premium,
		AccrualOnDefault: accrual,
		ContingentLegPV:  contingent,
	}

	pv.PresentValue = -(c.SpreadBP/10000.0)*premium + contingent

	if c.PriceType == market.PriceClean {
		ai, err := accruedInterest(c)
		if err != nil {
			return LegPV{}, err
		}
		pv.AccruedInterest = ai
		pv.PresentValue += ai
	}

	pv.PresentValue *= c.signPV()
	return pv, nil
}

// ParSpread returns the coupon (in bp) that prices the contract to zero at
// inception. Only valid when the valuation date is the adjusted effective date.
func ParSpread(c Contract, disc DiscountCurve, surv SurvivalCurve) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("ParSpread: %w", err)
	}
	if disc == nil {
		return 0, fmt.Errorf("ParSpread: %w: discount curve", ErrNilCurve)
	}
	if surv == nil {
		return 0, fmt.Errorf("ParSpread: %w: survival curve", ErrNilCurve)
	}
	if !c.ValuationDate.Equal(AdjustedEffectiveDate(c)) {
		return 0, fmt.Errorf("ParSpread: %w: valuation %s, adjusted effective %s", ErrParSpreadDate,
			c.ValuationDate.Format("2006-01-02"), AdjustedEffectiveDate(c).Format("2006-01-02"))
	}

	// premiumLeg already folds the accrual-on-default component into the
	// leg total, matching the assembly in PresentValueByLeg.
	premium, _, err := premiumLeg(c, disc, surv)
	if err != nil {
		return 0, fmt.Errorf("ParSpread: %w", err)
	}
	contingent, err := contingentLeg(c, disc, surv)
	if err != nil {
		return 0, fmt.Errorf("ParSpread: %w", err)
	}

	if premium == 0 {
		return 0, fmt.Errorf("ParSpread: %w", ErrDegeneratePremiumLeg)
	}
	return 10000.0 * contingent / premium, nil
}

// premiumLeg values the premium annuity per unit spread. It returns the
// combined leg value (coupon annuity plus accrual-on-default, scaled by
// notional) together with the accrual-on-default component alone.
func premiumLeg(c Contract, disc DiscountCurve, surv SurvivalCurve) (leg, accrual float64, err error) {
	schedule, err := PremiumLegSchedule(c)
	if err != nil {
		return 0, 0, err
	}

	adjustedMaturity := schedule[len(schedule)-1]
	if c.ValuationDate.After(adjustedMaturity) {
		return 0, 0, fmt.Errorf("premium leg: %w: valuation %s, adjusted maturity %s",
			ErrValuationAfterMaturity, c.ValuationDate.Format("2006-01-02"), adjustedMaturity.Format("2006-01-02"))
	}
	// Terminal short-circuit: a contract valued on its adjusted maturity date
	// has no remaining coupons and no remaining protection to accrue against.
	if c.ValuationDate.Equal(adjustedMaturity) {
		return 0, 0, nil
	}

	var accrualNodes []float64
	var stepin float64
	if c.IncludeAccruedPremium {
		accrualNodes, err = AccrualIntegrationSchedule(c, disc, surv)
		if err != nil {
			return 0, 0, err
		}
		stepin = OffsetStepinTime(c)
	}

	cfg := config.GetConfig()

	legSum := 0.0
	accrualSum := 0.0

	// Two-cursor merge-scan: both cursors only ever advance as coupon periods
	// are walked in order.
	startCursor, endCursor := 0, 0

	first := cashflowIndexAfterValuation(c, schedule, 1, 1)
	for i := first; i < len(schedule); i++ {
		accrualStart := schedule[i-1]
		accrualEnd := schedule[i]

		t := utils.YearFraction(c.ValuationDate, accrualEnd, curveTimeDayCount)

		if c.ProtectionStart {
			// All but the final coupon discount at the period end shifted back
			// by the protection offset; the boundary periods get the one-day
			// ISDA nudges so default on the final day stays covered.
			if i < len(schedule)-1 {
				t -= cfg.ProtectionOffset
			}
			if i == 1 {
				accrualStart = accrualStart.AddDate(0, 0, -1)
			}
			if i == len(schedule)-1 {
				accrualEnd = accrualEnd.AddDate(0, 0, 1)
			}
		}

		dcf := utils.YearFraction(accrualStart, accrualEnd, string(c.DayCount))
		df := disc.DF(t)
		sp := surv.SurvivalProbability(t)

		legSum += dcf * df * sp

		if c.IncludeAccruedPremium {
			startCursor = endCursor
			for endCursor < len(accrualNodes)-1 && accrualNodes[endCursor] < t {
				endCursor++
			}
			accrualSum += accrualOnDefault(dcf, accrualNodes, disc, surv, startCursor, endCursor, stepin)
		}
	}

	return c.Notional * (legSum + accrualSum), c.Notional * accrualSum, nil
}

// accrualOnDefault integrates the expected accrued coupon paid at default over
// one coupon period, assuming the hazard rate and forward rate are constant
// between consecutive integration nodes.
//
// Each sub-interval contributes the exact integral of
// lambda * accrualRate * t * S(t) * D(t) under those piecewise-constant rates.
// When |lambda + f| falls below the configured threshold the removable
// singularity in the closed form is handled by a first-order Taylor expansion
// rather than the additive epsilon used by the ISDA reference code.
func accrualOnDefault(dcf float64, nodes []float64, disc DiscountCurve, surv SurvivalCurve, startIdx, endIdx int, stepinTime float64) float64 {
	cfg := config.GetConfig()

	startTime := nodes[startIdx]
	endTime := nodes[endIdx]
	if endTime <= startTime {
		return 0.0
	}

	subStart := startTime
	if stepinTime > subStart {
		subStart = stepinTime
	}
	accrualRate := dcf / (endTime - startTime)

	t0 := subStart - startTime + cfg.HalfDayOffset
	s0 := surv.SurvivalProbability(subStart)

	d0 := 1.0
	if startTime >= stepinTime && startTime >= 0 {
		d0 = disc.DF(nodes[startIdx])
	}

	value := 0.0
	for i := startIdx + 1; i <= endIdx; i++ {
		if nodes[i] <= stepinTime {
			continue
		}

		t1 := nodes[i] - startTime + cfg.HalfDayOffset
		dt := t1 - t0
		if dt <= 0 {
			continue
		}

		s1 := surv.SurvivalProbability(nodes[i])
		d1 := disc.DF(nodes[i])

		lambda := math.Log(s0/s1) / dt
		fwdRate := math.Log(d0/d1) / dt
		rateSum := lambda + fwdRate

		// bracket = integral of t * exp(-rateSum*(t - t0)) over [t0, t1]
		var bracket float64
		if math.Abs(rateSum) < cfg.RateSumTaylorThreshold {
			bracket = (t1*t1-t0*t0)/2.0 - rateSum*((t1*t1*t1-t0*t0*t0)/3.0-t0*(t1*t1-t0*t0)/2.0)
		} else {
			bracket = (t0+1.0/rateSum)/rateSum - (t1+1.0/rateSum)/rateSum*(s1/s0)*(d1/d0)
		}

		value += lambda * accrualRate * s0 * d0 * bracket

		t0 = t1
		s0 = s1
		d0 = d1
	}

	return value
}

// contingentLeg values the protection payment, integrating the default density
// against the discount curve with piecewise-constant forward rates. The closed
// form is exact at the curve pillars, so the result does not depend on any
// partition granularity.
func contingentLeg(c Contract, disc DiscountCurve, surv SurvivalCurve) (float64, error) {
	adjustedMaturity := AdjustedMaturityDate(c)
	if c.ValuationDate.After(adjustedMaturity) {
		return 0, fmt.Errorf("contingent leg: %w", ErrValuationAfterMaturity)
	}
	if c.ValuationDate.Equal(adjustedMaturity) {
		return 0.0, nil
	}

	nodes, err := ContingentLegIntegrationSchedule(c, disc, surv)
	if err != nil {
		return 0, fmt.Errorf("contingent leg: %w", err)
	}
	if len(nodes) < 2 {
		return 0.0, nil
	}

	threshold := config.GetConfig().RateSumTaylorThreshold

	s0 := surv.SurvivalProbability(nodes[0])
	d0 := disc.DF(nodes[0])

	sum := 0.0
	for i := 1; i < len(nodes); i++ {
		dt := nodes[i] - nodes[i-1]

		s1 := surv.SurvivalProbability(nodes[i])
		d1 := disc.DF(nodes[i])

		hazard := math.Log(s0/s1) / dt
		rate := math.Log(d0/d1) / dt
		rateSum := hazard + rate

		if math.Abs(rateSum) < threshold {
			// Small-x limit of (h/(h+r)) * (1 - exp(-(h+r)*dt)).
			sum += hazard * dt * (1.0 - 0.5*rateSum*dt) * s0 * d0
		} else {
			sum += (hazard / rateSum) * (1.0 - math.Exp(-rateSum*dt)) * s0 * d0
		}

		s0 = s1
		d0 = d1
	}

	return c.Notional * (1.0 - c.RecoveryRate) * sum, nil
}

// ContingentLegFixedPartition values the protection leg on a fixed uniform
// partition of the protection period. It is kept as a reference alternative to
// the node-exact integration: it converges to the same value only as the
// partition density grows, so production pricing uses the closed form.
func ContingentLegFixedPartition(c Contract, disc DiscountCurve, surv SurvivalCurve, pointsPerYear int) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("ContingentLegFixedPartition: %w", err)
	}
	if disc == nil || surv == nil {
		return 0, fmt.Errorf("ContingentLegFixedPartition: %w", ErrNilCurve)
	}
	if pointsPerYear <= 0 {
		pointsPerYear = config.GetConfig().PartitionsPerYear
	}

	adjustedMaturity := AdjustedMaturityDate(c)
	if c.ValuationDate.After(adjustedMaturity) {
		return 0, fmt.Errorf("ContingentLegFixedPartition: %w", ErrValuationAfterMaturity)
	}
	if c.ValuationDate.Equal(adjustedMaturity) {
		return 0.0, nil
	}

	protectionPeriod := utils.YearFraction(c.ValuationDate, adjustedMaturity.AddDate(0, 0, 1), curveTimeDayCount)
	partitions := int(float64(pointsPerYear)*protectionPeriod + 0.5)
	if partitions < 1 {
		partitions = 1
	}
	step := protectionPeriod / float64(partitions)

	sum := 0.0
	for k := 1; k <= partitions; k++ {
		t := float64(k) * step
		tPrev := float64(k-1) * step
		sum += disc.DF(t) * (surv.SurvivalProbability(tPrev) - surv.SurvivalProbability(t))
	}

	return c.Notional * (1.0 - c.RecoveryRate) * sum, nil
}

// accruedInterest is the coupon accrued between the previous coupon date and
// the stepin date, used to convert between clean and dirty prices.
func accruedInterest(c Contract) (float64, error) {
	schedule, err := PremiumLegSchedule(c)
	if err != nil {
		return 0, err
	}

	stepinDate := c.ValuationDate.AddDate(0, 0, 1)

	idx := cashflowIndexAfterValuation(c, schedule, 0, 1)
	if idx == 0 {
		// Valuation before the first accrual period: nothing has accrued.
		return 0.0, nil
	}
	previousCoupon := schedule[idx-1]

	dcf := utils.YearFraction(previousCoupon, stepinDate, string(c.DayCount))
	return (c.SpreadBP / 10000.0) * dcf * c.Notional, nil
}

// cashflowIndexAfterValuation locates the first schedule entry whose date
// (less deltaDays) is strictly after the valuation date.
func cashflowIndexAfterValuation(c Contract, schedule []time.Time, startIndex, deltaDays int) int {
	counter := startIndex
	for counter < len(schedule) && !c.ValuationDate.Before(schedule[counter].AddDate(0, 0, -deltaDays)) {
		counter++
	}
	if counter >= len(schedule) {
		counter = len(schedule) - 1
	}
	return counter
}
