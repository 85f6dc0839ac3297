package cds_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/cds"
	"github.com/meenmo/credlib/cds/curve"
	"github.com/meenmo/credlib/cds/market"
	"github.com/meenmo/credlib/utils"
)

func testContract() cds.Contract {
	effective := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	maturity := time.Date(2030, 6, 20, 0, 0, 0, 0, time.UTC)

	return cds.Contract{
		BuySell:               market.BuyProtection,
		Notional:              10_000_000.0,
		SpreadBP:              100.0,
		RecoveryRate:          0.40,
		StartDate:             effective,
		EffectiveDate:         effective,
		MaturityDate:          maturity,
		ValuationDate:         effective,
		DayCount:              market.Act360,
		CouponFrequency:       market.FreqQuarterly,
		StubType:              market.StubShortFront,
		BusinessDayAdjustment: calendar.Following,
		Calendar:              calendar.WeekendsOnly,
		IncludeAccruedPremium: true,
		ProtectionStart:       true,
		PriceType:             market.PriceDirty,
	}
}

func TestContingentLeg_FlatCurvesClosedForm(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.SpreadBP = 0
	c.IncludeAccruedPremium = false

	hazard := 0.02
	rate := 0.05
	disc := curve.FlatZeroCurve(rate)
	surv := curve.FlatHazardCurve(hazard)

	legs, err := cds.PresentValueByLeg(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg error: %v", err)
	}

	// Protection runs from time zero (stepin less the protection offset) to
	// the adjusted maturity plus the one-day ISDA extension.
	T := utils.YearFraction(c.ValuationDate, cds.AdjustedMaturityDate(c).AddDate(0, 0, 1), "ACT/365")
	want := c.Notional * (1 - c.RecoveryRate) * hazard / (hazard + rate) * (1 - math.Exp(-(hazard+rate)*T))

	if rel := math.Abs(legs.ContingentLegPV-want) / want; rel > 1e-8 {
		t.Fatalf("contingent leg mismatch: got %.10f want %.10f (rel %.2e)", legs.ContingentLegPV, want, rel)
	}
}

func TestZeroCouponSanity(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.SpreadBP = 0
	c.RecoveryRate = 0

	disc := curve.FlatZeroCurve(0.03)
	surv := curve.FlatHazardCurve(0.015)

	legs, err := cds.PresentValueByLeg(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg error: %v", err)
	}
	if legs.PresentValue != legs.ContingentLegPV {
		t.Fatalf("zero-coupon PV should equal contingent leg: pv=%.10f contingent=%.10f",
			legs.PresentValue, legs.ContingentLegPV)
	}
}

func TestPremiumLeg_TerminalDate(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.EffectiveDate = time.Date(2020, 6, 19, 0, 0, 0, 0, time.UTC)
	c.StartDate = c.EffectiveDate
	c.MaturityDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	c.ValuationDate = c.MaturityDate

	disc := curve.FlatZeroCurve(0.03)
	surv := curve.FlatHazardCurve(0.02)

	legs, err := cds.PresentValueByLeg(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg error: %v", err)
	}
	if legs.PremiumLegPV != 0.0 {
		t.Fatalf("premium leg on maturity date must be exactly zero, got %.12f", legs.PremiumLegPV)
	}
	if legs.PresentValue != 0.0 {
		t.Fatalf("PV on maturity date must be exactly zero, got %.12f", legs.PresentValue)
	}
}

func TestValuationAfterMaturity(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.ValuationDate = c.MaturityDate.AddDate(0, 1, 0)

	_, err := cds.PresentValueByLeg(c, curve.FlatZeroCurve(0.03), curve.FlatHazardCurve(0.02))
	if !errors.Is(err, cds.ErrValuationAfterMaturity) {
		t.Fatalf("expected ErrValuationAfterMaturity, got %v", err)
	}
}

func TestSignConvention(t *testing.T) {
	t.Parallel()

	buy := testContract()
	sell := buy
	sell.BuySell = market.SellProtection

	disc := curve.FlatZeroCurve(0.03)
	surv := curve.FlatHazardCurve(0.02)

	pvBuy, err := cds.PresentValue(buy, disc, surv)
	if err != nil {
		t.Fatalf("PresentValue(buy) error: %v", err)
	}
	pvSell, err := cds.PresentValue(sell, disc, surv)
	if err != nil {
		t.Fatalf("PresentValue(sell) error: %v", err)
	}
	if pvBuy == 0 {
		t.Fatal("expected non-zero PV for this contract")
	}
	if pvSell != -pvBuy {
		t.Fatalf("sell PV must negate buy PV: buy=%.10f sell=%.10f", pvBuy, pvSell)
	}
}

func TestRecoveryMonotonicity(t *testing.T) {
	t.Parallel()

	disc := curve.FlatZeroCurve(0.03)
	surv := curve.FlatHazardCurve(0.02)

	low := testContract()
	low.RecoveryRate = 0.20
	high := testContract()
	high.RecoveryRate = 0.60

	legsLow, err := cds.PresentValueByLeg(low, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg(low) error: %v", err)
	}
	legsHigh, err := cds.PresentValueByLeg(high, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg(high) error: %v", err)
	}
	if !(math.Abs(legsHigh.ContingentLegPV) < math.Abs(legsLow.ContingentLegPV)) {
		t.Fatalf("higher recovery must shrink the contingent leg: R=0.2 -> %.6f, R=0.6 -> %.6f",
			legsLow.ContingentLegPV, legsHigh.ContingentLegPV)
	}
}

func TestParSpreadRoundTrip(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.Notional = 1.0

	disc := curve.FlatZeroCurve(0.04)
	surv := curve.FlatHazardCurve(0.025)

	spreadBP, err := cds.ParSpread(c, disc, surv)
	if err != nil {
		t.Fatalf("ParSpread error: %v", err)
	}
	if spreadBP <= 0 {
		t.Fatalf("expected positive par spread, got %.6f", spreadBP)
	}

	c.SpreadBP = spreadBP
	pv, err := cds.PresentValue(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValue error: %v", err)
	}
	if math.Abs(pv) > 1e-6 {
		t.Fatalf("repricing at the par spread should give PV ~ 0, got %.12f", pv)
	}
}

func TestParSpread_RequiresEffectiveDate(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.ValuationDate = c.EffectiveDate.AddDate(0, 1, 0)

	_, err := cds.ParSpread(c, curve.FlatZeroCurve(0.03), curve.FlatHazardCurve(0.02))
	if !errors.Is(err, cds.ErrParSpreadDate) {
		t.Fatalf("expected ErrParSpreadDate, got %v", err)
	}
}

func TestParSpread_DegeneratePremiumLeg(t *testing.T) {
	t.Parallel()

	// Zero notional makes the premium annuity exactly zero, so no coupon can
	// balance the contingent leg.
	c := testContract()
	c.Notional = 0

	_, err := cds.ParSpread(c, curve.FlatZeroCurve(0.03), curve.FlatHazardCurve(0.02))
	if !errors.Is(err, cds.ErrDegeneratePremiumLeg) {
		t.Fatalf("expected ErrDegeneratePremiumLeg, got %v", err)
	}
}

func TestAccrualOnDefault_RateSumCancellation(t *testing.T) {
	t.Parallel()

	// hazard + forward rate sums to exactly zero: the closed form has a
	// removable singularity there and must fall through to the Taylor branch.
	hazard := 0.05
	surv := curve.FlatHazardCurve(hazard)
	discZero := curve.FlatZeroCurve(-hazard)
	discNear := curve.FlatZeroCurve(-hazard + 1e-9)

	c := testContract()

	legsZero, err := cds.PresentValueByLeg(c, discZero, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg(rate sum = 0) error: %v", err)
	}
	if math.IsNaN(legsZero.AccrualOnDefault) || math.IsInf(legsZero.AccrualOnDefault, 0) {
		t.Fatalf("accrual-on-default not finite at rate sum 0: %v", legsZero.AccrualOnDefault)
	}
	if legsZero.AccrualOnDefault <= 0 {
		t.Fatalf("accrual-on-default must stay positive, got %.12f", legsZero.AccrualOnDefault)
	}

	legsNear, err := cds.PresentValueByLeg(c, discNear, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg(rate sum ~ 0) error: %v", err)
	}
	rel := math.Abs(legsZero.AccrualOnDefault-legsNear.AccrualOnDefault) / legsNear.AccrualOnDefault
	if rel > 1e-5 {
		t.Fatalf("Taylor branch should join the closed form continuously: rel diff %.2e", rel)
	}

	relCont := math.Abs(legsZero.ContingentLegPV-legsNear.ContingentLegPV) / legsNear.ContingentLegPV
	if relCont > 1e-5 {
		t.Fatalf("contingent leg limit should join the closed form continuously: rel diff %.2e", relCont)
	}
}

func TestContingentLegFixedPartition_ConvergesToClosedForm(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.IncludeAccruedPremium = false

	disc := curve.FlatZeroCurve(0.03)
	surv := curve.FlatHazardCurve(0.02)

	legs, err := cds.PresentValueByLeg(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg error: %v", err)
	}

	approx, err := cds.ContingentLegFixedPartition(c, disc, surv, 5000)
	if err != nil {
		t.Fatalf("ContingentLegFixedPartition error: %v", err)
	}
	if rel := math.Abs(approx-legs.ContingentLegPV) / legs.ContingentLegPV; rel > 1e-4 {
		t.Fatalf("fixed partition should approach the closed form: rel diff %.2e", rel)
	}
}

func TestAccruedInterest_CleanPrice(t *testing.T) {
	t.Parallel()

	c := testContract()
	c.ValuationDate = c.EffectiveDate.AddDate(0, 0, 45)
	c.PriceType = market.PriceClean

	disc := curve.FlatZeroCurve(0.03)
	surv := curve.FlatHazardCurve(0.02)

	legs, err := cds.PresentValueByLeg(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg error: %v", err)
	}
	if legs.AccruedInterest <= 0 {
		t.Fatalf("expected positive accrued interest mid-period, got %.10f", legs.AccruedInterest)
	}

	dirty := c
	dirty.PriceType = market.PriceDirty
	legsDirty, err := cds.PresentValueByLeg(dirty, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg(dirty) error: %v", err)
	}
	diff := legs.PresentValue - legsDirty.PresentValue
	if math.Abs(diff-legs.AccruedInterest) > 1e-8 {
		t.Fatalf("clean - dirty must equal accrued interest: diff=%.12f accrued=%.12f", diff, legs.AccruedInterest)
	}
}
