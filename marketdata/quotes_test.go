package marketdata_test

import (
	"testing"
	"time"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/cds"
	"github.com/meenmo/credlib/cds/curve"
	"github.com/meenmo/credlib/cds/market"
	"github.com/meenmo/credlib/marketdata"
)

// Prices a 5y contract off the embedded sample marks end to end, as a smoke
// test that the fixtures stay mutually consistent.
func TestSampleQuotes_PriceFiveYear(t *testing.T) {
	t.Parallel()

	disc, err := curve.NewZeroCurve(marketdata.SampleUSDZeroTimes, marketdata.SampleUSDZeroDFs)
	if err != nil {
		t.Fatalf("NewZeroCurve error: %v", err)
	}
	surv, err := curve.NewSurvivalCurveFromHazards(marketdata.SampleHazardTimes, marketdata.SampleHazardRates)
	if err != nil {
		t.Fatalf("NewSurvivalCurveFromHazards error: %v", err)
	}

	effective := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	c := cds.Contract{
		BuySell:               market.BuyProtection,
		Notional:              10_000_000,
		SpreadBP:              marketdata.SampleIGSpreads[5],
		RecoveryRate:          0.40,
		StartDate:             effective,
		EffectiveDate:         effective,
		MaturityDate:          effective.AddDate(5, 0, 0),
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

	par, err := cds.ParSpread(c, disc, surv)
	if err != nil {
		t.Fatalf("ParSpread error: %v", err)
	}
	// The hazard marks were calibrated against the sample spread grid, so the
	// model par spread should land in the neighborhood of the 5y quote.
	quote := marketdata.SampleIGSpreads[5]
	if par < quote*0.9 || par > quote*1.1 {
		t.Fatalf("par spread %f bp too far from the 5y sample quote %f bp", par, quote)
	}

	legs, err := cds.PresentValueByLeg(c, disc, surv)
	if err != nil {
		t.Fatalf("PresentValueByLeg error: %v", err)
	}
	if legs.PremiumLegPV <= 0 || legs.ContingentLegPV <= 0 {
		t.Fatalf("expected positive leg values, got premium=%f contingent=%f", legs.PremiumLegPV, legs.ContingentLegPV)
	}
}
