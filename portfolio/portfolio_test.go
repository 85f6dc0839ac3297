package portfolio_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/cds"
	"github.com/meenmo/credlib/cds/curve"
	"github.com/meenmo/credlib/cds/market"
	"github.com/meenmo/credlib/portfolio"
)

func testTrade(t *testing.T, spreadBP, hazard float64) *cds.Trade {
	t.Helper()

	effective := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	contract := cds.Contract{
		BuySell:               market.BuyProtection,
		Notional:              1_000_000,
		SpreadBP:              spreadBP,
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

	trade, err := cds.NewTrade(contract, curve.FlatZeroCurve(0.03), curve.FlatHazardCurve(hazard))
	if err != nil {
		t.Fatalf("NewTrade error: %v", err)
	}
	return trade
}

func TestValueAll_MatchesIndividualValuations(t *testing.T) {
	t.Parallel()

	trades := []*cds.Trade{
		testTrade(t, 100, 0.02),
		testTrade(t, 250, 0.05),
		testTrade(t, 50, 0.01),
	}

	results, err := portfolio.ValueAll(context.Background(), trades, 2)
	if err != nil {
		t.Fatalf("ValueAll error: %v", err)
	}
	if len(results) != len(trades) {
		t.Fatalf("expected %d results, got %d", len(trades), len(results))
	}

	total := 0.0
	for i, trade := range trades {
		legs, err := trade.PresentValueByLeg()
		if err != nil {
			t.Fatalf("PresentValueByLeg error: %v", err)
		}
		if results[i].TradeID != trade.ID {
			t.Fatalf("result %d out of order: got trade %s, want %s", i, results[i].TradeID, trade.ID)
		}
		if results[i].Legs.PresentValue != legs.PresentValue {
			t.Fatalf("result %d PV %f differs from direct valuation %f", i, results[i].Legs.PresentValue, legs.PresentValue)
		}
		total += legs.PresentValue
	}

	if got := portfolio.TotalPV(results); math.Abs(got-total) > 1e-9 {
		t.Fatalf("TotalPV = %f, want %f", got, total)
	}
}

func TestValueAll_NilTrade(t *testing.T) {
	t.Parallel()

	trades := []*cds.Trade{testTrade(t, 100, 0.02), nil}
	_, err := portfolio.ValueAll(context.Background(), trades, 0)
	if !errors.Is(err, cds.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for nil trade, got %v", err)
	}
}

func TestValueAll_PropagatesValuationError(t *testing.T) {
	t.Parallel()

	bad := testTrade(t, 100, 0.02)
	bad.Contract.ValuationDate = bad.Contract.MaturityDate.AddDate(1, 0, 0)

	_, err := portfolio.ValueAll(context.Background(), []*cds.Trade{bad}, 0)
	if !errors.Is(err, cds.ErrValuationAfterMaturity) {
		t.Fatalf("expected ErrValuationAfterMaturity, got %v", err)
	}
}

func TestValueAll_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := portfolio.ValueAll(ctx, []*cds.Trade{testTrade(t, 100, 0.02)}, 1)
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
