package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/cds/market"
)

// Contract captures the economic terms of a single-name credit default swap.
//
// The struct is a plain value: construct it, call Validate once, then treat it
// as immutable. Direction is carried by BuySell; Notional is always
// non-negative.
type Contract struct {
	BuySell market.BuySellProtection

	Notional     float64
	SpreadBP     float64
	RecoveryRate float64

	StartDate     time.Time
	EffectiveDate time.Time
	MaturityDate  time.Time
	ValuationDate time.Time

	DayCount        market.DayCount
	CouponFrequency market.Frequency
	StubType        market.StubType

	BusinessDayAdjustment calendar.Convention
	Calendar              calendar.CalendarID

	// IncludeAccruedPremium adds the accrual-on-default component to the
	// premium leg.
	IncludeAccruedPremium bool

	// ProtectionStart indicates protection begins at the start of each coupon
	// period rather than its end, triggering the ISDA timing adjustments.
	ProtectionStart bool

	PriceType market.PriceType
}

// Validate checks the contract invariants eagerly. Violations are reported as
// ErrInvalidArgument; nothing is silently corrected.
func (c Contract) Validate() error {
	if c.Notional < 0 {
		return fmt.Errorf("%w: notional %f is negative", ErrInvalidArgument, c.Notional)
	}
	if c.RecoveryRate < 0 || c.RecoveryRate > 1 {
		return fmt.Errorf("%w: recovery rate %f outside [0,1]", ErrInvalidArgument, c.RecoveryRate)
	}
	if c.EffectiveDate.IsZero() || c.MaturityDate.IsZero() || c.ValuationDate.IsZero() {
		return fmt.Errorf("%w: effective, maturity and valuation dates are required", ErrMissingInput)
	}
	if c.MaturityDate.Before(c.EffectiveDate) {
		return fmt.Errorf("%w: maturity %s before effective %s", ErrInvalidArgument,
			c.MaturityDate.Format("2006-01-02"), c.EffectiveDate.Format("2006-01-02"))
	}
	if c.CouponFrequency <= 0 {
		return fmt.Errorf("%w: unsupported coupon frequency %d", ErrInvalidArgument, c.CouponFrequency)
	}
	switch c.DayCount {
	case market.Act360, market.Act365, market.Act365F, market.Dc30360, market.Dc30E360:
	default:
		return fmt.Errorf("%w: unsupported day count %q", ErrInvalidArgument, c.DayCount)
	}
	switch c.BuySell {
	case market.BuyProtection, market.SellProtection:
	default:
		return fmt.Errorf("%w: buy/sell direction %q", ErrInvalidArgument, c.BuySell)
	}
	return nil
}

// signPV returns +1 for protection buyers and -1 for sellers.
func (c Contract) signPV() float64 {
	if c.BuySell == market.SellProtection {
		return -1.0
	}
	return 1.0
}
