package cds

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Trade pairs a CDS contract with the curves used to value it.
//
// Curves and the contract are read-only once the trade is built, so a Trade
// may be shared across goroutines.
type Trade struct {
	ID            string
	Contract      Contract
	DiscountCurve DiscountCurve
	SurvivalCurve SurvivalCurve
}

// NewTrade validates the contract and curve inputs and assigns a trade ID.
func NewTrade(contract Contract, disc DiscountCurve, surv SurvivalCurve) (*Trade, error) {
	if err := contract.Validate(); err != nil {
		return nil, fmt.Errorf("NewTrade: %w", err)
	}
	if disc == nil {
		return nil, fmt.Errorf("NewTrade: %w: discount curve", ErrMissingInput)
	}
	if surv == nil {
		return nil, fmt.Errorf("NewTrade: %w: survival curve", ErrMissingInput)
	}
	return &Trade{
		ID:            uuid.NewString(),
		Contract:      contract,
		DiscountCurve: disc,
		SurvivalCurve: surv,
	}, nil
}

// PresentValue returns the signed PV of the trade.
func (t *Trade) PresentValue() (float64, error) {
	return PresentValue(t.Contract, t.DiscountCurve, t.SurvivalCurve)
}

// PresentValueByLeg returns the per-leg breakdown of the trade's PV.
func (t *Trade) PresentValueByLeg() (LegPV, error) {
	return PresentValueByLeg(t.Contract, t.DiscountCurve, t.SurvivalCurve)
}

// ParSpread returns the par coupon (in bp) of the trade at inception.
func (t *Trade) ParSpread() (float64, error) {
	return ParSpread(t.Contract, t.DiscountCurve, t.SurvivalCurve)
}

// Reprice returns a copy of the trade with a new coupon and valuation date,
// preserving the curves. The original trade is not modified.
func (t *Trade) Reprice(spreadBP float64, valuationDate time.Time) (*Trade, error) {
	c := t.Contract
	c.SpreadBP = spreadBP
	if !valuationDate.IsZero() {
		c.ValuationDate = valuationDate
	}
	return NewTrade(c, t.DiscountCurve, t.SurvivalCurve)
}

// CouponCashflows lists the remaining premium coupons of the trade.
func (t *Trade) CouponCashflows() ([]Cashflow, error) {
	return CouponCashflows(t.Contract, t.DiscountCurve, t.SurvivalCurve)
}
