package cds

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/credlib/utils"
)

// Cashflow is one premium coupon of the CDS, with its risky discounting
// inputs. Amount is exact decimal for reporting and settlement reconciliation.
type Cashflow struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PayDate      time.Time

	DayCountFraction    float64
	Amount              decimal.Decimal
	DiscountFactor      float64
	SurvivalProbability float64
}

// CouponCashflows lists the remaining premium coupons due after the valuation
// date. Coupon amounts are notional * spread * accrual, independent of the
// protection-start timing shifts used in leg valuation.
func CouponCashflows(c Contract, disc DiscountCurve, surv SurvivalCurve) ([]Cashflow, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("CouponCashflows: %w", err)
	}
	if disc == nil || surv == nil {
		return nil, fmt.Errorf("CouponCashflows: %w", ErrNilCurve)
	}

	schedule, err := PremiumLegSchedule(c)
	if err != nil {
		return nil, fmt.Errorf("CouponCashflows: %w", err)
	}

	notional := decimal.NewFromFloat(c.Notional)
	spread := decimal.NewFromFloat(c.SpreadBP).Div(decimal.NewFromInt(10000))

	flows := make([]Cashflow, 0, len(schedule)-1)
	for i := 1; i < len(schedule); i++ {
		accrualStart := schedule[i-1]
		accrualEnd := schedule[i]
		if !accrualEnd.After(c.ValuationDate) {
			continue
		}

		dcf := utils.YearFraction(accrualStart, accrualEnd, string(c.DayCount))
		t := utils.YearFraction(c.ValuationDate, accrualEnd, curveTimeDayCount)

		flows = append(flows, Cashflow{
			AccrualStart:        accrualStart,
			AccrualEnd:          accrualEnd,
			PayDate:             accrualEnd,
			DayCountFraction:    dcf,
			Amount:              notional.Mul(spread).Mul(decimal.NewFromFloat(dcf)),
			DiscountFactor:      disc.DF(t),
			SurvivalProbability: surv.SurvivalProbability(t),
		})
	}
	return flows, nil
}
