package cds

import (
	"errors"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")

	// ErrMissingInput is returned when a required contract or curve input is absent.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidArgument is returned for malformed contract fields detected at construction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValuationAfterMaturity is returned when the valuation date falls
	// strictly after the adjusted maturity date.
	ErrValuationAfterMaturity = errors.New("valuation date after adjusted maturity date")

	// ErrCurveDomain is returned when a curve would be queried outside its
	// defined domain. This indicates a caller or configuration bug and is
	// never silently clamped.
	ErrCurveDomain = errors.New("time outside curve domain")

	// ErrDegeneratePremiumLeg is returned when a par spread is requested but
	// the premium leg values to exactly zero.
	ErrDegeneratePremiumLeg = errors.New("premium leg has zero present value")

	// ErrParSpreadDate is returned when a par spread is requested away from
	// the adjusted effective date.
	ErrParSpreadDate = errors.New("par spread requires valuation on the adjusted effective date")
)

// DiscountCurve maps a year offset from the valuation date to a discount factor.
//
// Nodes returns the curve's native pillar times; the integration schedule is
// built on these so each sub-interval sees a constant forward rate.
type DiscountCurve interface {
	DF(t float64) float64
	Nodes() []float64
}

// SurvivalCurve maps a year offset from the valuation date to a survival
// probability, with SurvivalProbability(0) == 1 by construction.
type SurvivalCurve interface {
	SurvivalProbability(t float64) float64
	Nodes() []float64
}

// LegPV contains present values for each component of a CDS and the signed sum.
//
// PremiumLegPV is the coupon annuity per unit spread including the
// accrual-on-default component; it is not yet scaled by the contract spread.
type LegPV struct {
	PremiumLegPV     float64
	AccrualOnDefault float64
	ContingentLegPV  float64
	AccruedInterest  float64
	PresentValue     float64
}
