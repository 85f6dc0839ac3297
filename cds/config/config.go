package config

// Config holds numeric parameters for CDS schedule generation and leg valuation.
type Config struct {
	// ProtectionOffset is the timing shift (in years) applied to coupon
	// discounting times when protection starts at the period beginning.
	// The ISDA model uses one calendar day on ACT/365.
	ProtectionOffset float64

	// HalfDayOffset is the half-day accrual timing adjustment (in years)
	// used inside the accrual-on-default integral, matching the ISDA
	// model's 0.5/365 shift.
	HalfDayOffset float64

	// RateSumTaylorThreshold is the |lambda + f| level below which the
	// accrual-on-default and contingent-leg integrals switch to their
	// small-x Taylor expansions instead of the closed form.
	RateSumTaylorThreshold float64

	// NodeMergeTolerance is the minimum spacing between integration nodes.
	// Nodes closer than this are collapsed when schedules are merged.
	NodeMergeTolerance float64

	// PartitionsPerYear is the density of the legacy fixed-partition
	// quadrature for the contingent leg.
	PartitionsPerYear int

	// ShortStubCutoffDays controls backward schedule generation: a
	// backward-rolled date within this many days of the effective date is
	// dropped so the front stub becomes a long stub instead of a sliver.
	ShortStubCutoffDays int
}

// DefaultConfig provides values matching the ISDA standard model.
var DefaultConfig = Config{
	ProtectionOffset:       1.0 / 365.0,
	HalfDayOffset:          0.5 / 365.0,
	RateSumTaylorThreshold: 1e-10,
	NodeMergeTolerance:     1e-12,
	PartitionsPerYear:      30,
	ShortStubCutoffDays:    0,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
