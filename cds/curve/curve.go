// Package curve provides concrete discount and survival term structures for
// CDS valuation. Both are node-based with log-linear interpolation in the
// discount factor / survival probability, which is equivalent to a constant
// forward rate (hazard rate) between pillars and matches the ISDA model's
// curve convention.
package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/meenmo/credlib/cds"
)

// ZeroCurve is a discount curve defined by pillar times (years from the
// valuation date) and discount factors.
type ZeroCurve struct {
	times    []float64
	dfs      []float64
	flatRate float64
}

// NewZeroCurve builds a discount curve from pillar times and discount factors.
//
// Times must be non-negative and strictly increasing; factors must be
// positive. A pillar at t=0 with DF=1 is implied and need not be supplied;
// an explicit t=0 pillar must carry DF=1.
func NewZeroCurve(times, dfs []float64) (*ZeroCurve, error) {
	if len(times) != len(dfs) {
		return nil, fmt.Errorf("NewZeroCurve: %w: %d times vs %d factors", cds.ErrInvalidArgument, len(times), len(dfs))
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("NewZeroCurve: %w: empty curve", cds.ErrInvalidArgument)
	}
	for i := range times {
		if times[i] < 0 {
			return nil, fmt.Errorf("NewZeroCurve: %w: pillar %f is negative", cds.ErrCurveDomain, times[i])
		}
		if i > 0 && times[i] <= times[i-1] {
			return nil, fmt.Errorf("NewZeroCurve: %w: pillars not strictly increasing at %f", cds.ErrInvalidArgument, times[i])
		}
		if dfs[i] <= 0 {
			return nil, fmt.Errorf("NewZeroCurve: %w: discount factor %f at %f", cds.ErrInvalidArgument, dfs[i], times[i])
		}
	}
	if times[0] == 0 && dfs[0] != 1.0 {
		return nil, fmt.Errorf("NewZeroCurve: %w: discount factor %f at t=0, want 1", cds.ErrInvalidArgument, dfs[0])
	}

	c := &ZeroCurve{
		times: append([]float64(nil), times...),
		dfs:   append([]float64(nil), dfs...),
	}
	if c.times[0] > 0 {
		c.times = append([]float64{0}, c.times...)
		c.dfs = append([]float64{1.0}, c.dfs...)
	}
	return c, nil
}

// FlatZeroCurve returns a curve with a single continuously-compounded rate.
func FlatZeroCurve(rate float64) *ZeroCurve {
	return &ZeroCurve{times: []float64{0}, dfs: []float64{1.0}, flatRate: rate}
}

// DF returns the discount factor at t, log-linearly interpolated between
// pillars and flat-forward extrapolated beyond the last pillar.
func (c *ZeroCurve) DF(t float64) float64 {
	return interpolateLog(c.times, c.dfs, t, c.flatRate)
}

// Nodes returns the native pillar times.
func (c *ZeroCurve) Nodes() []float64 {
	return append([]float64(nil), c.times...)
}

// SurvivalCurve is a hazard-rate term structure defined by pillar times and
// survival probabilities, with SurvivalProbability(0) == 1 by construction.
type SurvivalCurve struct {
	times    []float64
	survival []float64
	flatRate float64
}

// NewSurvivalCurve builds a survival curve from pillar times and survival
// probabilities. Probabilities must lie in (0, 1] and be non-increasing, and
// an explicit t=0 pillar must carry probability 1.
func NewSurvivalCurve(times, survival []float64) (*SurvivalCurve, error) {
	if len(times) != len(survival) {
		return nil, fmt.Errorf("NewSurvivalCurve: %w: %d times vs %d probabilities", cds.ErrInvalidArgument, len(times), len(survival))
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("NewSurvivalCurve: %w: empty curve", cds.ErrInvalidArgument)
	}
	for i := range times {
		if times[i] < 0 {
			return nil, fmt.Errorf("NewSurvivalCurve: %w: pillar %f is negative", cds.ErrCurveDomain, times[i])
		}
		if i > 0 && times[i] <= times[i-1] {
			return nil, fmt.Errorf("NewSurvivalCurve: %w: pillars not strictly increasing at %f", cds.ErrInvalidArgument, times[i])
		}
		if survival[i] <= 0 || survival[i] > 1 {
			return nil, fmt.Errorf("NewSurvivalCurve: %w: survival probability %f at %f", cds.ErrInvalidArgument, survival[i], times[i])
		}
		if i > 0 && survival[i] > survival[i-1] {
			return nil, fmt.Errorf("NewSurvivalCurve: %w: survival probabilities increase at %f", cds.ErrInvalidArgument, times[i])
		}
	}
	if times[0] == 0 && survival[0] != 1.0 {
		return nil, fmt.Errorf("NewSurvivalCurve: %w: survival probability %f at t=0, want 1", cds.ErrInvalidArgument, survival[0])
	}

	c := &SurvivalCurve{
		times:    append([]float64(nil), times...),
		survival: append([]float64(nil), survival...),
	}
	if c.times[0] > 0 {
		c.times = append([]float64{0}, c.times...)
		c.survival = append([]float64{1.0}, c.survival...)
	}
	return c, nil
}

// NewSurvivalCurveFromHazards builds a survival curve from piecewise-constant
// forward hazard rates: hazards[i] applies on (times[i-1], times[i]].
func NewSurvivalCurveFromHazards(times, hazards []float64) (*SurvivalCurve, error) {
	if len(times) != len(hazards) {
		return nil, fmt.Errorf("NewSurvivalCurveFromHazards: %w: %d times vs %d hazards", cds.ErrInvalidArgument, len(times), len(hazards))
	}
	survival := make([]float64, len(times))
	prevT := 0.0
	acc := 0.0
	for i := range times {
		acc += hazards[i] * (times[i] - prevT)
		survival[i] = math.Exp(-acc)
		prevT = times[i]
	}
	return NewSurvivalCurve(times, survival)
}

// FlatHazardCurve returns a survival curve with a single flat hazard rate.
func FlatHazardCurve(hazard float64) *SurvivalCurve {
	return &SurvivalCurve{times: []float64{0}, survival: []float64{1.0}, flatRate: hazard}
}

// FlatHazardFromSpread derives the flat hazard rate implied by a quoted par
// spread (in bp) and a recovery rate: hazard = spread / (1 - recovery).
func FlatHazardFromSpread(spreadBP, recoveryRate float64) (*SurvivalCurve, error) {
	if recoveryRate < 0 || recoveryRate >= 1 {
		return nil, fmt.Errorf("FlatHazardFromSpread: %w: recovery rate %f", cds.ErrInvalidArgument, recoveryRate)
	}
	return FlatHazardCurve((spreadBP / 10000.0) / (1.0 - recoveryRate)), nil
}

// SurvivalProbability returns S(t), log-linearly interpolated between pillars
// and flat-hazard extrapolated beyond the last pillar.
func (c *SurvivalCurve) SurvivalProbability(t float64) float64 {
	return interpolateLog(c.times, c.survival, t, c.flatRate)
}

// Nodes returns the native pillar times.
func (c *SurvivalCurve) Nodes() []float64 {
	return append([]float64(nil), c.times...)
}

// interpolateLog performs log-linear interpolation of values over times,
// with constant-rate extrapolation beyond the final pillar. flatRate is used
// when the curve has a single pillar.
func interpolateLog(times, values []float64, t, flatRate float64) float64 {
	n := len(times)
	if n == 1 {
		return values[0] * math.Exp(-flatRate*(t-times[0]))
	}
	if t <= times[0] {
		return values[0] * math.Exp(-forwardBetween(times, values, 0, 1)*(t-times[0]))
	}
	if t >= times[n-1] {
		return values[n-1] * math.Exp(-forwardBetween(times, values, n-2, n-1)*(t-times[n-1]))
	}

	// First index with times[i] >= t.
	i := sort.SearchFloat64s(times, t)
	if times[i] == t {
		return values[i]
	}
	fwd := forwardBetween(times, values, i-1, i)
	return values[i-1] * math.Exp(-fwd*(t-times[i-1]))
}

// forwardBetween is the constant forward rate implied by two pillars.
func forwardBetween(times, values []float64, i, j int) float64 {
	return math.Log(values[i]/values[j]) / (times[j] - times[i])
}
