// Package pool models a pool of reference obligors, the supporting data model
// for index and bespoke tranche products. It carries per-obligor notionals,
// coupons, recoveries and credit-spread term structures, and exposes
// descriptive statistics over the pool's spreads at a given tenor.
package pool

import (
	"fmt"
	"math"
	"sort"

	"github.com/meenmo/credlib/cds"
	"github.com/meenmo/credlib/cds/market"
)

// Obligor identifies one reference entity in the pool.
type Obligor struct {
	Ticker        string
	Name          string
	Seniority     market.DebtSeniority
	Restructuring market.RestructuringClause
}

// Pool is an immutable collection of obligors with parallel per-obligor data.
//
// SpreadTermStructures is indexed [obligor][tenor] in basis points, with
// Tenors naming the tenor axis (in years).
type Pool struct {
	Obligors             []Obligor
	Tenors               []float64
	SpreadTermStructures [][]float64
	Notionals            []float64
	Coupons              []float64
	RecoveryRates        []float64
	Weights              []float64
}

// New validates the parallel arrays and returns the pool. Dimension mismatches
// and out-of-range values are reported eagerly as invalid arguments.
func New(p Pool) (*Pool, error) {
	n := len(p.Obligors)
	if n == 0 {
		return nil, fmt.Errorf("pool.New: %w: no obligors", cds.ErrInvalidArgument)
	}
	if len(p.Notionals) != n || len(p.Coupons) != n || len(p.RecoveryRates) != n || len(p.Weights) != n {
		return nil, fmt.Errorf("pool.New: %w: obligor arrays have mismatched lengths (%d obligors, %d notionals, %d coupons, %d recoveries, %d weights)",
			cds.ErrInvalidArgument, n, len(p.Notionals), len(p.Coupons), len(p.RecoveryRates), len(p.Weights))
	}
	if len(p.SpreadTermStructures) != n {
		return nil, fmt.Errorf("pool.New: %w: %d spread term structures for %d obligors",
			cds.ErrInvalidArgument, len(p.SpreadTermStructures), n)
	}
	for i, ts := range p.SpreadTermStructures {
		if len(ts) != len(p.Tenors) {
			return nil, fmt.Errorf("pool.New: %w: obligor %d has %d spreads for %d tenors",
				cds.ErrInvalidArgument, i, len(ts), len(p.Tenors))
		}
	}
	weightSum := 0.0
	for i := 0; i < n; i++ {
		if p.Notionals[i] < 0 {
			return nil, fmt.Errorf("pool.New: %w: obligor %d notional %f is negative", cds.ErrInvalidArgument, i, p.Notionals[i])
		}
		if p.RecoveryRates[i] < 0 || p.RecoveryRates[i] > 1 {
			return nil, fmt.Errorf("pool.New: %w: obligor %d recovery rate %f outside [0,1]", cds.ErrInvalidArgument, i, p.RecoveryRates[i])
		}
		if p.Weights[i] < 0 {
			return nil, fmt.Errorf("pool.New: %w: obligor %d weight %f is negative", cds.ErrInvalidArgument, i, p.Weights[i])
		}
		weightSum += p.Weights[i]
	}
	if math.Abs(weightSum-1.0) > 1e-10 {
		return nil, fmt.Errorf("pool.New: %w: obligor weights sum to %f, want 1", cds.ErrInvalidArgument, weightSum)
	}
	return &p, nil
}

// TotalNotional is the sum of the obligor notionals.
func (p *Pool) TotalNotional() float64 {
	total := 0.0
	for _, n := range p.Notionals {
		total += n
	}
	return total
}

// spreadsAt collects each obligor's spread at the given tenor.
func (p *Pool) spreadsAt(tenor float64) ([]float64, error) {
	col := -1
	for i, t := range p.Tenors {
		if t == tenor {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("pool: %w: tenor %f not in pool term structure", cds.ErrInvalidArgument, tenor)
	}
	out := make([]float64, len(p.SpreadTermStructures))
	for i, ts := range p.SpreadTermStructures {
		out[i] = ts[col]
	}
	return out, nil
}

// SpreadAverage is the weighted mean credit spread at the tenor.
func (p *Pool) SpreadAverage(tenor float64) (float64, error) {
	spreads, err := p.spreadsAt(tenor)
	if err != nil {
		return 0, err
	}
	mean := 0.0
	for i, s := range spreads {
		mean += p.Weights[i] * s
	}
	return mean, nil
}

// SpreadVariance is the unweighted sample variance of the spreads at the tenor.
func (p *Pool) SpreadVariance(tenor float64) (float64, error) {
	m2, err := p.centralMoment(tenor, 2)
	if err != nil {
		return 0, err
	}
	n := float64(len(p.Obligors))
	if n < 2 {
		return 0, nil
	}
	return m2 * n / (n - 1), nil
}

// SpreadStandardDeviation is the sample standard deviation of the spreads.
func (p *Pool) SpreadStandardDeviation(tenor float64) (float64, error) {
	v, err := p.SpreadVariance(tenor)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// SpreadSkewness is the standardized third central moment of the spreads.
func (p *Pool) SpreadSkewness(tenor float64) (float64, error) {
	m2, err := p.centralMoment(tenor, 2)
	if err != nil {
		return 0, err
	}
	m3, err := p.centralMoment(tenor, 3)
	if err != nil {
		return 0, err
	}
	if m2 == 0 {
		return 0, nil
	}
	return m3 / math.Pow(m2, 1.5), nil
}

// SpreadKurtosis is the standardized fourth central moment of the spreads.
func (p *Pool) SpreadKurtosis(tenor float64) (float64, error) {
	m2, err := p.centralMoment(tenor, 2)
	if err != nil {
		return 0, err
	}
	m4, err := p.centralMoment(tenor, 4)
	if err != nil {
		return 0, err
	}
	if m2 == 0 {
		return 0, nil
	}
	return m4 / (m2 * m2), nil
}

// SpreadPercentile returns the q-th percentile (q in [0,1]) of the spreads.
func (p *Pool) SpreadPercentile(tenor float64, q float64) (float64, error) {
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("pool: %w: percentile %f outside [0,1]", cds.ErrInvalidArgument, q)
	}
	spreads, err := p.spreadsAt(tenor)
	if err != nil {
		return 0, err
	}
	sorted := append([]float64(nil), spreads...)
	sort.Float64s(sorted)
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx], nil
}

func (p *Pool) centralMoment(tenor float64, order float64) (float64, error) {
	spreads, err := p.spreadsAt(tenor)
	if err != nil {
		return 0, err
	}
	mean := 0.0
	for _, s := range spreads {
		mean += s
	}
	mean /= float64(len(spreads))

	m := 0.0
	for _, s := range spreads {
		m += math.Pow(s-mean, order)
	}
	return m / float64(len(spreads)), nil
}
