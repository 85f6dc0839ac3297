package marketdata

// Embedded sample quotes for development, examples and tests. Values are
// indicative end-of-day marks, not live data.

// SampleUSDZeroTimes and SampleUSDZeroDFs describe a USD discount curve as
// pillar times (years) and discount factors.
var SampleUSDZeroTimes = []float64{0.25, 0.5, 1, 2, 3, 5, 7, 10}

var SampleUSDZeroDFs = []float64{
	0.98930, 0.97862, 0.95721, 0.91532,
	0.87417, 0.79672, 0.72542, 0.62979,
}

// SampleIGSpreads holds single-name investment-grade CDS par spreads (bp)
// by tenor in years.
var SampleIGSpreads = map[float64]float64{
	1:  38.5,
	3:  62.0,
	5:  86.5,
	7:  99.0,
	10: 110.5,
}

// SampleHazardTimes and SampleHazardRates describe a calibrated hazard-rate
// term structure consistent with the sample spreads at 40% recovery.
var SampleHazardTimes = []float64{1, 3, 5, 7, 10}

var SampleHazardRates = []float64{
	0.00642, 0.01264, 0.02054, 0.02171, 0.02289,
}
