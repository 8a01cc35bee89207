package model

import "math"

// ProbabilityDistribution is a three-state verdict over {TRUE, FALSE, UNCERTAIN}.
// Components are in [0,1] and sum to 1 within floating tolerance.
type ProbabilityDistribution struct {
	PTrue      float64 `json:"p_true"`
	PFalse     float64 `json:"p_false"`
	PUncertain float64 `json:"p_uncertain"`
}

// DistributionTolerance is the permitted deviation of the component sum from 1.0
const DistributionTolerance = 1e-6

// Valid reports whether the distribution satisfies its invariants
func (d ProbabilityDistribution) Valid() bool {
	for _, p := range []float64{d.PTrue, d.PFalse, d.PUncertain} {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return false
		}
	}
	return math.Abs(d.PTrue+d.PFalse+d.PUncertain-1.0) <= DistributionTolerance
}

// Label returns the dominant state as a human-readable verdict
func (d ProbabilityDistribution) Label() string {
	if d.PUncertain >= d.PTrue && d.PUncertain >= d.PFalse {
		return "UNCERTAIN"
	}
	if d.PTrue >= d.PFalse {
		return "TRUE"
	}
	return "FALSE"
}

// Lean returns p_true - p_false, the net truthfulness signal in [-1, 1]
func (d ProbabilityDistribution) Lean() float64 {
	return d.PTrue - d.PFalse
}

// Uncertain returns a distribution fully concentrated on the UNCERTAIN state
func Uncertain() ProbabilityDistribution {
	return ProbabilityDistribution{PUncertain: 1.0}
}
