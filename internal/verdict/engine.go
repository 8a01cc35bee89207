// Package verdict converts weighted evidence and the counter-intelligence
// adjustment into a calibrated three-state probability distribution.
package verdict

import (
	"math"

	"github.com/akovalev/claimsift/internal/model"
)

const (
	// voteScale controls how fast summed evidence votes saturate the
	// tanh squash toward certainty
	voteScale = 2.0

	// volumeSaturation is the total absolute validation power at which
	// half of the probability mass leaves UNCERTAIN. Roughly one strong
	// peer-reviewed source; three strong sources push certainty past 0.7.
	volumeSaturation = 1.5
)

// Engine aggregates evidence into per-claim verdicts and the video rollup.
// For a fixed evidence set and adjustment the output is always identical.
type Engine struct{}

// NewEngine creates a new probability aggregation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Aggregate combines evidence items and the bounded counter-intel adjustment
// into a probability distribution. Claims with little or no evidence default
// toward UNCERTAIN regardless of how the sparse evidence leans.
func (e *Engine) Aggregate(items []model.EvidenceItem, counterAdjustment float64) model.ProbabilityDistribution {
	votes := 0.0
	volume := 0.0

	for _, item := range items {
		volume += math.Abs(item.ValidationPower)
		switch item.Stance {
		case model.StanceSupporting:
			votes += item.ValidationPower
		case model.StanceContradicting:
			votes -= item.ValidationPower
		}
		// Neutral evidence adds volume but no direction
	}

	// Net truthfulness signal in (-1, 1), then the counter-intel shift
	signal := math.Tanh(votes / voteScale)
	adjusted := clamp(signal+counterAdjustment, -1, 1)

	// Certainty mass grows with evidence volume; the remainder stays
	// UNCERTAIN so an evidence-starved claim cannot resolve confidently
	certainty := volume / (volume + volumeSaturation)

	dist := model.ProbabilityDistribution{
		PTrue:      certainty * (1 + adjusted) / 2,
		PFalse:     certainty * (1 - adjusted) / 2,
		PUncertain: 1 - certainty,
	}
	return dist
}

// Rollup computes the video-level truthfulness score and aggregate
// distribution as the evidence-volume-weighted mean over claims, so
// well-evidenced claims dominate speculative ones.
func (e *Engine) Rollup(claims []model.Claim) (float64, model.ProbabilityDistribution) {
	totalWeight := 0.0
	lean := 0.0
	var agg model.ProbabilityDistribution

	for _, c := range claims {
		if c.Verdict == nil {
			continue
		}
		weight := 0.0
		for _, item := range c.Evidence {
			weight += math.Abs(item.ValidationPower)
		}
		if weight == 0 {
			continue
		}
		totalWeight += weight
		lean += weight * c.Verdict.Lean()
		agg.PTrue += weight * c.Verdict.PTrue
		agg.PFalse += weight * c.Verdict.PFalse
		agg.PUncertain += weight * c.Verdict.PUncertain
	}

	if totalWeight == 0 {
		return 0, model.Uncertain()
	}

	agg.PTrue /= totalWeight
	agg.PFalse /= totalWeight
	agg.PUncertain /= totalWeight
	return lean / totalWeight, agg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
