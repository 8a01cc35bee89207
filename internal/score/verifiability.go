package score

import "github.com/akovalev/claimsift/internal/model"

// AbsenceVerifiabilityFloor is the minimum verifiability for absence claims:
// whether the missing record exists is a direct lookup.
const AbsenceVerifiabilityFloor = 0.85

// verifiabilityPriors are empirically tuned per-type likelihoods that a
// targeted evidence search will resolve the claim
var verifiabilityPriors = map[model.ClaimType]float64{
	model.ClaimTypeAbsence:              0.90,
	model.ClaimTypeCredential:           0.70,
	model.ClaimTypePublication:          0.65,
	model.ClaimTypeStudy:                0.60,
	model.ClaimTypeCelebrityEndorsement: 0.50,
	model.ClaimTypeProductEfficacy:      0.40,
	model.ClaimTypeConspiracyTheory:     0.10,
	model.ClaimTypeOther:                0.35,
}

// PredictVerifiability returns the 0.0-1.0 predicted resolvability of a claim,
// a per-type prior nudged by the specificity score
func (s *Scorer) PredictVerifiability(text string, claimType model.ClaimType) float64 {
	prior, ok := verifiabilityPriors[claimType]
	if !ok {
		prior = verifiabilityPriors[model.ClaimTypeOther]
	}

	// Nudge by up to ±0.05: more specific claims are easier to resolve
	specificity, _ := s.Score(text)
	v := prior + 0.05*(float64(specificity)-50.0)/50.0

	if claimType == model.ClaimTypeAbsence && v < AbsenceVerifiabilityFloor {
		v = AbsenceVerifiabilityFloor
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}
