package evidence

import (
	"strings"

	"github.com/akovalev/claimsift/internal/model"
)

// Lexical stance markers applied to the snippet relative to the claim text.
// The signal is deliberately lightweight; ties default to NEUTRAL.
var supportingMarkers = []string{
	"confirmed", "verified", "supports the claim", "consistent with",
	"is accurate", "holds up", "corroborated", "substantiated",
	"evidence shows", "found to be true",
}

var contradictingMarkers = []string{
	"debunked", "false", "no evidence", "misleading", "fraud", "scam",
	"myth", "disputed", "retracted", "denies", "denied", "refuted",
	"not supported", "unfounded", "baseless", "contradicts",
}

// classifyStance assigns SUPPORTING, CONTRADICTING, or NEUTRAL from the
// snippet's lexical signal
func classifyStance(claimText, snippet string) model.Stance {
	lower := strings.ToLower(snippet)

	score := 0
	for _, m := range supportingMarkers {
		if strings.Contains(lower, m) {
			score++
		}
	}
	for _, m := range contradictingMarkers {
		if strings.Contains(lower, m) {
			score--
		}
	}

	switch {
	case score > 0:
		return model.StanceSupporting
	case score < 0:
		return model.StanceContradicting
	default:
		return model.StanceNeutral
	}
}
