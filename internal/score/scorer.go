package score

import (
	"github.com/akovalev/claimsift/internal/model"
)

// AbsenceSpecificity is the fixed specificity for absence claims: they name
// a precise missing fact, so the additive features do not apply.
const AbsenceSpecificity = 85

// Scorer computes specificity, claim type, and verifiability for claim text.
// All methods are pure functions of the text: no I/O, no randomness.
type Scorer struct {
	classifier *Classifier
}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{
		classifier: NewClassifier(),
	}
}

// Score calculates the 0-100 specificity score as a weighted sum of four
// capped sub-scores, with a transparent breakdown
func (s *Scorer) Score(text string) (int, map[string]int) {
	properNouns := scoreProperNouns(text)
	temporal := scoreTemporal(text)
	quantitative := scoreQuantitative(text)
	attribution := scoreAttribution(text)

	total := properNouns + temporal + quantitative + attribution
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return total, map[string]int{
		"proper_nouns": properNouns,
		"temporal":     temporal,
		"quantitative": quantitative,
		"attribution":  attribution,
		"total":        total,
	}
}

// Classify categorizes the claim text
func (s *Scorer) Classify(text string) model.ClaimType {
	return s.classifier.Classify(text)
}

// Apply fills the scoring fields of a claim in place. Text is never modified.
func (s *Scorer) Apply(c *model.Claim) {
	c.Type = s.Classify(c.Text)
	c.Specificity, c.Breakdown = s.Score(c.Text)

	// Absence claims are definitionally specific: the missing fact's
	// existence is a binary lookup
	if c.Type == model.ClaimTypeAbsence {
		c.Specificity = AbsenceSpecificity
		c.Breakdown["override"] = AbsenceSpecificity
	}

	c.Verifiability = s.PredictVerifiability(c.Text, c.Type)
}
