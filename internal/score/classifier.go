package score

import (
	"regexp"
	"strings"

	"github.com/akovalev/claimsift/internal/model"
)

// Classifier assigns a claim type from category-specific lexical patterns.
// Rules are evaluated in priority order, first match wins, default OTHER.
type Classifier struct {
	rules []classifierRule
}

type classifierRule struct {
	claimType model.ClaimType
	keywords  []string
	patterns  []*regexp.Regexp
}

// NewClassifier creates a classifier with the built-in rule list
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []classifierRule{
			{
				claimType: model.ClaimTypeAbsence,
				keywords: []string{
					"is not provided", "is not given", "is never mentioned",
					"fails to cite", "does not cite", "no citation",
					"without citing", "is missing from", "never discloses",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\bno\b.*\b(license|credential|citation|reference|source|degree|registration)\b.*\b(given|provided|shown|mentioned|cited)\b`),
				},
			},
			{
				claimType: model.ClaimTypeConspiracyTheory,
				keywords: []string{
					"don't want you to know", "doesn't want you to know",
					"cover-up", "cover up", "suppressed", "suppressing",
					"hidden truth", "wake up", "big pharma", "the elites",
					"mainstream media won't", "they are hiding",
				},
			},
			{
				claimType: model.ClaimTypeCredential,
				keywords: []string{
					"board-certified", "board certified", "licensed",
					"phd", "ph.d", "m.d.", "md from", "doctorate",
					"degree from", "professor at", "certified in",
					"fellowship", "residency at",
				},
				patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(dr\.|doctor)\s+[A-Z][a-z]+`),
					regexp.MustCompile(`(?i)\b(graduated|trained)\s+(from|at)\s+[A-Z]`),
				},
			},
			{
				claimType: model.ClaimTypeStudy,
				keywords: []string{
					"study", "studies show", "clinical trial", "peer-reviewed",
					"peer reviewed", "research shows", "researchers found",
					"journal of", "meta-analysis", "participants", "double-blind",
				},
			},
			{
				claimType: model.ClaimTypePublication,
				keywords: []string{
					"featured in", "published in", "as seen in", "reported by",
					"covered by", "wrote about", "forbes", "new york times",
					"washington post", "the guardian", "bbc", "cnn", "reuters",
				},
			},
			{
				claimType: model.ClaimTypeCelebrityEndorsement,
				keywords: []string{
					"endorsed by", "recommended by", "swears by", "celebrity",
					"celebrities use", "famous", "as used by",
				},
			},
			{
				claimType: model.ClaimTypeProductEfficacy,
				keywords: []string{
					"cures", "cure for", "heals", "eliminates", "reverses",
					"boosts", "guaranteed to", "proven to", "clinically proven",
					"results in", "works for everyone", "melts away",
				},
			},
		},
	}
}

// Classify returns the claim type for the given text
func (c *Classifier) Classify(text string) model.ClaimType {
	lower := strings.ToLower(text)

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.claimType
			}
		}
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				return rule.claimType
			}
		}
	}

	return model.ClaimTypeOther
}
