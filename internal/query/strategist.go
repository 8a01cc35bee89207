// Package query turns scored claims into type-specific search queries for
// the external evidence providers. It produces text only and performs no I/O.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akovalev/claimsift/internal/model"
)

// QuerySet holds the queries for one claim. Negative queries intentionally
// carry disconfirming vocabulary to surface adversarial sources that a
// purely confirmatory query would miss.
type QuerySet struct {
	Primary  []string `json:"primary"`
	Fallback []string `json:"fallback"`
	Negative []string `json:"negative"`
}

// Strategist generates search queries keyed by claim type
type Strategist struct{}

// NewStrategist creates a new query strategist
func NewStrategist() *Strategist {
	return &Strategist{}
}

var negativeVocabulary = []string{"debunked", "fraud", "fake", "scam"}

// Generate produces primary, fallback, and negative queries for a claim
func (s *Strategist) Generate(claim model.Claim) QuerySet {
	subject := subjectPhrase(claim.Text)

	var qs QuerySet
	switch claim.Type {
	case model.ClaimTypeCredential:
		qs.Primary = []string{
			fmt.Sprintf("%s license verification site:docinfo.org OR site:abms.org", subject),
			fmt.Sprintf("%s medical board registration", subject),
		}
		qs.Fallback = []string{fmt.Sprintf("%s credentials biography", subject)}

	case model.ClaimTypePublication:
		qs.Primary = []string{
			fmt.Sprintf("\"%s\" site:forbes.com OR site:nytimes.com OR site:theguardian.com", subject),
			fmt.Sprintf("%s article coverage", subject),
		}
		qs.Fallback = []string{fmt.Sprintf("%s press mention", subject)}

	case model.ClaimTypeStudy:
		qs.Primary = []string{
			fmt.Sprintf("%s site:pubmed.ncbi.nlm.nih.gov OR site:scholar.google.com", subject),
			fmt.Sprintf("%s peer-reviewed study", subject),
		}
		qs.Fallback = []string{fmt.Sprintf("%s research findings", subject)}

	case model.ClaimTypeAbsence:
		// The inverse of normal verification: search for the missing
		// record itself
		qs.Primary = []string{
			fmt.Sprintf("%s official record", subject),
			fmt.Sprintf("%s registry lookup", subject),
		}
		qs.Fallback = []string{fmt.Sprintf("%s public database", subject)}

	case model.ClaimTypeCelebrityEndorsement:
		qs.Primary = []string{
			fmt.Sprintf("\"%s\" endorsement confirmed", subject),
		}
		qs.Fallback = []string{fmt.Sprintf("%s endorsement denied", subject)}

	case model.ClaimTypeProductEfficacy:
		qs.Primary = []string{
			fmt.Sprintf("%s clinical evidence", subject),
			fmt.Sprintf("%s efficacy trial results", subject),
		}
		qs.Fallback = []string{fmt.Sprintf("%s does it work review", subject)}

	default:
		qs.Primary = []string{subject}
		qs.Fallback = []string{fmt.Sprintf("%s fact check", subject)}
	}

	for _, word := range negativeVocabulary {
		qs.Negative = append(qs.Negative, fmt.Sprintf("%s %s", subject, word))
	}

	return qs
}

var (
	fillerRe     = regexp.MustCompile(`(?i)\b(the|a|an|is|are|was|were|has|have|had|that|this|these|those|of|for|to|in|on|at|by|and|or|with|despite)\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	punctRe      = regexp.MustCompile(`[^\w\s%.-]`)
)

const maxSubjectWords = 8

// subjectPhrase condenses claim text into a searchable phrase: punctuation
// and filler words removed, truncated to a bounded word count
func subjectPhrase(text string) string {
	t := punctRe.ReplaceAllString(text, " ")
	t = fillerRe.ReplaceAllString(t, " ")
	t = whitespaceRe.ReplaceAllString(strings.TrimSpace(t), " ")

	words := strings.Fields(t)
	if len(words) > maxSubjectWords {
		words = words[:maxSubjectWords]
	}
	return strings.Join(words, " ")
}
