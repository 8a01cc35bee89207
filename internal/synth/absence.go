// Package synth generates absence claims: assertions about information
// conspicuously missing from the content, such as uncited studies or
// unverifiable credentials.
package synth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/akovalev/claimsift/internal/model"
)

// ContentContext is the minimal video context available to the synthesizer
type ContentContext struct {
	VideoTitle  string
	ChannelName string
	Presenter   string // Primary speaker, if identified
}

// Synthesizer derives absence claims from already-extracted claims.
// It is a pure function of its inputs and never re-invokes the analyzer.
type Synthesizer struct {
	maxClaims int
}

// NewSynthesizer creates a synthesizer with a bounded output count
func NewSynthesizer(maxClaims int) *Synthesizer {
	if maxClaims <= 0 {
		maxClaims = 4
	}
	return &Synthesizer{maxClaims: maxClaims}
}

var nameRe = regexp.MustCompile(`(?:Dr\.|Doctor|Professor|Prof\.)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

// Synthesize scans claims whose type implies an expected corroborating fact
// and emits an absence claim for each implied-but-missing fact. Output is
// capped and deduplicated against existing claim texts.
func (s *Synthesizer) Synthesize(claims []model.Claim, ctx ContentContext) []model.Claim {
	seen := make(map[string]bool)
	for _, c := range claims {
		seen[normalize(c.Text)] = true
	}

	subject := ctx.Presenter
	if subject == "" {
		subject = "the presenter"
	}

	var out []model.Claim
	emit := func(text string) {
		if len(out) >= s.maxClaims {
			return
		}
		key := normalize(text)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.Claim{
			Text:        text,
			Synthesized: true,
		})
	}

	// One absence claim per implied-fact category, from the first claim
	// that implies it
	emittedFor := make(map[model.ClaimType]bool)

	for _, c := range claims {
		if emittedFor[c.Type] {
			continue
		}

		switch c.Type {
		case model.ClaimTypeCredential:
			name := extractName(c.Text)
			if name == "" {
				name = subject
			}
			emit(fmt.Sprintf("No license or registration number is given for %s despite the credential claim.", name))
			emittedFor[c.Type] = true

		case model.ClaimTypeStudy:
			emit("No citation, DOI, or journal reference is provided for the study described in the video.")
			emittedFor[c.Type] = true

		case model.ClaimTypePublication:
			emit("No article reference or publication date is given for the media coverage claimed in the video.")
			emittedFor[c.Type] = true

		case model.ClaimTypeProductEfficacy:
			emit("No clinical evidence or trial registration is cited for the product's claimed effects.")
			emittedFor[c.Type] = true
		}

		if len(out) >= s.maxClaims {
			break
		}
	}

	return out
}

// extractName pulls a titled name ("Dr. Jane Smith") out of claim text
func extractName(text string) string {
	m := nameRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
