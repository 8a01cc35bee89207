package evidence

import (
	"regexp"
	"strings"
)

// Known press-release wire and syndication domains
var pressReleaseDomains = map[string]bool{
	"prnewswire.com":      true,
	"businesswire.com":    true,
	"globenewswire.com":   true,
	"newswire.com":        true,
	"prweb.com":           true,
	"einpresswire.com":    true,
	"accesswire.com":      true,
	"openpr.com":          true,
	"pr.com":              true,
	"presswire.com":       true,
	"marketwired.com":     true,
}

// Structural markers of promotional copy disguised as reporting
var pressReleaseMarkers = []string{
	"for immediate release",
	"prnewswire",
	"businesswire",
	"globe newswire",
	"today announced",
	"is pleased to announce",
	"is proud to announce",
	"about the company",
	"media contact:",
	"press contact:",
	"investor relations",
}

var brandTokenRe = regexp.MustCompile(`[^a-z0-9]+`)

// PressReleaseDetector identifies promotional and self-referential sources.
// A source agreeing with the claim is not evidence if it was written by the
// claim's own promoter.
type PressReleaseDetector struct{}

// NewPressReleaseDetector creates a new detector
func NewPressReleaseDetector() *PressReleaseDetector {
	return &PressReleaseDetector{}
}

// IsPressRelease combines domain-list lookup with structural snippet markers
func (d *PressReleaseDetector) IsPressRelease(host, snippet string) bool {
	h := strings.ToLower(strings.TrimPrefix(host, "www."))
	if pressReleaseDomains[h] {
		return true
	}
	for domain := range pressReleaseDomains {
		if strings.HasSuffix(h, "."+domain) {
			return true
		}
	}

	lower := strings.ToLower(snippet)
	hits := 0
	for _, marker := range pressReleaseMarkers {
		if strings.Contains(lower, marker) {
			hits++
		}
	}
	// A single boilerplate phrase can appear in legitimate coverage;
	// two or more is a syndication footprint
	return hits >= 2
}

// IsSelfReferential reports whether the source host belongs to the subject of
// the claim itself, e.g. a supplement brand's own site "verifying" its product
func (d *PressReleaseDetector) IsSelfReferential(claimText, host string) bool {
	h := strings.ToLower(strings.TrimPrefix(host, "www."))
	if i := strings.Index(h, "."); i > 0 {
		h = h[:i]
	}
	brand := brandTokenRe.ReplaceAllString(h, "")
	if len(brand) < 4 {
		// Short tokens ("cnn", "bbc", "pr") produce false positives
		return false
	}

	claim := brandTokenRe.ReplaceAllString(strings.ToLower(claimText), "")
	return strings.Contains(claim, brand)
}
