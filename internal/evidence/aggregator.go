// Package evidence scores and groups raw search results into weighted
// evidence items: source typing, validation power, and stance.
package evidence

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/akovalev/claimsift/internal/model"
)

// Validation power bases per source type. The freshness bonus and
// historical-credibility adjustment move these within [-1.0, +1.5].
var basePower = map[model.SourceType]float64{
	model.SourcePeerReviewed: 1.2,
	model.SourceAcademic:     0.8,
	model.SourceNews:         0.5,
	model.SourceReviewVideo:  0.3,
	model.SourceGeneralWeb:   0.2,
	model.SourceLowQuality:   -0.2,
	model.SourcePressRelease: -0.8,
}

const (
	powerFloor = -1.0
	powerCeil  = 1.5

	// Per-type invariants enforced after all adjustments
	peerReviewedFloor = 1.0
	pressReleaseCeil  = -0.5

	maxFreshnessBonus = 0.3
	maxCredibilityAdj = 0.2
)

var peerReviewedDomains = map[string]bool{
	"doi.org":                 true,
	"pubmed.ncbi.nlm.nih.gov": true,
	"nature.com":              true,
	"sciencedirect.com":       true,
	"thelancet.com":           true,
	"nejm.org":                true,
	"jamanetwork.com":         true,
	"bmj.com":                 true,
	"plos.org":                true,
	"springer.com":            true,
	"wiley.com":               true,
	"cochranelibrary.com":     true,
}

var newsDomains = map[string]bool{
	"nytimes.com":        true,
	"washingtonpost.com": true,
	"theguardian.com":   true,
	"bbc.com":           true,
	"bbc.co.uk":         true,
	"reuters.com":       true,
	"apnews.com":        true,
	"npr.org":           true,
	"forbes.com":        true,
	"cnn.com":           true,
	"wsj.com":           true,
}

var lowQualityDomains = map[string]bool{
	"answers.com":   true,
	"ehow.com":      true,
	"buzzfeed.com":  true,
	"medium.com":    true,
	"quora.com":     true,
	"pinterest.com": true,
}

var videoDomains = map[string]bool{
	"youtube.com": true,
	"youtu.be":    true,
	"vimeo.com":   true,
	"rumble.com":  true,
}

// Aggregator converts raw search results into deduplicated, weighted
// evidence items for one claim
type Aggregator struct {
	cfg      model.EvidenceConfig
	detector *PressReleaseDetector

	// credibility holds historical per-domain track record in [0,1],
	// 0.5 meaning no adjustment
	credibility map[string]float64

	now func() time.Time
}

// NewAggregator creates an aggregator with the given weighting config
func NewAggregator(cfg model.EvidenceConfig) *Aggregator {
	return &Aggregator{
		cfg:         cfg,
		detector:    NewPressReleaseDetector(),
		credibility: defaultCredibility(),
		now:         time.Now,
	}
}

// defaultCredibility seeds track record data for domains with a known history
func defaultCredibility() map[string]float64 {
	return map[string]float64{
		"reuters.com":  0.9,
		"apnews.com":   0.9,
		"bbc.com":      0.85,
		"nature.com":   0.95,
		"buzzfeed.com": 0.3,
		"medium.com":   0.35,
	}
}

// Aggregate deduplicates results by normalized URL, then assigns source type,
// validation power, and stance to each. For a fixed input and clock the
// output is always identical.
func (a *Aggregator) Aggregate(claim model.Claim, results []model.SearchResult) []model.EvidenceItem {
	retrievedAt := a.now().UTC()

	seen := make(map[string]bool)
	var items []model.EvidenceItem

	for _, r := range results {
		norm, host, ok := normalizeURL(r.URL)
		if !ok || seen[norm] {
			continue
		}
		seen[norm] = true

		sourceType := a.classifySource(claim.Text, host, r)
		power := a.validationPower(sourceType, host, r.PublishedAt, retrievedAt)

		items = append(items, model.EvidenceItem{
			SourceURL:       r.URL,
			Snippet:         r.Snippet,
			RetrievedAt:     retrievedAt,
			PublishedAt:     r.PublishedAt,
			SourceType:      sourceType,
			ValidationPower: power,
			Stance:          classifyStance(claim.Text, r.Snippet),
		})
	}

	return items
}

// classifySource assigns a source type via domain and pattern heuristics.
// Press-release and self-referential detection overrides everything else.
func (a *Aggregator) classifySource(claimText, host string, r model.SearchResult) model.SourceType {
	if a.detector.IsPressRelease(host, r.Snippet) || a.detector.IsSelfReferential(claimText, host) {
		return model.SourcePressRelease
	}

	h := strings.ToLower(strings.TrimPrefix(host, "www."))

	if matchDomain(h, peerReviewedDomains) {
		return model.SourcePeerReviewed
	}
	if strings.HasSuffix(h, ".edu") || strings.HasSuffix(h, ".ac.uk") ||
		strings.HasSuffix(h, ".gov") || strings.Contains(h, "arxiv.org") {
		return model.SourceAcademic
	}
	if matchDomain(h, videoDomains) {
		return model.SourceReviewVideo
	}
	if matchDomain(h, newsDomains) {
		return model.SourceNews
	}
	if matchDomain(h, lowQualityDomains) {
		return model.SourceLowQuality
	}
	return model.SourceGeneralWeb
}

// validationPower combines the per-type base, a freshness bonus with
// exponential age decay, and the domain's historical credibility
func (a *Aggregator) validationPower(st model.SourceType, host string, publishedAt *time.Time, now time.Time) float64 {
	power := basePower[st]

	if publishedAt != nil {
		ageDays := now.Sub(*publishedAt).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		power += maxFreshnessBonus * math.Exp(-ageDays*math.Ln2/a.cfg.FreshnessHalfLife)
	}

	// Press releases get no credibility credit: the penalty applies
	// regardless of where the copy is syndicated
	if st != model.SourcePressRelease {
		h := strings.ToLower(strings.TrimPrefix(host, "www."))
		if cred, ok := a.credibility[h]; ok {
			power += maxCredibilityAdj * (2*cred - 1)
		}
	}

	if power < powerFloor {
		power = powerFloor
	}
	if power > powerCeil {
		power = powerCeil
	}

	switch st {
	case model.SourcePeerReviewed:
		if power < peerReviewedFloor {
			power = peerReviewedFloor
		}
	case model.SourcePressRelease:
		if power > pressReleaseCeil {
			power = pressReleaseCeil
		}
	}

	return power
}

func matchDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for d := range domains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Tracking parameters stripped during URL normalization
var trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "fbclid", "gclid", "ref"}

// normalizeURL canonicalizes a URL for deduplication: lowercased host,
// https/http collapsed, fragment and tracking parameters dropped
func normalizeURL(raw string) (normalized, host string, ok bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return "", "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", false
	}

	parsed.Fragment = ""
	parsed.Host = strings.ToLower(parsed.Host)

	q := parsed.Query()
	for _, p := range trackingParams {
		q.Del(p)
	}
	parsed.RawQuery = q.Encode()

	path := strings.TrimSuffix(parsed.Path, "/")
	key := parsed.Host + path
	if parsed.RawQuery != "" {
		key += "?" + parsed.RawQuery
	}

	return key, parsed.Host, true
}
