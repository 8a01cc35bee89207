package model

import "time"

// EvidenceItem represents one piece of external support or contradiction for a claim
type EvidenceItem struct {
	SourceURL   string     `json:"source_url"`
	Snippet     string     `json:"snippet,omitempty"`
	RetrievedAt time.Time  `json:"retrieved_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	SourceType      SourceType `json:"source_type"`
	ValidationPower float64    `json:"validation_power"` // [-1.0, +1.5], signed weight independent of stance
	Stance          Stance     `json:"stance"`
}

// SourceType classifies the origin quality of an evidence source
type SourceType string

const (
	SourcePeerReviewed SourceType = "peer_reviewed" // Journals, DOI-resolvable papers
	SourceAcademic     SourceType = "academic"      // University/institute pages, preprints
	SourceNews         SourceType = "news"          // Established news outlets
	SourceGeneralWeb   SourceType = "general_web"   // Everything without a stronger signal
	SourcePressRelease SourceType = "press_release" // Promotional content, incl. self-referential sources
	SourceReviewVideo  SourceType = "review_video"  // Third-party review/debunk video
	SourceLowQuality   SourceType = "low_quality"   // Content farms, link aggregators
)

// Stance is the relationship of a piece of evidence to the claim text
type Stance string

const (
	StanceSupporting    Stance = "supporting"
	StanceContradicting Stance = "contradicting"
	StanceNeutral       Stance = "neutral"
)

// SearchResult is a raw hit from an external evidence provider,
// before aggregation assigns type, power, and stance
type SearchResult struct {
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	Snippet     string     `json:"snippet,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Provider    string     `json:"provider,omitempty"` // Which backend found this result
}
