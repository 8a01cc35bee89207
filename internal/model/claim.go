package model

// Claim represents a candidate factual assertion extracted from a video
type Claim struct {
	Text           string  `json:"text"`                      // The claim text itself (immutable once created)
	Timestamp      float64 `json:"timestamp,omitempty"`       // Seconds into the video, if known
	Speaker        string  `json:"speaker,omitempty"`         // Attributed speaker, if known
	SourceModality string  `json:"source_modality,omitempty"` // "audio", "visual", "caption"

	Specificity   int            `json:"specificity"`             // 0-100
	Breakdown     map[string]int `json:"breakdown,omitempty"`     // Transparent sub-score data
	Type          ClaimType      `json:"type"`                    // Category, see ClaimType
	Verifiability float64        `json:"verifiability"`           // 0.0-1.0 predicted resolvability
	CompositeRank float64        `json:"composite_rank"`          // Derived, used only for selection ordering
	Synthesized   bool           `json:"synthesized,omitempty"`   // True for absence claims generated in-pipeline

	Evidence []EvidenceItem           `json:"evidence,omitempty"` // Empty until evidence gathering runs
	Verdict  *ProbabilityDistribution `json:"verdict,omitempty"`  // Nil until the probability engine runs
}

// RawClaim is a claim as returned by the external content analyzer,
// before any scoring or filtering
type RawClaim struct {
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp,omitempty"`
	Speaker   string  `json:"speaker,omitempty"`
	Modality  string  `json:"modality,omitempty"`
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeAbsence              ClaimType = "absence"               // Expected corroborating fact is missing
	ClaimTypeCredential           ClaimType = "credential"            // Degrees, licenses, professional titles
	ClaimTypePublication          ClaimType = "publication"           // Media coverage ("featured in Forbes")
	ClaimTypeStudy                ClaimType = "study"                 // Research findings, trials, statistics
	ClaimTypeProductEfficacy      ClaimType = "product_efficacy"      // Product/treatment effect claims
	ClaimTypeCelebrityEndorsement ClaimType = "celebrity_endorsement" // Named-person endorsements
	ClaimTypeConspiracyTheory     ClaimType = "conspiracy_theory"     // Suppression narratives (filtered out)
	ClaimTypeOther                ClaimType = "other"                 // Default
)

// FilteredClaim is a rejected candidate retained for audit, never silently dropped
type FilteredClaim struct {
	Claim  Claim  `json:"claim"`
	Reason string `json:"reason"` // Why the candidate was removed
}
