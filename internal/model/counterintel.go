package model

// CounterIntelRecord is the adversarial evidence bundle attached to a claim
// or to the whole video
type CounterIntelRecord struct {
	SourceID          string         `json:"source_id,omitempty"` // Video or page the counter-claims came from
	CredibilityWeight float64        `json:"credibility_weight"`  // [0.0, 1.0]
	CounterClaims     []CounterClaim `json:"counter_claims,omitempty"`

	// AppliedAdjustment is bounded to the configured cap regardless of how
	// many counter-intel items exist
	AppliedAdjustment float64 `json:"applied_adjustment"`

	// Reason explains an empty record instead of an empty list hiding the cause
	Reason CounterIntelReason `json:"reason,omitempty"`
}

// CounterClaim is one extracted counter-assertion with its anchoring snippet.
// Counter-claims without a quoted snippet are discarded at extraction.
type CounterClaim struct {
	Text        string  `json:"text"`
	Snippet     string  `json:"snippet"`
	Credibility float64 `json:"credibility"` // [0.0, 1.0]
	Effect      float64 `json:"effect"`      // Signed contribution before capping
}

// CounterIntelReason is a diagnostic code for why counter-intelligence
// produced no adjustment
type CounterIntelReason string

const (
	CounterIntelOK                     CounterIntelReason = ""
	CounterIntelNoneFound              CounterIntelReason = "none_found"
	CounterIntelSearchFailed           CounterIntelReason = "search_failed"
	CounterIntelTranscriptsUnavailable CounterIntelReason = "transcripts_unavailable"
	CounterIntelExtractionFailed       CounterIntelReason = "extraction_failed"
)
