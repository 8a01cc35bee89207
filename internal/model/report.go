package model

import "time"

// Report represents the complete analysis of one video
type Report struct {
	VideoID    string    `json:"video_id"`
	Title      string    `json:"title,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Claims      []Claim         `json:"claims"`                 // Selected claims with evidence and verdicts
	FilteredOut []FilteredClaim `json:"filtered_out,omitempty"` // Rejected candidates, retained for audit

	CounterIntel []CounterIntelRecord `json:"counter_intel,omitempty"`

	Summary Summary `json:"summary"`
}

// Summary is the video-level rollup consumed by dashboards
type Summary struct {
	// Truthfulness is the evidence-weighted mean of per-claim p_true - p_false,
	// in [-1, 1]; well-evidenced claims dominate speculative ones
	Truthfulness float64 `json:"truthfulness"`

	Distribution ProbabilityDistribution `json:"distribution"` // Evidence-weighted aggregate verdict

	ClaimsProcessed int `json:"claims_processed"`
	ClaimsFiltered  int `json:"claims_filtered"`
	AbsenceClaims   int `json:"absence_claims"`

	// NoEvidence counts claims whose gathering yielded nothing, by reason code,
	// so uncertainty is explained rather than hidden
	NoEvidence map[string]int `json:"no_evidence,omitempty"`
}
