// Package provider defines the contracts for the engine's external
// collaborators: the content analyzer, evidence search backends, and the
// adversarial review/transcript sources. All are treated as black boxes
// that may be slow, rate-limited, or return malformed output.
package provider

import (
	"context"

	"github.com/akovalev/claimsift/internal/model"
)

// VideoSource describes the video under analysis. Download and transcoding
// happen upstream; the engine only sees metadata and transcript text.
type VideoSource struct {
	ID         string
	Title      string
	Channel    string
	Presenter  string
	Transcript string
}

// ContentAnalyzer converts a video into free-text candidate claims.
// May take minutes and may return empty or partially malformed output.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, video VideoSource) ([]model.RawClaim, error)
}

// SearchProvider is a web or academic evidence search backend
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// ReviewSource is a candidate third-party review/debunk source
type ReviewSource struct {
	ID    string
	Title string
	URL   string
	Views int
	Likes int
}

// ReviewSearcher finds third-party content about a subject's credibility,
// not just more evidence for the subject itself
type ReviewSearcher interface {
	SearchReviews(ctx context.Context, subject string) ([]ReviewSource, error)
}

// TranscriptFetcher retrieves accessible transcript or page text for a
// review source. Returns ErrTranscriptUnavailable when the source has none.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, src ReviewSource) (string, error)
}

// CounterClaimExtractor runs a bounded extraction pass over review
// transcript text, returning counter-claims anchored to quoted snippets
type CounterClaimExtractor interface {
	ExtractCounterClaims(ctx context.Context, claimText, transcript string) ([]model.CounterClaim, error)
}
