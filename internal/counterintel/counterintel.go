// Package counterintel runs the adversarial side of the analysis: it hunts
// for third-party review and debunk coverage of a claim's subject, extracts
// snippet-anchored counter-claims from it, and converts them into one bounded
// adjustment to the claim's truth signal. Every failure path degrades to a
// zero adjustment with a diagnostic reason; counter-intelligence never blocks
// a verdict.
package counterintel

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/akovalev/claimsift/internal/model"
	"github.com/akovalev/claimsift/internal/provider"
)

// effectScale converts one counter-claim's weighted credibility into signal
// units. Kept small so a single source can never dominate; the hard cap in
// the config is the outer bound.
const effectScale = 0.08

// Outcome is the result of one adversarial investigation
type Outcome struct {
	// Records holds one entry per review source that yielded counter-claims,
	// or a single diagnostic entry when the investigation came up empty
	Records []model.CounterIntelRecord

	// Adjustment is the capped total applied at verdict aggregation,
	// negative when counter-claims contradict the subject
	Adjustment float64
}

// Module orchestrates review search, transcript retrieval, and
// counter-claim extraction
type Module struct {
	searcher  provider.ReviewSearcher
	fetcher   provider.TranscriptFetcher
	extractor provider.CounterClaimExtractor
	cfg       model.CounterIntelConfig
}

// NewModule wires the adversarial collaborators together
func NewModule(searcher provider.ReviewSearcher, fetcher provider.TranscriptFetcher, extractor provider.CounterClaimExtractor, cfg model.CounterIntelConfig) *Module {
	return &Module{searcher: searcher, fetcher: fetcher, extractor: extractor, cfg: cfg}
}

// Investigate searches for adversarial coverage of the subject and distills
// it into a bounded adjustment for the claim. It never returns an error:
// failed searches, unavailable transcripts, and failed extractions all
// degrade to a zero adjustment carrying the reason.
func (m *Module) Investigate(ctx context.Context, claimText, subject string) Outcome {
	if !m.cfg.Enabled {
		return Outcome{}
	}

	sources, err := m.searcher.SearchReviews(ctx, subject)
	if err != nil {
		log.Printf("counterintel: review search failed for %q: %v", subject, err)
		return diagnostic(model.CounterIntelSearchFailed)
	}
	if len(sources) == 0 {
		return diagnostic(model.CounterIntelNoneFound)
	}
	if m.cfg.MaxSources > 0 && len(sources) > m.cfg.MaxSources {
		sources = sources[:m.cfg.MaxSources]
	}

	var (
		records      []model.CounterIntelRecord
		rawTotal     float64
		transcripts  int
		extractFails int
	)

	for _, src := range sources {
		transcript, err := m.fetcher.FetchTranscript(ctx, src)
		if err != nil {
			if !errors.Is(err, provider.ErrTranscriptUnavailable) {
				log.Printf("counterintel: transcript fetch failed for %s: %v", src.ID, err)
			}
			continue
		}
		transcripts++

		counterClaims, err := m.extractor.ExtractCounterClaims(ctx, claimText, transcript)
		if err != nil {
			extractFails++
			log.Printf("counterintel: extraction failed for %s: %v", src.ID, err)
			continue
		}
		if len(counterClaims) == 0 {
			continue
		}

		weight := credibilityWeight(src.Views, src.Likes)
		record := model.CounterIntelRecord{
			SourceID:          src.ID,
			CredibilityWeight: weight,
		}
		for _, cc := range counterClaims {
			cc.Effect = -effectScale * cc.Credibility * weight
			record.CounterClaims = append(record.CounterClaims, cc)
			record.AppliedAdjustment += cc.Effect
		}
		rawTotal += record.AppliedAdjustment
		records = append(records, record)
	}

	if transcripts == 0 {
		return diagnostic(model.CounterIntelTranscriptsUnavailable)
	}
	if len(records) == 0 {
		if extractFails > 0 && extractFails == transcripts {
			return diagnostic(model.CounterIntelExtractionFailed)
		}
		return diagnostic(model.CounterIntelNoneFound)
	}

	adjustment := clampAdjustment(rawTotal, m.cfg.AdjustmentCap)

	// When the cap bites, scale each record's share so the per-record
	// adjustments still sum to the applied total
	if adjustment != rawTotal && rawTotal != 0 {
		scale := adjustment / rawTotal
		for i := range records {
			records[i].AppliedAdjustment *= scale
		}
	}

	return Outcome{Records: records, Adjustment: adjustment}
}

// credibilityWeight derives a source weight from its engagement counts.
// Sources without metrics get the floor weight rather than zero; a review
// with no view count is still a review.
func credibilityWeight(views, likes int) float64 {
	w := 0.3
	if views > 0 {
		w += 0.4 * math.Min(1, math.Log10(float64(views)+1)/6)
	}
	if likes > 0 {
		w += 0.3 * math.Min(1, math.Log10(float64(likes)+1)/5)
	}
	if w > 1 {
		w = 1
	}
	return w
}

func clampAdjustment(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func diagnostic(reason model.CounterIntelReason) Outcome {
	return Outcome{Records: []model.CounterIntelRecord{{Reason: reason}}}
}
