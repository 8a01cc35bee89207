// Package pipeline orchestrates the complete analysis of one video: claim
// extraction and selection, concurrent evidence gathering, adversarial
// counter-intelligence, verdict aggregation, and report rendering.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/akovalev/claimsift/internal/counterintel"
	"github.com/akovalev/claimsift/internal/evidence"
	"github.com/akovalev/claimsift/internal/extract"
	"github.com/akovalev/claimsift/internal/model"
	"github.com/akovalev/claimsift/internal/provider"
	"github.com/akovalev/claimsift/internal/query"
	"github.com/akovalev/claimsift/internal/synth"
	"github.com/akovalev/claimsift/internal/verdict"
	"github.com/akovalev/claimsift/internal/worker"
)

// No-evidence reason codes reported in the summary
const (
	reasonNoResults    = "no_results"
	reasonSearchFailed = "search_failed"
)

// Pipeline wires the analysis stages together
type Pipeline struct {
	analyzer     provider.ContentAnalyzer
	searchers    []provider.SearchProvider
	orchestrator *extract.Orchestrator
	strategist   *query.Strategist
	aggregator   *evidence.Aggregator
	counter      *counterintel.Module // Nil when counter-intel is disabled
	engine       *verdict.Engine
	pool         *worker.Pool
	limiter      *worker.Limiter
	renderer     *Renderer
	config       *model.Config
}

// NewPipeline builds a pipeline from configuration and collaborators.
// Configuration violations are fatal here, before any network traffic.
func NewPipeline(cfg *model.Config, analyzer provider.ContentAnalyzer, searchers []provider.SearchProvider, counter *counterintel.Module) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if analyzer == nil {
		return nil, fmt.Errorf("pipeline: content analyzer is required")
	}
	if len(searchers) == 0 {
		return nil, fmt.Errorf("pipeline: at least one search provider is required")
	}

	return &Pipeline{
		analyzer:     analyzer,
		searchers:    searchers,
		orchestrator: extract.NewOrchestrator(cfg),
		strategist:   query.NewStrategist(),
		aggregator:   evidence.NewAggregator(cfg.Evidence),
		counter:      counter,
		engine:       verdict.NewEngine(),
		pool:         worker.NewPool(cfg.Concurrency.ClaimWorkers),
		limiter:      worker.NewLimiter(cfg.RateLimiting),
		renderer:     NewRenderer(cfg.Output.IncludeFooter),
		config:       cfg,
	}, nil
}

// Analyze runs the full pipeline over one video and produces its report.
// Per-claim failures degrade that claim toward UNCERTAIN; only analyzer
// failure or cancellation aborts the run.
func (p *Pipeline) Analyze(ctx context.Context, video provider.VideoSource) (*model.Report, error) {
	raw, err := p.extractRaw(ctx, video)
	if err != nil {
		return nil, fmt.Errorf("analyze content: %w", err)
	}

	extraction := p.orchestrator.Run(raw, synth.ContentContext{
		VideoTitle:  video.Title,
		ChannelName: video.Channel,
		Presenter:   video.Presenter,
	})

	claims := make([]*model.Claim, len(extraction.Selected))
	for i := range extraction.Selected {
		claims[i] = &extraction.Selected[i]
	}

	var mu sync.Mutex
	var counterRecs []model.CounterIntelRecord
	noEvidence := make(map[string]int)

	p.pool.Process(ctx, claims, func(ctx context.Context, claim *model.Claim) error {
		results, searchErr := p.gatherResults(ctx, *claim)
		claim.Evidence = p.aggregator.Aggregate(*claim, results)

		adjustment := 0.0
		if p.counter != nil {
			outcome := p.counter.Investigate(ctx, claim.Text, counterSubject(*claim, video))
			adjustment = outcome.Adjustment
			mu.Lock()
			counterRecs = append(counterRecs, outcome.Records...)
			mu.Unlock()
		}

		dist := p.engine.Aggregate(claim.Evidence, adjustment)
		claim.Verdict = &dist

		if len(claim.Evidence) == 0 {
			reason := reasonNoResults
			if searchErr != nil {
				reason = reasonSearchFailed
			}
			mu.Lock()
			noEvidence[reason]++
			mu.Unlock()
		}
		return searchErr
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	truthfulness, aggregate := p.engine.Rollup(extraction.Selected)

	return &model.Report{
		VideoID:      video.ID,
		Title:        video.Title,
		AnalyzedAt:   time.Now().UTC(),
		Claims:       extraction.Selected,
		FilteredOut:  extraction.FilteredOut,
		CounterIntel: counterRecs,
		Summary: model.Summary{
			Truthfulness:    truthfulness,
			Distribution:    aggregate,
			ClaimsProcessed: extraction.RawCount,
			ClaimsFiltered:  len(extraction.FilteredOut),
			AbsenceClaims:   extraction.AbsenceAdded,
			NoEvidence:      noEvidence,
		},
	}, nil
}

// extractRaw calls the content analyzer with retries. Malformed output is
// logged and treated as an empty claim set rather than a failed run.
func (p *Pipeline) extractRaw(ctx context.Context, video provider.VideoSource) ([]model.RawClaim, error) {
	var raw []model.RawClaim
	err := provider.Retry(ctx, p.config.Evidence.MaxRetries, func(ctx context.Context) error {
		var callErr error
		raw, callErr = p.analyzer.Analyze(ctx, video)
		return callErr
	})
	if err != nil {
		if provider.IsMalformed(err) {
			log.Printf("pipeline: analyzer returned unparseable output for %s: %v", video.ID, err)
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// gatherResults runs the claim's query plan across all search providers.
// Fallback queries fire only when the primary ones return nothing; negative
// queries always run so disconfirming sources are represented.
func (p *Pipeline) gatherResults(ctx context.Context, claim model.Claim) ([]model.SearchResult, error) {
	qs := p.strategist.Generate(claim)

	primary, primaryErr := p.search(ctx, qs.Primary)
	results := primary
	if len(primary) == 0 {
		fallback, _ := p.search(ctx, qs.Fallback)
		results = append(results, fallback...)
	}
	negative, negativeErr := p.search(ctx, qs.Negative)
	results = append(results, negative...)

	if len(results) == 0 && (primaryErr != nil || negativeErr != nil) {
		if primaryErr != nil {
			return nil, primaryErr
		}
		return nil, negativeErr
	}
	return results, nil
}

// search fans the queries out to every provider, pacing per provider and
// retrying transient failures. It returns whatever succeeded along with the
// last error, so one dead backend cannot blank out the others.
func (p *Pipeline) search(ctx context.Context, queries []string) ([]model.SearchResult, error) {
	var results []model.SearchResult
	var lastErr error

	for _, q := range queries {
		for _, sp := range p.searchers {
			if err := p.limiter.Wait(ctx, "search://"+sp.Name()); err != nil {
				return results, err
			}

			var batch []model.SearchResult
			err := provider.Retry(ctx, p.config.Evidence.MaxRetries, func(ctx context.Context) error {
				var callErr error
				batch, callErr = sp.Search(ctx, q)
				return callErr
			})
			if err != nil {
				if provider.IsMalformed(err) {
					log.Printf("pipeline: %s returned unparseable results for %q", sp.Name(), q)
					continue
				}
				lastErr = err
				continue
			}
			results = append(results, batch...)
		}
	}
	return results, lastErr
}

// counterSubject picks what the adversarial search should investigate: the
// attributed speaker, then the video's presenter, then the claim itself
func counterSubject(claim model.Claim, video provider.VideoSource) string {
	if claim.Speaker != "" {
		return claim.Speaker
	}
	if video.Presenter != "" {
		return video.Presenter
	}
	return claim.Text
}

// RenderReport writes the report to the requested outputs and prints the
// summary line
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}
	p.renderer.RenderSummary(report)
	return nil
}
