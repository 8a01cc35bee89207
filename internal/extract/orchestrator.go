// Package extract turns raw analyzer output into the final scored claim set
// through a multi-pass sequence: score, filter, synthesize absence claims,
// rank, and select under a diversity constraint.
package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/akovalev/claimsift/internal/model"
	"github.com/akovalev/claimsift/internal/score"
	"github.com/akovalev/claimsift/internal/synth"
)

// Composite ranking weights
const (
	weightVerifiability  = 0.4
	weightSpecificity    = 0.3
	weightTypePriority   = 0.2
	weightTemporalSpread = 0.1
)

// typePriority rewards rarer, high-value claim types over common low-value ones
var typePriority = map[model.ClaimType]float64{
	model.ClaimTypeAbsence:              1.00,
	model.ClaimTypeCredential:           0.90,
	model.ClaimTypeStudy:                0.75,
	model.ClaimTypePublication:          0.65,
	model.ClaimTypeCelebrityEndorsement: 0.50,
	model.ClaimTypeOther:                0.35,
	model.ClaimTypeProductEfficacy:      0.25,
}

// Orchestrator sequences the extraction passes over an ordered claim set
type Orchestrator struct {
	scorer      *score.Scorer
	synthesizer *synth.Synthesizer
	scoring     model.ScoringConfig
	selection   model.SelectionConfig
}

// NewOrchestrator creates an orchestrator with explicit thresholds from config
func NewOrchestrator(cfg *model.Config) *Orchestrator {
	return &Orchestrator{
		scorer:      score.NewScorer(),
		synthesizer: synth.NewSynthesizer(cfg.Selection.MaxAbsence),
		scoring:     cfg.Scoring,
		selection:   cfg.Selection,
	}
}

// Result is the outcome of a full extraction run. Rejected candidates are
// retained in FilteredOut for audit, never silently dropped.
type Result struct {
	Selected     []model.Claim
	FilteredOut  []model.FilteredClaim
	RawCount     int
	AbsenceAdded int
}

// Run executes RAW -> SCORED -> FILTERED -> ABSENCE_AUGMENTED -> RANKED -> SELECTED
func (o *Orchestrator) Run(raw []model.RawClaim, ctx synth.ContentContext) *Result {
	result := &Result{RawCount: len(raw)}

	// RAW: tolerate malformed analyzer output
	var claims []model.Claim
	for _, rc := range raw {
		text := strings.TrimSpace(rc.Text)
		if text == "" {
			continue
		}
		claims = append(claims, model.Claim{
			Text:           text,
			Timestamp:      rc.Timestamp,
			Speaker:        rc.Speaker,
			SourceModality: rc.Modality,
		})
	}

	// SCORED
	for i := range claims {
		o.scorer.Apply(&claims[i])
	}

	// FILTERED
	var survivors []model.Claim
	for _, c := range claims {
		switch {
		case c.Type == model.ClaimTypeConspiracyTheory:
			// Declared unverifiable: not worth evidence-gathering resources
			result.FilteredOut = append(result.FilteredOut, model.FilteredClaim{
				Claim:  c,
				Reason: "conspiracy_theory claims are excluded from verification",
			})
		case c.Specificity < o.scoring.MinSpecificity && c.Verifiability < o.scoring.MinVerifiability:
			result.FilteredOut = append(result.FilteredOut, model.FilteredClaim{
				Claim: c,
				Reason: fmt.Sprintf("below thresholds: specificity %d < %d and verifiability %.2f < %.2f",
					c.Specificity, o.scoring.MinSpecificity, c.Verifiability, o.scoring.MinVerifiability),
			})
		default:
			survivors = append(survivors, c)
		}
	}

	// ABSENCE_AUGMENTED
	absence := o.synthesizer.Synthesize(survivors, ctx)
	for i := range absence {
		o.scorer.Apply(&absence[i])
	}
	result.AbsenceAdded = len(absence)
	survivors = append(survivors, absence...)

	// RANKED
	spreads := temporalSpreads(survivors)
	for i := range survivors {
		survivors[i].CompositeRank = composite(&survivors[i], spreads[i])
	}
	sort.SliceStable(survivors, func(a, b int) bool {
		if survivors[a].CompositeRank != survivors[b].CompositeRank {
			return survivors[a].CompositeRank > survivors[b].CompositeRank
		}
		return survivors[a].Text < survivors[b].Text
	})

	// SELECTED
	result.Selected = o.selectDiverse(survivors)
	return result
}

// composite blends the scoring dimensions into a single selection ordering
func composite(c *model.Claim, spread float64) float64 {
	prio, ok := typePriority[c.Type]
	if !ok {
		prio = typePriority[model.ClaimTypeOther]
	}
	return weightVerifiability*c.Verifiability +
		weightSpecificity*float64(c.Specificity)/100.0 +
		weightTypePriority*prio +
		weightTemporalSpread*spread
}

// temporalSpreads scores how evenly each claim's timestamp is spaced from its
// neighbors, in [0,1]. Claims without timestamps get a neutral 0.5.
func temporalSpreads(claims []model.Claim) []float64 {
	spreads := make([]float64, len(claims))

	var stamps []float64
	for _, c := range claims {
		if c.Timestamp > 0 {
			stamps = append(stamps, c.Timestamp)
		}
	}
	if len(stamps) < 2 {
		for i := range spreads {
			spreads[i] = 0.5
		}
		return spreads
	}

	sorted := append([]float64(nil), stamps...)
	sort.Float64s(sorted)
	span := sorted[len(sorted)-1] - sorted[0]
	if span <= 0 {
		for i := range spreads {
			spreads[i] = 0.5
		}
		return spreads
	}
	// Even spacing would put claims this far apart
	evenGap := span / float64(len(sorted))

	for i, c := range claims {
		if c.Timestamp <= 0 {
			spreads[i] = 0.5
			continue
		}
		nearest := math.Inf(1)
		for _, s := range sorted {
			if s == c.Timestamp {
				continue
			}
			if d := math.Abs(s - c.Timestamp); d < nearest {
				nearest = d
			}
		}
		if math.IsInf(nearest, 1) {
			spreads[i] = 0.5
			continue
		}
		spread := nearest / evenGap
		if spread > 1 {
			spread = 1
		}
		spreads[i] = spread
	}
	return spreads
}

// selectDiverse takes the top-K claims by composite rank while guaranteeing
// that every claim type present in the ranked set keeps at least one slot,
// so a single dominant type cannot crowd out the rest.
func (o *Orchestrator) selectDiverse(ranked []model.Claim) []model.Claim {
	k := o.selection.TargetMax
	if len(ranked) <= k {
		// Fewer survivors than the target range: all pass through
		return ranked
	}

	selected := append([]model.Claim(nil), ranked[:k]...)

	presentTypes := make(map[model.ClaimType]bool)
	for _, c := range ranked {
		presentTypes[c.Type] = true
	}

	// Walk missing types in a fixed order for determinism
	var missing []model.ClaimType
	for t := range presentTypes {
		if !containsType(selected, t) {
			missing = append(missing, t)
		}
	}
	sort.Slice(missing, func(a, b int) bool { return missing[a] < missing[b] })

	for _, t := range missing {
		best, ok := bestOfType(ranked, t)
		if !ok {
			continue
		}
		// Evict the lowest-ranked claim whose type holds more than one slot
		evict := -1
		for i := len(selected) - 1; i >= 0; i-- {
			if countType(selected, selected[i].Type) > 1 {
				evict = i
				break
			}
		}
		if evict < 0 {
			break
		}
		selected[evict] = best
		sort.SliceStable(selected, func(a, b int) bool {
			if selected[a].CompositeRank != selected[b].CompositeRank {
				return selected[a].CompositeRank > selected[b].CompositeRank
			}
			return selected[a].Text < selected[b].Text
		})
	}

	return selected
}

func containsType(claims []model.Claim, t model.ClaimType) bool {
	return countType(claims, t) > 0
}

func countType(claims []model.Claim, t model.ClaimType) int {
	n := 0
	for _, c := range claims {
		if c.Type == t {
			n++
		}
	}
	return n
}

func bestOfType(ranked []model.Claim, t model.ClaimType) (model.Claim, bool) {
	for _, c := range ranked {
		if c.Type == t {
			return c, true
		}
	}
	return model.Claim{}, false
}
