package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/akovalev/claimsift/internal/model"
)

// Renderer writes reports as JSON and Markdown and prints the console summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	title := report.Title
	if title == "" {
		title = report.VideoID
	}
	fmt.Fprintf(&b, "# Claim Analysis: %s\n\n", title)
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))

	s := report.Summary
	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- **Verdict**: %s\n", s.Distribution.Label())
	fmt.Fprintf(&b, "- **Truthfulness**: %+.2f\n", s.Truthfulness)
	fmt.Fprintf(&b, "- **Distribution**: true %.1f%% / false %.1f%% / uncertain %.1f%%\n",
		s.Distribution.PTrue*100, s.Distribution.PFalse*100, s.Distribution.PUncertain*100)
	fmt.Fprintf(&b, "- **Claims**: %d extracted, %d filtered, %d selected (%d absence)\n",
		s.ClaimsProcessed, s.ClaimsFiltered, len(report.Claims), s.AbsenceClaims)
	if len(s.NoEvidence) > 0 {
		var reasons []string
		for reason := range s.NoEvidence {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		var parts []string
		for _, reason := range reasons {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, s.NoEvidence[reason]))
		}
		fmt.Fprintf(&b, "- **No evidence**: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Claims\n\n")
	for i, c := range report.Claims {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, c.Text)
		fmt.Fprintf(&b, "- Type: %s", c.Type)
		if c.Synthesized {
			b.WriteString(" (synthesized)")
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "- Specificity: %d / Verifiability: %.2f\n", c.Specificity, c.Verifiability)
		if c.Verdict != nil {
			fmt.Fprintf(&b, "- Verdict: %s (true %.1f%% / false %.1f%% / uncertain %.1f%%)\n",
				c.Verdict.Label(), c.Verdict.PTrue*100, c.Verdict.PFalse*100, c.Verdict.PUncertain*100)
		}
		if len(c.Evidence) > 0 {
			fmt.Fprintf(&b, "- Evidence (%d):\n", len(c.Evidence))
			for _, e := range c.Evidence {
				fmt.Fprintf(&b, "  - [%s, %s, power %+.2f] %s\n", e.SourceType, e.Stance, e.ValidationPower, e.SourceURL)
			}
		}
		b.WriteString("\n")
	}

	if len(report.FilteredOut) > 0 {
		fmt.Fprintf(&b, "## Filtered Out\n\n")
		for _, fc := range report.FilteredOut {
			fmt.Fprintf(&b, "- %q: %s\n", fc.Claim.Text, fc.Reason)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by claimsift. Verdicts are evidence summaries, not legal determinations.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints the one-screen console summary
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Summary
	title := report.Title
	if title == "" {
		title = report.VideoID
	}

	fmt.Println()
	fmt.Printf("  %s\n", title)
	fmt.Printf("  Verdict: %s (truthfulness %+.2f)\n", s.Distribution.Label(), s.Truthfulness)
	fmt.Printf("  true %.1f%% / false %.1f%% / uncertain %.1f%%\n",
		s.Distribution.PTrue*100, s.Distribution.PFalse*100, s.Distribution.PUncertain*100)
	fmt.Printf("  claims: %d extracted, %d filtered, %d selected (%d absence)\n",
		s.ClaimsProcessed, s.ClaimsFiltered, len(report.Claims), s.AbsenceClaims)
	fmt.Println()
}
