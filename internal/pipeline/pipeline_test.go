package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akovalev/claimsift/internal/model"
	"github.com/akovalev/claimsift/internal/provider"
)

type stubAnalyzer struct {
	claims []model.RawClaim
	err    error
}

func (a *stubAnalyzer) Analyze(ctx context.Context, video provider.VideoSource) ([]model.RawClaim, error) {
	return a.claims, a.err
}

// stubSearchProvider returns its canned results for every query
type stubSearchProvider struct {
	results []model.SearchResult
	err     error
	calls   int
}

func (s *stubSearchProvider) Name() string { return "stub" }

func (s *stubSearchProvider) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func fastConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.RateLimiting.RequestsPerSecond = 10_000
	cfg.RateLimiting.BurstSize = 10_000
	cfg.Evidence.MaxRetries = 1
	cfg.CounterIntel.Enabled = false
	return cfg
}

func testVideo() provider.VideoSource {
	return provider.VideoSource{
		ID:         "vid-1",
		Title:      "Miracle Supplement Exposed",
		Channel:    "Health Channel",
		Presenter:  "Dr. Jane Smith",
		Transcript: "transcript text",
	}
}

func testRawClaims() []model.RawClaim {
	return []model.RawClaim{
		{Text: "Dr. Jane Smith is a board certified cardiologist at Stanford University", Timestamp: 10, Speaker: "Dr. Jane Smith"},
		{Text: "A 2023 study published in Nature showed 45% improvement in 120 patients", Timestamp: 60},
		{Text: "This supplement was featured in Forbes in March 2024", Timestamp: 120},
	}
}

func TestAnalyzeProducesCompleteReport(t *testing.T) {
	search := &stubSearchProvider{results: []model.SearchResult{
		{URL: "https://pubmed.ncbi.nlm.nih.gov/12345", Title: "Study record", Snippet: "The finding was confirmed and corroborated by independent trials."},
		{URL: "https://reuters.com/article/1", Title: "Coverage", Snippet: "The results were verified by the journal."},
	}}

	p, err := NewPipeline(fastConfig(), &stubAnalyzer{claims: testRawClaims()}, []provider.SearchProvider{search}, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	report, err := p.Analyze(context.Background(), testVideo())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if report.VideoID != "vid-1" {
		t.Errorf("VideoID = %q, want vid-1", report.VideoID)
	}
	if report.Summary.ClaimsProcessed != 3 {
		t.Errorf("ClaimsProcessed = %d, want 3", report.Summary.ClaimsProcessed)
	}
	if len(report.Claims) == 0 {
		t.Fatal("no claims selected")
	}
	for _, c := range report.Claims {
		if c.Verdict == nil {
			t.Errorf("claim %q has no verdict", c.Text)
			continue
		}
		if !c.Verdict.Valid() {
			t.Errorf("claim %q has invalid distribution %+v", c.Text, *c.Verdict)
		}
		if !c.Synthesized && len(c.Evidence) == 0 {
			t.Errorf("claim %q gathered no evidence", c.Text)
		}
	}
	if report.Summary.Truthfulness <= 0 {
		t.Errorf("Truthfulness = %g, want positive with supporting peer-reviewed evidence", report.Summary.Truthfulness)
	}
}

func TestAnalyzeNoSearchResultsStaysUncertain(t *testing.T) {
	search := &stubSearchProvider{}

	p, err := NewPipeline(fastConfig(), &stubAnalyzer{claims: testRawClaims()}, []provider.SearchProvider{search}, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	report, err := p.Analyze(context.Background(), testVideo())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, c := range report.Claims {
		if c.Verdict == nil {
			t.Fatalf("claim %q has no verdict", c.Text)
		}
		if c.Verdict.Label() != "UNCERTAIN" {
			t.Errorf("claim %q verdict = %s, want UNCERTAIN without evidence", c.Text, c.Verdict.Label())
		}
	}
	if report.Summary.NoEvidence["no_results"] != len(report.Claims) {
		t.Errorf("NoEvidence = %v, want no_results for all %d claims", report.Summary.NoEvidence, len(report.Claims))
	}
}

func TestAnalyzeSearchFailureIsRecordedNotFatal(t *testing.T) {
	search := &stubSearchProvider{err: errors.New("backend unreachable")}

	p, err := NewPipeline(fastConfig(), &stubAnalyzer{claims: testRawClaims()}, []provider.SearchProvider{search}, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	report, err := p.Analyze(context.Background(), testVideo())
	if err != nil {
		t.Fatalf("Analyze() error = %v, search failures must not abort the run", err)
	}
	if report.Summary.NoEvidence["search_failed"] != len(report.Claims) {
		t.Errorf("NoEvidence = %v, want search_failed for all claims", report.Summary.NoEvidence)
	}
}

func TestAnalyzeAnalyzerErrorIsFatal(t *testing.T) {
	p, err := NewPipeline(fastConfig(), &stubAnalyzer{err: errors.New("invalid api key")}, []provider.SearchProvider{&stubSearchProvider{}}, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	if _, err := p.Analyze(context.Background(), testVideo()); err == nil {
		t.Error("Analyze() should fail when the analyzer fails")
	}
}

func TestAnalyzeMalformedAnalyzerOutputYieldsEmptyReport(t *testing.T) {
	analyzer := &stubAnalyzer{err: &provider.MalformedResponseError{Provider: "stub", Err: errors.New("prose instead of JSON")}}
	p, err := NewPipeline(fastConfig(), analyzer, []provider.SearchProvider{&stubSearchProvider{}}, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	report, err := p.Analyze(context.Background(), testVideo())
	if err != nil {
		t.Fatalf("Analyze() error = %v, malformed output should degrade to empty", err)
	}
	if report.Summary.ClaimsProcessed != 0 {
		t.Errorf("ClaimsProcessed = %d, want 0", report.Summary.ClaimsProcessed)
	}
}

func TestNewPipelineRejectsInvalidConfig(t *testing.T) {
	cfg := fastConfig()
	cfg.CounterIntel.AdjustmentCap = 2.0

	if _, err := NewPipeline(cfg, &stubAnalyzer{}, []provider.SearchProvider{&stubSearchProvider{}}, nil); err == nil {
		t.Error("NewPipeline() should reject an out-of-range adjustment cap")
	}
}

func TestNewPipelineRequiresCollaborators(t *testing.T) {
	if _, err := NewPipeline(fastConfig(), nil, []provider.SearchProvider{&stubSearchProvider{}}, nil); err == nil {
		t.Error("NewPipeline() should require an analyzer")
	}
	if _, err := NewPipeline(fastConfig(), &stubAnalyzer{}, nil, nil); err == nil {
		t.Error("NewPipeline() should require a search provider")
	}
}

func TestRenderReportWritesOutputs(t *testing.T) {
	search := &stubSearchProvider{results: []model.SearchResult{
		{URL: "https://reuters.com/a", Snippet: "confirmed by officials"},
	}}
	p, err := NewPipeline(fastConfig(), &stubAnalyzer{claims: testRawClaims()}, []provider.SearchProvider{search}, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	report, err := p.Analyze(context.Background(), testVideo())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	if err := p.RenderReport(report, jsonPath, mdPath); err != nil {
		t.Fatalf("RenderReport() error = %v", err)
	}

	md := readFile(t, mdPath)
	if !strings.Contains(md, "Miracle Supplement Exposed") {
		t.Error("markdown report missing the video title")
	}
	if !strings.Contains(md, "## Claims") {
		t.Error("markdown report missing the claims section")
	}
	if readFile(t, jsonPath) == "" {
		t.Error("JSON report is empty")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
