package evidence

import (
	"testing"
	"time"

	"github.com/akovalev/claimsift/internal/model"
)

func testAggregator() *Aggregator {
	a := NewAggregator(model.DefaultConfig().Evidence)
	a.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return a
}

func TestAggregator_DedupeByNormalizedURL(t *testing.T) {
	a := testAggregator()
	claim := model.Claim{Text: "A 2020 study found improvement."}

	results := []model.SearchResult{
		{URL: "https://example.com/article", Snippet: "details"},
		{URL: "http://EXAMPLE.com/article/", Snippet: "details again"},
		{URL: "https://example.com/article?utm_source=feed", Snippet: "details once more"},
		{URL: "https://example.com/other", Snippet: "different page"},
	}

	items := a.Aggregate(claim, results)
	if len(items) != 2 {
		t.Errorf("Expected 2 items after dedupe, got %d", len(items))
	}
}

func TestAggregator_PressReleasePenalty(t *testing.T) {
	a := testAggregator()
	claim := model.Claim{Text: "VitaBoost supplement cures arthritis."}

	fresh := time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC)
	results := []model.SearchResult{
		// Wire domain
		{URL: "https://www.prnewswire.com/vitaboost-launch", Snippet: "VitaBoost confirmed effective, study verified the results", PublishedAt: &fresh},
		// Structural markers, neutral domain
		{URL: "https://some-blog.com/post", Snippet: "FOR IMMEDIATE RELEASE: the company is pleased to announce. Media contact: press@x.com"},
		// Self-referential: the brand's own site
		{URL: "https://vitaboost.com/science", Snippet: "Our product is clinically verified and confirmed"},
	}

	items := a.Aggregate(claim, results)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	for _, item := range items {
		if item.SourceType != model.SourcePressRelease {
			t.Errorf("%s: expected press_release source type, got %s", item.SourceURL, item.SourceType)
		}
		// Agreeing content from the claim's own promoter is never positive
		// evidence, regardless of stance or freshness
		if item.ValidationPower > -0.5 {
			t.Errorf("%s: press release validation power %g, expected <= -0.5", item.SourceURL, item.ValidationPower)
		}
	}
}

func TestAggregator_PeerReviewedFloor(t *testing.T) {
	a := testAggregator()
	claim := model.Claim{Text: "A study found improvement."}

	old := time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []model.SearchResult{
		{URL: "https://doi.org/10.1001/jama.2019.1234", Snippet: "study results"},
		{URL: "https://pubmed.ncbi.nlm.nih.gov/12345", Snippet: "trial", PublishedAt: &old},
	}

	items := a.Aggregate(claim, results)
	for _, item := range items {
		if item.SourceType != model.SourcePeerReviewed {
			t.Errorf("%s: expected peer_reviewed, got %s", item.SourceURL, item.SourceType)
		}
		if item.ValidationPower < 1.0 {
			t.Errorf("%s: peer-reviewed power %g, expected >= 1.0", item.SourceURL, item.ValidationPower)
		}
		if item.ValidationPower > 1.5 {
			t.Errorf("%s: power %g exceeds ceiling 1.5", item.SourceURL, item.ValidationPower)
		}
	}
}

func TestAggregator_FreshnessDecay(t *testing.T) {
	a := testAggregator()
	claim := model.Claim{Text: "Some claim."}

	fresh := time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC)
	stale := time.Date(2016, 5, 25, 0, 0, 0, 0, time.UTC)
	results := []model.SearchResult{
		{URL: "https://site-one.org/a", PublishedAt: &fresh},
		{URL: "https://site-two.org/b", PublishedAt: &stale},
	}

	items := a.Aggregate(claim, results)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ValidationPower <= items[1].ValidationPower {
		t.Errorf("Expected fresh source power (%g) > stale source power (%g)",
			items[0].ValidationPower, items[1].ValidationPower)
	}
}

func TestAggregator_SourceTypeHeuristics(t *testing.T) {
	a := testAggregator()
	claim := model.Claim{Text: "Some claim."}

	tests := []struct {
		url  string
		want model.SourceType
	}{
		{"https://www.nature.com/articles/x", model.SourcePeerReviewed},
		{"https://med.stanford.edu/research", model.SourceAcademic},
		{"https://www.cdc.gov/page", model.SourceAcademic},
		{"https://www.reuters.com/article", model.SourceNews},
		{"https://www.youtube.com/watch?v=abc", model.SourceReviewVideo},
		{"https://www.quora.com/question", model.SourceLowQuality},
		{"https://random-site.net/page", model.SourceGeneralWeb},
	}

	for _, tt := range tests {
		items := a.Aggregate(claim, []model.SearchResult{{URL: tt.url}})
		if len(items) != 1 {
			t.Fatalf("%s: expected 1 item", tt.url)
		}
		if items[0].SourceType != tt.want {
			t.Errorf("%s: got %s, want %s", tt.url, items[0].SourceType, tt.want)
		}
	}
}

func TestAggregator_PowerBounds(t *testing.T) {
	a := testAggregator()
	claim := model.Claim{Text: "Some claim."}

	urls := []string{
		"https://doi.org/10.1/x",
		"https://prnewswire.com/y",
		"https://buzzfeed.com/z",
		"https://example.org/w",
	}
	for _, u := range urls {
		items := a.Aggregate(claim, []model.SearchResult{{URL: u}})
		if len(items) != 1 {
			t.Fatalf("%s: expected 1 item", u)
		}
		p := items[0].ValidationPower
		if p < -1.0 || p > 1.5 {
			t.Errorf("%s: validation power %g outside [-1.0, 1.5]", u, p)
		}
	}
}

func TestClassifyStance(t *testing.T) {
	tests := []struct {
		snippet string
		want    model.Stance
	}{
		{"The claim was confirmed and corroborated by multiple outlets.", model.StanceSupporting},
		{"This was thoroughly debunked; there is no evidence for it.", model.StanceContradicting},
		{"The presenter discussed the topic at length.", model.StanceNeutral},
		// Mixed signal tie defaults to neutral
		{"Some say it was confirmed, others say it was debunked.", model.StanceNeutral},
		{"", model.StanceNeutral},
	}

	for _, tt := range tests {
		if got := classifyStance("claim text", tt.snippet); got != tt.want {
			t.Errorf("classifyStance(%q) = %s, want %s", tt.snippet, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	a, hostA, okA := normalizeURL("https://Example.com/path/?utm_source=x&fbclid=y")
	b, _, okB := normalizeURL("http://example.com/path")
	if !okA || !okB {
		t.Fatal("Expected both URLs to normalize")
	}
	if a != b {
		t.Errorf("Expected equal normalized keys, got %q and %q", a, b)
	}
	if hostA != "example.com" {
		t.Errorf("Expected lowercased host, got %q", hostA)
	}

	if _, _, ok := normalizeURL("not a url"); ok {
		t.Error("Expected malformed URL to be rejected")
	}
	if _, _, ok := normalizeURL("ftp://example.com/x"); ok {
		t.Error("Expected non-http scheme to be rejected")
	}
}
