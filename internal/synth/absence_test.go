package synth

import (
	"strings"
	"testing"

	"github.com/akovalev/claimsift/internal/model"
)

func TestSynthesizer_CredentialImpliesLicense(t *testing.T) {
	s := NewSynthesizer(4)

	claims := []model.Claim{
		{Text: "Dr. Jane Smith is board-certified in cardiology.", Type: model.ClaimTypeCredential},
	}

	out := s.Synthesize(claims, ContentContext{})
	if len(out) != 1 {
		t.Fatalf("Expected 1 absence claim, got %d", len(out))
	}
	if !strings.Contains(out[0].Text, "Jane Smith") {
		t.Errorf("Expected absence claim to name the credential holder, got %q", out[0].Text)
	}
	if !strings.Contains(strings.ToLower(out[0].Text), "license") {
		t.Errorf("Expected absence claim to name the missing license, got %q", out[0].Text)
	}
	if !out[0].Synthesized {
		t.Error("Expected synthesized flag to be set")
	}
}

func TestSynthesizer_StudyImpliesCitation(t *testing.T) {
	s := NewSynthesizer(4)

	claims := []model.Claim{
		{Text: "A clinical trial showed 40% improvement.", Type: model.ClaimTypeStudy},
	}

	out := s.Synthesize(claims, ContentContext{})
	if len(out) != 1 {
		t.Fatalf("Expected 1 absence claim, got %d", len(out))
	}
	lower := strings.ToLower(out[0].Text)
	if !strings.Contains(lower, "citation") && !strings.Contains(lower, "doi") {
		t.Errorf("Expected absence claim about missing citation, got %q", out[0].Text)
	}
}

func TestSynthesizer_CapAndOnePerCategory(t *testing.T) {
	s := NewSynthesizer(2)

	claims := []model.Claim{
		{Text: "Dr. A is licensed.", Type: model.ClaimTypeCredential},
		{Text: "Dr. B is licensed.", Type: model.ClaimTypeCredential},
		{Text: "A study found X.", Type: model.ClaimTypeStudy},
		{Text: "Featured in Forbes.", Type: model.ClaimTypePublication},
		{Text: "Cures everything.", Type: model.ClaimTypeProductEfficacy},
	}

	out := s.Synthesize(claims, ContentContext{})
	if len(out) > 2 {
		t.Errorf("Expected at most 2 absence claims (cap), got %d", len(out))
	}
}

func TestSynthesizer_DedupeAgainstExisting(t *testing.T) {
	s := NewSynthesizer(4)

	existing := "No citation, DOI, or journal reference is provided for the study described in the video."
	claims := []model.Claim{
		{Text: existing, Type: model.ClaimTypeAbsence},
		{Text: "Researchers found the compound works.", Type: model.ClaimTypeStudy},
	}

	out := s.Synthesize(claims, ContentContext{})
	for _, c := range out {
		if strings.EqualFold(c.Text, existing) {
			t.Errorf("Synthesizer emitted a duplicate of an existing claim: %q", c.Text)
		}
	}
}

func TestSynthesizer_NoTriggers(t *testing.T) {
	s := NewSynthesizer(4)

	claims := []model.Claim{
		{Text: "The weather was nice.", Type: model.ClaimTypeOther},
	}

	if out := s.Synthesize(claims, ContentContext{}); len(out) != 0 {
		t.Errorf("Expected no absence claims without triggering types, got %d", len(out))
	}
}

func TestSynthesizer_Deterministic(t *testing.T) {
	s := NewSynthesizer(4)

	claims := []model.Claim{
		{Text: "Dr. Jane Smith is board-certified.", Type: model.ClaimTypeCredential},
		{Text: "A study found improvement.", Type: model.ClaimTypeStudy},
	}

	first := s.Synthesize(claims, ContentContext{})
	for i := 0; i < 5; i++ {
		again := s.Synthesize(claims, ContentContext{})
		if len(again) != len(first) {
			t.Fatalf("Synthesize not deterministic: %d then %d claims", len(first), len(again))
		}
		for j := range again {
			if again[j].Text != first[j].Text {
				t.Fatalf("Synthesize not deterministic at %d: %q vs %q", j, first[j].Text, again[j].Text)
			}
		}
	}
}
