package query

import (
	"strings"
	"testing"

	"github.com/akovalev/claimsift/internal/model"
)

func TestStrategist_TypeSpecificQueries(t *testing.T) {
	s := NewStrategist()

	tests := []struct {
		claimType model.ClaimType
		wantIn    string // Substring expected in at least one primary query
	}{
		{model.ClaimTypeCredential, "site:docinfo.org"},
		{model.ClaimTypePublication, "site:forbes.com"},
		{model.ClaimTypeStudy, "site:pubmed.ncbi.nlm.nih.gov"},
		{model.ClaimTypeAbsence, "official record"},
		{model.ClaimTypeProductEfficacy, "clinical evidence"},
	}

	for _, tt := range tests {
		claim := model.Claim{Text: "Dr. Jane Smith is board-certified in cardiology.", Type: tt.claimType}
		qs := s.Generate(claim)

		if len(qs.Primary) == 0 {
			t.Errorf("%s: expected primary queries", tt.claimType)
			continue
		}
		found := false
		for _, q := range qs.Primary {
			if strings.Contains(q, tt.wantIn) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected a primary query containing %q, got %v", tt.claimType, tt.wantIn, qs.Primary)
		}
	}
}

func TestStrategist_NegativeQueriesCarryDisconfirmingVocabulary(t *testing.T) {
	s := NewStrategist()
	qs := s.Generate(model.Claim{Text: "This supplement cures arthritis.", Type: model.ClaimTypeProductEfficacy})

	if len(qs.Negative) == 0 {
		t.Fatal("Expected negative queries")
	}
	for _, word := range []string{"debunked", "fraud", "scam"} {
		found := false
		for _, q := range qs.Negative {
			if strings.Contains(q, word) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a negative query containing %q, got %v", word, qs.Negative)
		}
	}
}

func TestStrategist_FallbackForUnknownType(t *testing.T) {
	s := NewStrategist()
	qs := s.Generate(model.Claim{Text: "Something generic happened last year.", Type: model.ClaimTypeOther})

	if len(qs.Primary) == 0 || len(qs.Fallback) == 0 {
		t.Errorf("Expected generic primary and fallback queries, got %+v", qs)
	}
}

func TestSubjectPhrase_Condensed(t *testing.T) {
	got := subjectPhrase("Dr. Jane Smith is board-certified in cardiology at the Mayo Clinic, according to the video.")

	if len(strings.Fields(got)) > maxSubjectWords {
		t.Errorf("Subject phrase exceeds %d words: %q", maxSubjectWords, got)
	}
	if !strings.Contains(got, "Jane Smith") {
		t.Errorf("Expected subject phrase to keep the named entity, got %q", got)
	}
	if strings.Contains(got, " the ") {
		t.Errorf("Expected filler words removed, got %q", got)
	}
}

func TestStrategist_Deterministic(t *testing.T) {
	s := NewStrategist()
	claim := model.Claim{Text: "A 2019 study found 40% improvement.", Type: model.ClaimTypeStudy}

	first := s.Generate(claim)
	for i := 0; i < 5; i++ {
		again := s.Generate(claim)
		if len(again.Primary) != len(first.Primary) || len(again.Negative) != len(first.Negative) {
			t.Fatal("Generate not deterministic")
		}
		for j := range first.Primary {
			if again.Primary[j] != first.Primary[j] {
				t.Fatalf("Generate not deterministic: %q vs %q", first.Primary[j], again.Primary[j])
			}
		}
	}
}
