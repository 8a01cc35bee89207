package score

import (
	"testing"

	"github.com/akovalev/claimsift/internal/model"
)

func TestScorer_Score_Bounds(t *testing.T) {
	scorer := NewScorer()

	texts := []string{
		"",
		"short",
		"Dr. Jane Smith published a peer-reviewed study in the Journal of Nutrition in March 2019 showing 47% improvement across 1200 participants, doi 10.1001/jama.2019.1234, per Smith et al. [1]",
		"This product is amazing and everyone should buy it right now.",
	}

	for _, text := range texts {
		score, breakdown := scorer.Score(text)
		if score < 0 || score > 100 {
			t.Errorf("Score(%q) = %d, expected [0,100]", text, score)
		}
		if breakdown["total"] != score {
			t.Errorf("breakdown total %d does not match score %d", breakdown["total"], score)
		}
	}
}

func TestScorer_Score_Deterministic(t *testing.T) {
	scorer := NewScorer()
	text := "According to a 2021 study published in Nature, 68% of 450 participants improved."

	first, firstBreakdown := scorer.Score(text)
	for i := 0; i < 10; i++ {
		score, breakdown := scorer.Score(text)
		if score != first {
			t.Fatalf("Score not deterministic: got %d then %d", first, score)
		}
		for k, v := range firstBreakdown {
			if breakdown[k] != v {
				t.Fatalf("Breakdown not deterministic for %q: got %d then %d", k, v, breakdown[k])
			}
		}
	}
}

func TestScorer_Score_SpecificBeatsVague(t *testing.T) {
	scorer := NewScorer()

	specific := "According to a 2019 clinical trial published in The Lancet, Dr. Maria Gonzalez treated 312 patients with a 42% reduction in symptoms."
	vague := "This stuff really works and makes you feel better."

	specificScore, _ := scorer.Score(specific)
	vagueScore, _ := scorer.Score(vague)

	if specificScore <= vagueScore {
		t.Errorf("Expected specific claim (%d) to outscore vague claim (%d)", specificScore, vagueScore)
	}
	if specificScore < 50 {
		t.Errorf("Expected highly specific claim to score >= 50, got %d", specificScore)
	}
}

func TestSubScorers_Caps(t *testing.T) {
	// Every sub-score stays within its cap even on pathological input
	nounHeavy := "John Smith Mary Jones Bob Brown Alice White NASA FDA WHO CDC Tom Green Sarah Black"
	if s := scoreProperNouns(nounHeavy); s > capProperNoun {
		t.Errorf("proper noun score %d exceeds cap %d", s, capProperNoun)
	}

	temporalHeavy := "In 1995, 1996, 1997, 1998 and January February March, over 5 years and 3 months"
	if s := scoreTemporal(temporalHeavy); s > capTemporal {
		t.Errorf("temporal score %d exceeds cap %d", s, capTemporal)
	}

	quantHeavy := "10% 20% 30% 40% and 100 200 300 400 500 600"
	if s := scoreQuantitative(quantHeavy); s > capQuantitative {
		t.Errorf("quantitative score %d exceeds cap %d", s, capQuantitative)
	}

	attrHeavy := "According to the study published in the Journal of Medicine, cited in Smith et al. [1] [2], doi 10.1001/jama.2019.1 and 10.1002/x.2"
	if s := scoreAttribution(attrHeavy); s > capAttribution {
		t.Errorf("attribution score %d exceeds cap %d", s, capAttribution)
	}
}

func TestSubScorers_ZeroOnEmpty(t *testing.T) {
	for name, fn := range map[string]func(string) int{
		"proper_nouns": scoreProperNouns,
		"temporal":     scoreTemporal,
		"quantitative": scoreQuantitative,
		"attribution":  scoreAttribution,
	} {
		if s := fn(""); s != 0 {
			t.Errorf("%s(\"\") = %d, expected 0", name, s)
		}
	}
}

func TestScorer_Apply_AbsenceOverride(t *testing.T) {
	scorer := NewScorer()

	// Classified as absence; the additive score for this text would be low
	claim := &model.Claim{Text: "No medical license number is given for the presenter."}
	scorer.Apply(claim)

	if claim.Type != model.ClaimTypeAbsence {
		t.Fatalf("Expected absence type, got %s", claim.Type)
	}
	if claim.Specificity != AbsenceSpecificity {
		t.Errorf("Expected specificity %d for absence claim, got %d", AbsenceSpecificity, claim.Specificity)
	}
	if claim.Verifiability < AbsenceVerifiabilityFloor {
		t.Errorf("Expected verifiability >= %g for absence claim, got %g", AbsenceVerifiabilityFloor, claim.Verifiability)
	}
}

func TestScorer_Apply_TextUnchanged(t *testing.T) {
	scorer := NewScorer()
	text := "Dr. Smith is board-certified in cardiology."
	claim := &model.Claim{Text: text}
	scorer.Apply(claim)

	if claim.Text != text {
		t.Errorf("Apply must never modify claim text: got %q", claim.Text)
	}
}

func TestPredictVerifiability_Bounds(t *testing.T) {
	scorer := NewScorer()

	for claimType := range verifiabilityPriors {
		v := scorer.PredictVerifiability("Some claim text with a 2020 study of 100 people.", claimType)
		if v < 0 || v > 1 {
			t.Errorf("PredictVerifiability for %s = %g, expected [0,1]", claimType, v)
		}
	}
}

func TestPredictVerifiability_ConspiracyLowest(t *testing.T) {
	scorer := NewScorer()
	text := "A generic claim."

	conspiracy := scorer.PredictVerifiability(text, model.ClaimTypeConspiracyTheory)
	for claimType := range verifiabilityPriors {
		if claimType == model.ClaimTypeConspiracyTheory {
			continue
		}
		if other := scorer.PredictVerifiability(text, claimType); other <= conspiracy {
			t.Errorf("Expected %s verifiability (%g) > conspiracy (%g)", claimType, other, conspiracy)
		}
	}
}
