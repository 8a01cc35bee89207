package model

import "testing"

func TestDistributionValid(t *testing.T) {
	tests := []struct {
		name string
		dist ProbabilityDistribution
		want bool
	}{
		{"uncertain unit mass", Uncertain(), true},
		{"balanced", ProbabilityDistribution{PTrue: 0.4, PFalse: 0.35, PUncertain: 0.25}, true},
		{"sum too low", ProbabilityDistribution{PTrue: 0.2, PFalse: 0.2, PUncertain: 0.2}, false},
		{"negative component", ProbabilityDistribution{PTrue: 1.2, PFalse: -0.2, PUncertain: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dist.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistributionLabel(t *testing.T) {
	tests := []struct {
		name string
		dist ProbabilityDistribution
		want string
	}{
		{"clear true", ProbabilityDistribution{PTrue: 0.7, PFalse: 0.1, PUncertain: 0.2}, "TRUE"},
		{"clear false", ProbabilityDistribution{PTrue: 0.1, PFalse: 0.7, PUncertain: 0.2}, "FALSE"},
		{"clear uncertain", Uncertain(), "UNCERTAIN"},
		{"uncertain wins ties", ProbabilityDistribution{PTrue: 1.0 / 3, PFalse: 1.0 / 3, PUncertain: 1.0 / 3}, "UNCERTAIN"},
		{"true wins true-false tie", ProbabilityDistribution{PTrue: 0.45, PFalse: 0.45, PUncertain: 0.1}, "TRUE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dist.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDistributionLean(t *testing.T) {
	d := ProbabilityDistribution{PTrue: 0.6, PFalse: 0.1, PUncertain: 0.3}
	if got := d.Lean(); got != 0.5 {
		t.Errorf("Lean() = %g, want 0.5", got)
	}
}
