package model

import (
	"fmt"
	"time"
)

// Config holds all tunable parameters for the engine. It is passed into
// constructors explicitly; there is no process-wide mutable state.
type Config struct {
	Scoring      ScoringConfig      `yaml:"scoring" json:"scoring"`
	Selection    SelectionConfig    `yaml:"selection" json:"selection"`
	Evidence     EvidenceConfig     `yaml:"evidence" json:"evidence"`
	CounterIntel CounterIntelConfig `yaml:"counter_intel" json:"counter_intel"`
	HTTP         HTTPConfig         `yaml:"http" json:"http"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" json:"concurrency"`
	RateLimiting RateLimitConfig    `yaml:"rate_limiting" json:"rate_limiting"`
	Cache        CacheConfig        `yaml:"cache" json:"cache"`
	LLM          LLMConfig          `yaml:"llm" json:"llm"`
	Output       OutputConfig       `yaml:"output" json:"output"`
}

// ScoringConfig controls claim filtering thresholds
type ScoringConfig struct {
	MinSpecificity   int     `yaml:"min_specificity" json:"min_specificity"`     // FILTERED stage floor, 0-100
	MinVerifiability float64 `yaml:"min_verifiability" json:"min_verifiability"` // FILTERED stage floor, 0-1
}

// SelectionConfig controls the final claim set size and absence synthesis
type SelectionConfig struct {
	TargetMin  int `yaml:"target_min" json:"target_min"` // Lower bound of the selected set
	TargetMax  int `yaml:"target_max" json:"target_max"` // Upper bound of the selected set
	MaxAbsence int `yaml:"max_absence" json:"max_absence"`
}

// EvidenceConfig controls evidence gathering and weighting
type EvidenceConfig struct {
	MaxResultsPerQuery int     `yaml:"max_results_per_query" json:"max_results_per_query"`
	FreshnessHalfLife  float64 `yaml:"freshness_half_life_days" json:"freshness_half_life_days"` // Exponential decay half-life
	MaxRetries         int     `yaml:"max_retries" json:"max_retries"`
}

// CounterIntelConfig controls the adversarial search subsystem
type CounterIntelConfig struct {
	Enabled       bool    `yaml:"enabled" json:"enabled"`
	MaxSources    int     `yaml:"max_sources" json:"max_sources"`
	AdjustmentCap float64 `yaml:"adjustment_cap" json:"adjustment_cap"` // Hard bound on |applied_adjustment|
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" json:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" json:"no_proxy"`
}

// ConcurrencyConfig controls worker pool sizing
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers" json:"claim_workers"` // Concurrent claims in evidence gathering
}

// RateLimitConfig controls per-domain request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
}

// CacheConfig controls the search-result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// LLMConfig holds the content analyzer / counter-claim extractor settings
type LLMConfig struct {
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"` // From environment, never serialized
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			MinSpecificity:   40,
			MinVerifiability: 0.3,
		},
		Selection: SelectionConfig{
			TargetMin:  15,
			TargetMax:  18,
			MaxAbsence: 4,
		},
		Evidence: EvidenceConfig{
			MaxResultsPerQuery: 10,
			FreshnessHalfLife:  730, // Two years
			MaxRetries:         3,
		},
		CounterIntel: CounterIntelConfig{
			Enabled:       true,
			MaxSources:    5,
			AdjustmentCap: 0.20,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Claimsift/0.1 (+https://github.com/akovalev/claimsift)",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".claimsift-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate checks configuration invariants. Violations are fatal at pipeline
// construction, surfaced immediately rather than discovered mid-run.
func (c *Config) Validate() error {
	if c.Scoring.MinSpecificity < 0 || c.Scoring.MinSpecificity > 100 {
		return fmt.Errorf("config: min_specificity must be in [0,100], got %d", c.Scoring.MinSpecificity)
	}
	if c.Scoring.MinVerifiability < 0 || c.Scoring.MinVerifiability > 1 {
		return fmt.Errorf("config: min_verifiability must be in [0,1], got %g", c.Scoring.MinVerifiability)
	}
	if c.Selection.TargetMin <= 0 || c.Selection.TargetMax < c.Selection.TargetMin {
		return fmt.Errorf("config: invalid selection target range [%d,%d]", c.Selection.TargetMin, c.Selection.TargetMax)
	}
	if c.CounterIntel.AdjustmentCap <= 0 || c.CounterIntel.AdjustmentCap > 0.5 {
		return fmt.Errorf("config: counter-intel adjustment_cap must be in (0,0.5], got %g", c.CounterIntel.AdjustmentCap)
	}
	if c.Concurrency.ClaimWorkers <= 0 {
		return fmt.Errorf("config: claim_workers must be positive, got %d", c.Concurrency.ClaimWorkers)
	}
	if c.Evidence.FreshnessHalfLife <= 0 {
		return fmt.Errorf("config: freshness_half_life_days must be positive, got %g", c.Evidence.FreshnessHalfLife)
	}
	return nil
}
