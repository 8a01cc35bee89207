package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akovalev/claimsift/internal/cache"
	"github.com/akovalev/claimsift/internal/counterintel"
	"github.com/akovalev/claimsift/internal/model"
	"github.com/akovalev/claimsift/internal/pipeline"
	"github.com/akovalev/claimsift/internal/provider"
)

var (
	outJSON        string
	outMD          string
	timeout        time.Duration
	userAgent      string
	httpProxy      string
	httpsProxy     string
	noCache        bool
	noFooter       bool
	noCounterIntel bool
	claimWorkers   int
	llmModel       string
	searchEndpoint string

	videoTitle   string
	videoChannel string
	presenter    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <transcript-file>",
	Short: "Analyze one video transcript and generate a truthfulness report",
	Long: `Analyze runs the full claim assessment over a transcript file:
- Extract candidate claims via the content analyzer
- Score specificity and verifiability, filter weak candidates
- Synthesize absence claims for missing corroboration
- Gather and weight web evidence per claim
- Run adversarial counter-intelligence on the claim subjects
- Aggregate probabilities into TRUE/FALSE/UNCERTAIN verdicts

Example:
  claimsift analyze transcript.txt --title "Miracle Cure Exposed"
  claimsift analyze transcript.txt --json report.json --md report.md
  claimsift analyze transcript.txt --no-counter-intel`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Video metadata flags
	analyzeCmd.Flags().StringVar(&videoTitle, "title", "", "video title")
	analyzeCmd.Flags().StringVar(&videoChannel, "channel", "", "channel name")
	analyzeCmd.Flags().StringVar(&presenter, "presenter", "", "presenter name, used for adversarial search")

	// HTTP and provider flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	analyzeCmd.Flags().StringVar(&searchEndpoint, "search-endpoint", "https://serpapi.com/search", "search API endpoint")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the search result cache")
	analyzeCmd.Flags().BoolVar(&noCounterIntel, "no-counter-intel", false, "skip the adversarial counter-intelligence pass")
	analyzeCmd.Flags().IntVar(&claimWorkers, "workers", 0, "concurrent claims during evidence gathering (0 = default)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "content analyzer model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	transcriptPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	video, err := loadVideo(transcriptPath)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", video.ID)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Counter-intel: %v\n", cfg.CounterIntel.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.Analyze(ctx, video)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Processed %d candidate claims\n", report.Summary.ClaimsProcessed)
		fmt.Fprintf(os.Stderr, "✓ Selected %d claims (%d absence)\n", len(report.Claims), report.Summary.AbsenceClaims)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// buildConfig assembles the effective configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.CounterIntel.Enabled = !noCounterIntel
	if claimWorkers > 0 {
		cfg.Concurrency.ClaimWorkers = claimWorkers
	}
	cfg.LLM.Model = llmModel
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return cfg, nil
}

// buildPipeline wires the providers, cache, and counter-intel module
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	analyzer, err := provider.NewOpenAIAnalyzer(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}

	searchKey := os.Getenv("CLAIMSIFT_SEARCH_API_KEY")
	if searchKey == "" {
		return nil, fmt.Errorf("CLAIMSIFT_SEARCH_API_KEY environment variable not set")
	}
	var search provider.SearchProvider = provider.NewWebSearchProvider(
		"web", searchEndpoint, searchKey, cfg.HTTP, cfg.Evidence.MaxResultsPerQuery)

	if cfg.Cache.Enabled {
		store := cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		search = cache.NewSearchCache(search, store, cfg.Cache.DiskTTL)
	}

	var counter *counterintel.Module
	if cfg.CounterIntel.Enabled {
		counter = counterintel.NewModule(
			provider.NewReviewSearchAdapter(search, cfg.CounterIntel.MaxSources),
			provider.NewPageFetcher(cfg.HTTP),
			analyzer,
			cfg.CounterIntel,
		)
	}

	return pipeline.NewPipeline(cfg, analyzer, []provider.SearchProvider{search}, counter)
}

// loadVideo reads the transcript file into a video source
func loadVideo(path string) (provider.VideoSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return provider.VideoSource{}, fmt.Errorf("read transcript: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return provider.VideoSource{}, fmt.Errorf("transcript file %s is empty", path)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return provider.VideoSource{
		ID:         id,
		Title:      videoTitle,
		Channel:    videoChannel,
		Presenter:  presenter,
		Transcript: string(data),
	}, nil
}
