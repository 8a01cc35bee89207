package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple transcripts listed in a file",
	Long: `Batch processes multiple transcript files:
- Read transcript paths from the input file (one per line, # for comments)
- Analyze each video with the full pipeline
- Write individual JSON and Markdown reports per video

Each analysis already parallelizes evidence gathering across its claims,
so videos are processed one at a time.

Example:
  claimsift batch transcripts.txt
  claimsift batch transcripts.txt --output-dir ./reports --timeout 2h`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimsift-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", time.Hour, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the search result cache")
	batchCmd.Flags().BoolVar(&noCounterIntel, "no-counter-intel", false, "skip the adversarial counter-intelligence pass")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().StringVar(&searchEndpoint, "search-endpoint", "https://serpapi.com/search", "search API endpoint")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "content analyzer model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := readTranscriptList(listPath)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no transcript paths found in %s", listPath)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch: %d transcripts, output %s\n\n", len(paths), outputDir)

	successCount := 0
	failureCount := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			return fmt.Errorf("batch timed out after %d of %d videos", successCount+failureCount, len(paths))
		}

		video, err := loadVideo(path)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			continue
		}

		report, err := p.Analyze(ctx, video)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", video.ID, err)
			continue
		}

		jsonPath := filepath.Join(outputDir, video.ID+".json")
		mdPath := filepath.Join(outputDir, video.ID+".md")
		if err := p.RenderReport(report, jsonPath, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", video.ID, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s: %s (truthfulness %+.2f)\n",
			video.ID, report.Summary.Distribution.Label(), report.Summary.Truthfulness)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d ok, %d failed, reports in %s\n", successCount, failureCount, outputDir)
	return nil
}

// readTranscriptList reads transcript paths, one per line, skipping blanks
// and # comments
func readTranscriptList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	return paths, nil
}
