package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoweave/memoweave/internal/model"
	"github.com/memoweave/memoweave/internal/pipeline"
	"github.com/memoweave/memoweave/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
	fromManifest bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|manifest>",
	Short: "Check multiple story files in parallel",
	Long: `Batch checks a directory of story files concurrently:
- Collect supported files (.txt, .md, .html)
- Analyze files in parallel with configurable worker count
- Write each verdict as a text file next to the artifacts

With --manifest the argument is a file listing one story path per line.

Example:
  memoweave batch ./stories
  memoweave batch ./stories --rule role_completeness --concurrency 8
  memoweave batch list.txt --manifest --output-dir ./verdicts`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&fromManifest, "manifest", false, "treat the argument as a manifest file, one path per line")

	// Shared analysis flags
	batchCmd.Flags().StringVar(&ruleName, "rule", string(model.RuleTemporal), "consistency rule (temporal, role_completeness)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, openrouter, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "output", "output directory for verdicts")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable event-memory reuse")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]

	rule, err := model.ParseRule(ruleName)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  MemoWeave Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Rule:         %s\n", rule)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p.FileAnalyzer(rule), concurrency)

	var results []*worker.AnalyzeResult
	if fromManifest {
		results, err = processor.ProcessManifest(ctx, input)
	} else {
		results, err = processor.ProcessDir(ctx, input)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d files with %d workers...\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		verdictPath := filepath.Join(outputDir, verdictFilename(result.Path, rule))
		if err := os.WriteFile(verdictPath, []byte(result.Feedback+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write verdict: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s\n", result.Path)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// verdictFilename derives the verdict file name for a story path.
func verdictFilename(path string, rule model.Rule) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s.%s.txt", base, rule)
}
