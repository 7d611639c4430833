package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoweave/memoweave/internal/loader"
	"github.com/memoweave/memoweave/internal/model"
	"github.com/memoweave/memoweave/internal/pipeline"
)

var (
	ruleName    string
	llmProvider string
	llmModel    string
	llmTimeout  time.Duration
	writeCSV    bool
	outputDir   string
	noCache     bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Check one story file for narrative inconsistencies",
	Long: `Analyze runs the full extraction pipeline over a story file:
- Split the text into chapters and sentences
- Tag parts of speech and named entities
- Build event frames (actor, action, target, location, time)
- Fill actor and location gaps from narrative context
- Classify time expressions

The resulting projection is sent to a reasoning model, which reports
violations of the selected rule.

Example:
  memoweave analyze story.txt
  memoweave analyze story.txt --rule role_completeness
  memoweave analyze novel.md --llm-provider ollama --llm-model llama3
  memoweave analyze story.txt --csv --output-dir artifacts`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&ruleName, "rule", string(model.RuleTemporal), "consistency rule (temporal, role_completeness)")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, openrouter, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	analyzeCmd.Flags().DurationVar(&llmTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&writeCSV, "csv", false, "write projection CSV artifacts")
	analyzeCmd.Flags().StringVar(&outputDir, "output-dir", "output", "directory for CSV artifacts")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable event-memory reuse")
}

// buildConfig assembles configuration from defaults, flags, and the
// provider API key environment variables.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.WriteCSV = writeCSV
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose

	// Get API key from environment
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "openrouter":
		cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	rule, err := model.ParseRule(ruleName)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Rule: %s\n", rule)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintln(os.Stderr)
	}

	text, err := loader.Read(path)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	feedback, err := p.AnalyzeSync(ctx, pipeline.NewRequest(path, text, rule), func(event pipeline.Event) {
		fmt.Fprintf(os.Stderr, "⚙️  %s\n", event.Message)
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Println(feedback)
	return nil
}
