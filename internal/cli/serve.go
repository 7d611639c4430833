package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memoweave/memoweave/internal/pipeline"
	"github.com/memoweave/memoweave/internal/server"
	"github.com/memoweave/memoweave/internal/store"
)

var (
	serveAddr string
	uploadDir string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with a live progress stream",
	Long: `Serve exposes the analysis pipeline over HTTP:
- POST /upload accepts story files
- GET /files, GET /files/{name}/content, DELETE /files/{name} manage them
- GET /analyze_stream?file=...&rule=... streams analysis progress as
  server-sent events and ends with the reasoning verdict

Example:
  memoweave serve
  memoweave serve --addr :9000 --upload-dir ./stories`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&uploadDir, "upload-dir", "", "directory for uploaded stories (default from config)")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, openrouter, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable event-memory reuse")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if uploadDir != "" {
		cfg.Server.UploadDir = uploadDir
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	files, err := store.NewFileStore(cfg.Server.UploadDir)
	if err != nil {
		return err
	}

	srv := server.New(p, files, logger, cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
