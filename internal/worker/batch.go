package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/memoweave/memoweave/internal/loader"
)

// DocumentAnalyzer runs a full consistency check over one story file
// and returns the reasoning feedback.
type DocumentAnalyzer interface {
	AnalyzeFile(ctx context.Context, path string) (string, error)
}

// AnalyzeJob checks a single story file.
type AnalyzeJob struct {
	Path     string
	Analyzer DocumentAnalyzer
}

// Execute runs the analysis for the job's file.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	feedback, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{
		Path:     j.Path,
		Feedback: feedback,
		Error:    err,
	}
}

// AnalyzeResult is the outcome of checking one story file.
type AnalyzeResult struct {
	Path     string
	Feedback string
	Error    error
}

// GetError returns the analysis error, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor checks multiple story files concurrently.
type BatchProcessor struct {
	analyzer    DocumentAnalyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given
// concurrency.
func NewBatchProcessor(analyzer DocumentAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles checks the given story files concurrently and returns
// one result per file, ordered by path.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{Path: path, Analyzer: b.analyzer})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}
	sort.Slice(analyzeResults, func(i, j int) bool {
		return analyzeResults[i].Path < analyzeResults[j].Path
	})

	return analyzeResults
}

// ProcessDir checks every supported story file in a directory.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*AnalyzeResult, error) {
	paths, err := ListStoryFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list story files: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ProcessManifest reads file paths from a manifest and checks them
// concurrently.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ListStoryFiles returns the supported story files in dir, sorted.
func ListStoryFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !loader.Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadPathsFromFile reads file paths from a manifest, one per line.
// Blank lines and #-comments are skipped, duplicates dropped.
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
