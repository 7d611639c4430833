package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeAnalyzer) AnalyzeFile(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if err := f.fail[path]; err != nil {
		return "", err
	}
	return "No Violations. Wohoo!", nil
}

func TestProcessFilesOrderedByPath(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	processor := NewBatchProcessor(analyzer, 3)

	paths := []string{"c.txt", "a.txt", "b.txt"}
	results := processor.ProcessFiles(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if results[i].Path != want {
			t.Errorf("results[%d].Path = %q, want %q", i, results[i].Path, want)
		}
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error: %v", r.Path, r.Error)
		}
		if r.Feedback == "" {
			t.Errorf("%s: empty feedback", r.Path)
		}
	}
}

func TestProcessFilesLargeBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2)

	var paths []string
	for i := 0; i < 100; i++ {
		paths = append(paths, fmt.Sprintf("story_%03d.txt", i))
	}

	done := make(chan []*AnalyzeResult)
	go func() { done <- processor.ProcessFiles(context.Background(), paths) }()

	select {
	case results := <-done:
		if len(results) != len(paths) {
			t.Fatalf("got %d results, want %d", len(results), len(paths))
		}
		for i, r := range results {
			if r.Path != paths[i] {
				t.Errorf("results[%d].Path = %q, want %q", i, r.Path, paths[i])
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch stalled on a file count beyond the pool buffers")
	}
}

func TestProcessFilesCollectsFailures(t *testing.T) {
	analyzer := &fakeAnalyzer{
		fail: map[string]error{"bad.txt": errors.New("reasoning failed")},
	}
	processor := NewBatchProcessor(analyzer, 2)

	results := processor.ProcessFiles(context.Background(), []string{"good.txt", "bad.txt"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Path != "bad.txt" || results[0].Error == nil {
		t.Errorf("bad.txt should carry its error, got %+v", results[0])
	}
	if results[1].Error != nil {
		t.Errorf("good.txt should succeed, got %v", results[1].Error)
	}
}

func TestProcessFilesEmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, 2)
	results := processor.ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestListStoryFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.md", "notes.html", "skip.docx", "skip.go"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListStoryFiles(dir)
	if err != nil {
		t.Fatalf("ListStoryFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "notes.html"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadPathsFromFile(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "list.txt")
	content := "a.txt\n\n# comment\nb.txt\na.txt\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(manifest)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}
	if len(paths) != 2 || paths[0] != "a.txt" || paths[1] != "b.txt" {
		t.Errorf("paths = %v", paths)
	}
}
