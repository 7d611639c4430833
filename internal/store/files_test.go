package store

import (
	"errors"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestSaveListReadDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("story.txt", strings.NewReader("Alice entered the garden.")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("notes.md", strings.NewReader("# Chapter 1\n\nText.")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "notes.md" || names[1] != "story.txt" {
		t.Errorf("List = %v", names)
	}

	text, err := s.Read("story.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if text != "Alice entered the garden." {
		t.Errorf("Read = %q", text)
	}

	if err := s.Delete("story.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("story.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read after delete: %v, want ErrNotFound", err)
	}
	if err := s.Delete("story.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double Delete: %v, want ErrNotFound", err)
	}
}

func TestRejectsTraversalAndUnsupportedNames(t *testing.T) {
	s := newTestStore(t)

	bad := []string{"../escape.txt", "a/b.txt", "..", "binary.exe", "doc.docx"}
	for _, name := range bad {
		if err := s.Save(name, strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q) = %v, want ErrInvalidName", name, err)
		}
		if _, err := s.Read(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Read(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("story.txt", strings.NewReader("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("story.txt", strings.NewReader("new content")); err != nil {
		t.Fatal(err)
	}
	text, err := s.Read("story.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "new content" {
		t.Errorf("Read = %q, want replacement", text)
	}
}
