package segment

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitEmptyDocument(t *testing.T) {
	s := NewSegmenter()
	for _, text := range []string{"", "   ", "\n\t\n"} {
		if _, err := s.Split(text); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Split(%q) err = %v, want ErrEmptyDocument", text, err)
		}
	}
}

func TestSplitNoMarkers(t *testing.T) {
	s := NewSegmenter()
	chapters, err := s.Split("Alice entered the garden. She found a key.")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("got %d chapters, want 1", len(chapters))
	}
	if chapters[0].ID != 1 || chapters[0].Title != "" {
		t.Errorf("chapter = %+v", chapters[0])
	}
	if !strings.Contains(chapters[0].Text, "Alice entered") {
		t.Errorf("body = %q", chapters[0].Text)
	}
}

func TestSplitChapterMarkers(t *testing.T) {
	text := "Chapter 1\n\nAlice entered the garden.\n\nChapter 2\n\nShe found a key.\n"
	chapters, err := NewSegmenter().Split(text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	if chapters[0].Title != "Chapter 1" || chapters[1].Title != "Chapter 2" {
		t.Errorf("titles = %q, %q", chapters[0].Title, chapters[1].Title)
	}
	if chapters[0].ID != 1 || chapters[1].ID != 2 {
		t.Errorf("IDs = %d, %d", chapters[0].ID, chapters[1].ID)
	}
	if chapters[0].Text != "Alice entered the garden." {
		t.Errorf("body 1 = %q", chapters[0].Text)
	}
	if chapters[1].Text != "She found a key." {
		t.Errorf("body 2 = %q", chapters[1].Text)
	}
}

func TestSplitMarkerVariants(t *testing.T) {
	cases := []struct {
		text  string
		count int
	}{
		{"CHAPTER XII\n\nBody.", 1},
		{"Prologue\n\nBody.\n\nChapter 1\n\nMore.", 2},
		{"Epilogue\n\nThe end.", 1},
		{"# The Garden\n\nBody.\n\n## Night\n\nMore.", 2},
		{"chapter 3: The Key\n\nBody.", 1},
	}
	s := NewSegmenter()
	for _, tc := range cases {
		chapters, err := s.Split(tc.text)
		if err != nil {
			t.Errorf("Split(%q): %v", tc.text, err)
			continue
		}
		if len(chapters) != tc.count {
			t.Errorf("Split(%q) = %d chapters, want %d", tc.text, len(chapters), tc.count)
		}
	}
}

func TestSplitFoldsPrefaceIntoFirstChapter(t *testing.T) {
	text := "A note from the author.\n\nChapter 1\n\nAlice entered the garden.\n"
	chapters, err := NewSegmenter().Split(text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chapters) != 1 {
		t.Fatalf("got %d chapters, want 1", len(chapters))
	}
	if !strings.Contains(chapters[0].Text, "A note from the author.") {
		t.Errorf("preface lost: %q", chapters[0].Text)
	}
	if !strings.Contains(chapters[0].Text, "Alice entered the garden.") {
		t.Errorf("chapter body lost: %q", chapters[0].Text)
	}
}

func TestSplitMarkdownHeadingTitleCleaned(t *testing.T) {
	chapters, err := NewSegmenter().Split("## The Garden\n\nBody.")
	if err != nil {
		t.Fatal(err)
	}
	if chapters[0].Title != "The Garden" {
		t.Errorf("Title = %q, want %q", chapters[0].Title, "The Garden")
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := "Chapter 1\n\nOne.\n\nChapter 2\n\nTwo.\n"
	s := NewSegmenter()
	first, err := s.Split(text)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Split(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("chapter counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chapter %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
