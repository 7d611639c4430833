package annotate

import (
	"errors"
	"strings"
	"testing"

	"github.com/memoweave/memoweave/internal/model"
)

func TestAnnotateTagsVerbsAndNouns(t *testing.T) {
	a := NewProseAnnotator()
	ann, err := a.Annotate(model.Sentence{ID: 7, Text: "Alice entered the garden."})
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if ann.SentenceID != 7 {
		t.Errorf("SentenceID = %d", ann.SentenceID)
	}
	if len(ann.Tokens) == 0 {
		t.Fatal("no tokens")
	}

	tags := map[string]string{}
	for _, tok := range ann.Tokens {
		tags[tok.Text] = tok.Tag
	}
	if !strings.HasPrefix(tags["entered"], "VB") {
		t.Errorf("entered tagged %q, want a verb tag", tags["entered"])
	}
	if !strings.HasPrefix(tags["garden"], "NN") {
		t.Errorf("garden tagged %q, want a noun tag", tags["garden"])
	}
}

func TestAnnotateEmptySentence(t *testing.T) {
	a := NewProseAnnotator()
	for _, text := range []string{"", "   "} {
		if _, err := a.Annotate(model.Sentence{ID: 1, Text: text}); !errors.Is(err, ErrEmptySentence) {
			t.Errorf("Annotate(%q) err = %v, want ErrEmptySentence", text, err)
		}
	}
}

func TestAnnotateIsPure(t *testing.T) {
	a := NewProseAnnotator()
	sentence := model.Sentence{ID: 1, Text: "Bob slept in the hall."}

	first, err := a.Annotate(sentence)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Annotate(sentence)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token counts differ: %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		if first.Tokens[i] != second.Tokens[i] {
			t.Errorf("token %d differs: %+v vs %+v", i, first.Tokens[i], second.Tokens[i])
		}
	}
}
