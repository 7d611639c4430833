package segment

import (
	"testing"

	"github.com/memoweave/memoweave/internal/model"
)

func tokenize(t *testing.T, text string) []model.Sentence {
	t.Helper()
	sentences, _ := NewTokenizer().Tokenize(model.Chapter{ID: 1, Text: text}, 1)
	return sentences
}

func texts(sentences []model.Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

func TestTokenizeBasicSplit(t *testing.T) {
	got := texts(tokenize(t, "Alice entered the garden. She found a key! Was it old?"))
	want := []string{"Alice entered the garden.", "She found a key!", "Was it old?"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeAbbreviations(t *testing.T) {
	got := tokenize(t, "Dr. Brown arrived at noon. Mrs. Smith waited.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
	if got[0].Text != "Dr. Brown arrived at noon." {
		t.Errorf("sentence 0 = %q", got[0].Text)
	}
}

func TestTokenizeInitials(t *testing.T) {
	got := tokenize(t, "E. Brown spoke first. Then silence.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
}

func TestTokenizeEllipsis(t *testing.T) {
	got := tokenize(t, "He waited... then left. The door closed.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
	if got[0].Text != "He waited... then left." {
		t.Errorf("sentence 0 = %q", got[0].Text)
	}
}

func TestTokenizeDecimalNumbers(t *testing.T) {
	got := tokenize(t, "It cost 3.5 shillings. He paid at once.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
}

func TestTokenizeDirectSpeech(t *testing.T) {
	got := tokenize(t, `"Run!" she shouted. He ran.`)
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
	if got[0].Text != `"Run!" she shouted.` {
		t.Errorf("sentence 0 = %q", got[0].Text)
	}
}

func TestTokenizeCurlyQuotes(t *testing.T) {
	got := tokenize(t, "“Where?” she asked. Nobody answered.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
	if got[0].Text != "“Where?” she asked." {
		t.Errorf("sentence 0 = %q", got[0].Text)
	}
}

func TestTokenizeIDsAndOrdinals(t *testing.T) {
	tok := NewTokenizer()

	first, nextID := tok.Tokenize(model.Chapter{ID: 1, Text: "One. Two."}, 1)
	if nextID != 3 {
		t.Errorf("nextID = %d, want 3", nextID)
	}
	second, nextID := tok.Tokenize(model.Chapter{ID: 2, Text: "Three."}, nextID)
	if nextID != 4 {
		t.Errorf("nextID = %d, want 4", nextID)
	}

	if first[0].ID != 1 || first[1].ID != 2 || second[0].ID != 3 {
		t.Errorf("IDs = %d, %d, %d", first[0].ID, first[1].ID, second[0].ID)
	}
	if first[0].Ordinal != 1 || first[1].Ordinal != 2 {
		t.Errorf("chapter 1 ordinals = %d, %d", first[0].Ordinal, first[1].Ordinal)
	}
	if second[0].Ordinal != 1 {
		t.Errorf("chapter 2 ordinal = %d, want 1", second[0].Ordinal)
	}
	if second[0].ChapterID != 2 {
		t.Errorf("ChapterID = %d, want 2", second[0].ChapterID)
	}
}

func TestTokenizeCollapsesWhitespace(t *testing.T) {
	got := tokenize(t, "Alice  entered\n\nthe garden.")
	if len(got) != 1 {
		t.Fatalf("got %d sentences: %v", len(got), texts(got))
	}
	if got[0].Text != "Alice entered the garden." {
		t.Errorf("sentence = %q", got[0].Text)
	}
}

func TestTokenizeEmptyChapter(t *testing.T) {
	got, nextID := NewTokenizer().Tokenize(model.Chapter{ID: 1, Text: "   "}, 5)
	if len(got) != 0 {
		t.Errorf("got %d sentences, want 0", len(got))
	}
	if nextID != 5 {
		t.Errorf("nextID = %d, want 5", nextID)
	}
}
