package segment

import (
	"strings"
	"unicode"

	"github.com/memoweave/memoweave/internal/model"
)

// Tokenizer splits chapter text into ordered sentences keyed by a
// document-global, monotonically increasing sentence ID.
type Tokenizer struct {
	abbreviations map[string]bool
}

// NewTokenizer creates a sentence tokenizer aware of common abbreviations,
// direct-speech quotation and ellipses.
func NewTokenizer() *Tokenizer {
	abbrevs := []string{
		"mr", "mrs", "ms", "dr", "prof", "rev", "st", "sr", "jr",
		"capt", "col", "gen", "lt", "sgt", "hon",
		"vs", "etc", "eg", "ie", "no", "vol", "pp", "approx",
	}

	m := make(map[string]bool, len(abbrevs))
	for _, a := range abbrevs {
		m[a] = true
	}
	return &Tokenizer{abbreviations: m}
}

// Tokenize splits a chapter into sentences. IDs are assigned from nextID
// onwards; the next unused ID is returned so IDs stay strictly increasing
// across chapter boundaries. Ordinals are contiguous within the chapter.
func (t *Tokenizer) Tokenize(chapter model.Chapter, nextID int) ([]model.Sentence, int) {
	text := strings.Join(strings.Fields(chapter.Text), " ")
	runes := []rune(text)

	var sentences []model.Sentence
	var current strings.Builder
	quoteDepth := 0
	ordinal := 1

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		current.Reset()
		if sentence == "" {
			return
		}
		sentences = append(sentences, model.Sentence{
			ID:        nextID,
			ChapterID: chapter.ID,
			Ordinal:   ordinal,
			Text:      sentence,
		})
		nextID++
		ordinal++
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		switch r {
		case '"':
			if quoteDepth > 0 {
				quoteDepth--
			} else {
				quoteDepth++
			}
			continue
		case '“': // opening curly quote
			quoteDepth++
			continue
		case '”': // closing curly quote
			if quoteDepth > 0 {
				quoteDepth--
			}
			continue
		}

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// "..." is a pause, not a boundary; consume the run and keep going.
		if r == '.' && i+1 < len(runes) && runes[i+1] == '.' {
			for i+1 < len(runes) && runes[i+1] == '.' {
				i++
				current.WriteRune(runes[i])
			}
			continue
		}

		// Terminators inside direct speech do not end the narration
		// sentence ("Run!" she shouted.).
		if quoteDepth > 0 {
			continue
		}

		if r == '.' && t.isAbbreviation(runes, i) {
			continue
		}

		// A closing quote directly after the terminator belongs to this
		// sentence.
		for i+1 < len(runes) && isClosingQuote(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
			if quoteDepth > 0 {
				quoteDepth--
			}
		}

		// Only split at end of text or before whitespace; "3.5" and
		// "U.S.A" stay intact.
		if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
			flush()
		}
	}

	flush()
	return sentences, nextID
}

// isAbbreviation reports whether the period at index i ends a known
// abbreviation or a single-letter initial ("E. Brown").
func (t *Tokenizer) isAbbreviation(runes []rune, i int) bool {
	end := i
	start := end
	for start > 0 && unicode.IsLetter(runes[start-1]) {
		start--
	}
	if start == end {
		return false
	}

	word := strings.ToLower(string(runes[start:end]))
	if t.abbreviations[word] {
		return true
	}

	// Single uppercase letter reads as an initial.
	return end-start == 1 && unicode.IsUpper(runes[start])
}

func isClosingQuote(r rune) bool {
	return r == '"' || r == '”' || r == '’'
}
