// Package extract derives event frames from annotated sentences and
// backfills missing roles from narrative context.
package extract

import (
	"fmt"
	"strings"

	"github.com/memoweave/memoweave/internal/model"
)

// FrameConstructor derives event frames from a sentence and its annotation.
// Predicate tokens (verbs) anchor frames; roles are found by walking the
// token sequence around each anchor. The anchor and role tables below are
// policy, not grammar, and are meant to be tuned.
type FrameConstructor struct {
	auxiliaries     map[string]bool
	locationPreps   map[string]bool
	temporalPreps   map[string]bool
	temporalAdverbs map[string]bool
	temporalNouns   map[string]bool
}

// NewFrameConstructor creates a frame constructor with the default role
// tables.
func NewFrameConstructor() *FrameConstructor {
	return &FrameConstructor{
		auxiliaries: toSet(
			"be", "am", "is", "are", "was", "were", "been", "being",
			"have", "has", "had", "having",
			"do", "does", "did",
			"will", "would", "shall", "should", "may", "might", "can", "could", "must",
		),
		locationPreps: toSet(
			"in", "on", "at", "near", "by", "under", "over", "inside", "outside",
			"into", "onto", "behind", "beside", "beneath", "across", "through",
		),
		temporalPreps: toSet(
			"at", "on", "in", "during", "before", "after", "since", "until", "by",
		),
		temporalAdverbs: toSet(
			"yesterday", "today", "tomorrow", "now", "then", "later",
			"earlier", "soon", "tonight", "afterwards", "meanwhile",
		),
		temporalNouns: toSet(
			"morning", "afternoon", "evening", "night", "noon", "midnight",
			"dawn", "dusk", "day", "week", "month", "year", "hour", "minute",
			"moment", "sunset", "sunrise", "midday",
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			"january", "february", "march", "april", "may", "june", "july",
			"august", "september", "october", "november", "december",
		),
	}
}

// BuildAll constructs frames for all sentences in document order, assigning
// sequential event IDs. Sentences without an annotation (annotation failed
// upstream) contribute zero frames. Every frame's ChapterID is taken from
// its source sentence.
func (c *FrameConstructor) BuildAll(sentences []model.Sentence, annotations map[int]model.Annotation) []model.EventFrame {
	var frames []model.EventFrame
	counter := 1

	for _, sentence := range sentences {
		ann, ok := annotations[sentence.ID]
		if !ok {
			continue
		}

		for _, frame := range c.framesFor(sentence, ann) {
			frame.EventID = fmt.Sprintf("event_%d", counter)
			counter++
			frames = append(frames, frame)
		}
	}

	return frames
}

// framesFor derives zero or more frames from one annotated sentence. A
// sentence with no identifiable predicate yields zero frames; descriptive
// sentences are not errors. Multiple predicates yield multiple frames, each
// independently attributed.
func (c *FrameConstructor) framesFor(sentence model.Sentence, ann model.Annotation) []model.EventFrame {
	tokens := ann.Tokens

	var frames []model.EventFrame
	for i, tok := range tokens {
		if !c.isAnchor(tok) {
			continue
		}

		frame := model.EventFrame{
			ChapterID:    sentence.ChapterID,
			SentenceID:   sentence.ID,
			SentenceText: sentence.Text,
			Action:       tok.Text,
			ActionLemma:  Lemma(tok.Text),
		}

		frame.Actor = c.subjectBefore(tokens, i)
		frame.Target, frame.Location, frame.TimeRaw = c.complementsAfter(tokens, i)

		if frame.TimeRaw == "" {
			frame.TimeRaw = c.temporalAdverb(tokens)
		}
		if frame.TimeRaw == "" {
			frame.TimeRaw = temporalEntity(ann.Entities)
		}

		frames = append(frames, frame)
	}

	return frames
}

// isAnchor reports whether a token anchors an event frame: any verb form
// that is not an auxiliary. Participles after an auxiliary anchor the frame
// themselves ("was sitting" anchors at "sitting").
func (c *FrameConstructor) isAnchor(tok model.Token) bool {
	return strings.HasPrefix(tok.Tag, "VB") && !c.auxiliaries[strings.ToLower(tok.Text)]
}

// subjectBefore finds the actor: the nearest noun phrase before the
// anchor, skipping auxiliaries, stopping at another predicate. A bare
// personal pronoun marks the subject position but names no one, so the
// actor stays empty and chapter context backfills it downstream.
func (c *FrameConstructor) subjectBefore(tokens []model.Token, anchor int) string {
	for j := anchor - 1; j >= 0; j-- {
		tok := tokens[j]
		if strings.HasPrefix(tok.Tag, "VB") {
			if c.auxiliaries[strings.ToLower(tok.Text)] {
				continue
			}
			return "" // Another clause; the subject belongs to it.
		}
		if tok.Tag == "PRP" {
			return ""
		}
		if isNoun(tok.Tag) {
			start := j
			for start > 0 && isPhrasePart(tokens[start-1].Tag) {
				start--
			}
			return phraseText(tokens[start : j+1])
		}
	}
	return ""
}

// complementsAfter walks the tokens after the anchor and assigns the first
// bare noun phrase to target, prepositional phrases to location or time by
// preposition and head noun, stopping at the next predicate.
func (c *FrameConstructor) complementsAfter(tokens []model.Token, anchor int) (target, location, timeRaw string) {
	pendingPrep := ""

	for j := anchor + 1; j < len(tokens); j++ {
		tok := tokens[j]
		lower := strings.ToLower(tok.Text)

		if strings.HasPrefix(tok.Tag, "VB") && !c.auxiliaries[lower] {
			break
		}

		if tok.Tag == "IN" {
			pendingPrep = lower
			continue
		}

		if tok.Tag == "RB" && timeRaw == "" && c.temporalAdverbs[lower] {
			timeRaw = tok.Text
			continue
		}

		if !isPhraseStart(tok.Tag) {
			continue
		}

		end := j
		for end+1 < len(tokens) && isPhrasePart(tokens[end+1].Tag) {
			end++
		}
		phrase := phraseText(tokens[j : end+1])
		j = end

		switch {
		case pendingPrep != "" && c.isTemporalPhrase(pendingPrep, phrase):
			if timeRaw == "" {
				timeRaw = phrase
			}
		case c.locationPreps[pendingPrep]:
			if location == "" {
				location = phrase
			}
		case pendingPrep == "" && target == "":
			target = phrase
		}
		pendingPrep = ""
	}

	return target, location, timeRaw
}

// isTemporalPhrase decides whether a prepositional phrase is a time
// modifier. Prepositions like "at", "on", "in" are ambiguous between place
// and time, so the head words break the tie.
func (c *FrameConstructor) isTemporalPhrase(prep, phrase string) bool {
	if !c.temporalPreps[prep] {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		if c.temporalNouns[word] {
			return true
		}
	}
	// Prepositions that are only ever temporal need no noun evidence.
	switch prep {
	case "during", "before", "after", "since", "until":
		return true
	}
	return false
}

// temporalAdverb returns the first temporal adverb in the sentence.
func (c *FrameConstructor) temporalAdverb(tokens []model.Token) string {
	for _, tok := range tokens {
		if tok.Tag == "RB" && c.temporalAdverbs[strings.ToLower(tok.Text)] {
			return tok.Text
		}
	}
	return ""
}

// temporalEntity returns the first DATE or TIME entity span, if any.
func temporalEntity(entities []model.Entity) string {
	for _, ent := range entities {
		if ent.Label == "DATE" || ent.Label == "TIME" {
			return ent.Text
		}
	}
	return ""
}

func isNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// isPhraseStart reports whether a token can open a noun phrase.
func isPhraseStart(tag string) bool {
	switch tag {
	case "DT", "PRP", "PRP$", "CD", "NNP", "NNPS", "NN", "NNS", "JJ", "JJR", "JJS":
		return true
	}
	return false
}

// isPhrasePart reports whether a token can continue a noun phrase.
func isPhrasePart(tag string) bool {
	switch tag {
	case "DT", "PRP$", "CD", "NNP", "NNPS", "NN", "NNS", "JJ", "JJR", "JJS", "POS":
		return true
	}
	return false
}

func phraseText(tokens []model.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
