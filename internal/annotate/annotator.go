// Package annotate attaches part-of-speech and named-entity annotations to
// sentences. The NLP engine is a wrapped capability behind the Annotator
// interface, not something this package reimplements.
package annotate

import (
	"errors"
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/memoweave/memoweave/internal/model"
)

// ErrEmptySentence is returned for sentences with no annotatable text.
var ErrEmptySentence = errors.New("sentence has no annotatable text")

// Annotator produces the linguistic annotation for a single sentence. It is
// a pure function over one sentence (no cross-sentence state), so callers
// may annotate sentences in parallel.
type Annotator interface {
	Annotate(sentence model.Sentence) (model.Annotation, error)
}

// ProseAnnotator is the default Annotator, backed by the prose NLP engine.
// It emits Penn Treebank POS tags and named-entity spans. Sentence
// segmentation is disabled; boundaries are owned by the tokenizer upstream.
type ProseAnnotator struct{}

// NewProseAnnotator creates the default annotator.
func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

// Annotate tags one sentence. Failures are non-fatal for the pipeline: the
// orchestrator records a warning and the sentence contributes zero frames.
func (a *ProseAnnotator) Annotate(sentence model.Sentence) (model.Annotation, error) {
	text := strings.TrimSpace(sentence.Text)
	if text == "" {
		return model.Annotation{}, ErrEmptySentence
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return model.Annotation{}, fmt.Errorf("annotate sentence %d: %w", sentence.ID, err)
	}

	ann := model.Annotation{SentenceID: sentence.ID}

	for _, tok := range doc.Tokens() {
		ann.Tokens = append(ann.Tokens, model.Token{
			Text: tok.Text,
			Tag:  tok.Tag,
		})
	}

	for _, ent := range doc.Entities() {
		ann.Entities = append(ann.Entities, model.Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	if len(ann.Tokens) == 0 {
		return model.Annotation{}, ErrEmptySentence
	}

	return ann, nil
}
