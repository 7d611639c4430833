// Package segment splits raw narrative text into ordered chapters and
// sentences with stable IDs. Boundary errors here propagate silently through
// every later stage, so these heuristics carry the load for the whole
// pipeline.
package segment

import (
	"errors"
	"regexp"
	"strings"

	"github.com/memoweave/memoweave/internal/model"
)

// ErrEmptyDocument is returned when there is no text to segment.
var ErrEmptyDocument = errors.New("document contains no text")

// Segmenter splits a document into ordered chapters on structural markers.
type Segmenter struct {
	marker *regexp.Regexp
}

// chapterMarker matches a structural chapter heading at the start of a line:
// "Chapter 7", "CHAPTER XII", "Prologue", "Epilogue", or a markdown heading.
var chapterMarker = regexp.MustCompile(`(?mi)^[ \t]*(chapter\s+(\d+|[ivxlcdm]+)\b.*|prologue\b.*|epilogue\b.*|#{1,3}\s+.+)$`)

// NewSegmenter creates a new chapter segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{marker: chapterMarker}
}

// Split segments the document into chapters. Text with no detectable markers
// becomes a single chapter. Text preceding the first marker is folded into
// the first chapter, so the chapter count always equals the marker count.
// Same input always yields the same boundaries.
func (s *Segmenter) Split(text string) ([]model.Chapter, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	locs := s.marker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []model.Chapter{{ID: 1, Text: strings.TrimSpace(text)}}, nil
	}

	chapters := make([]model.Chapter, 0, len(locs))
	for i, loc := range locs {
		headingLine := strings.TrimSpace(text[loc[0]:loc[1]])

		bodyStart := loc[1]
		bodyEnd := len(text)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := strings.TrimSpace(text[bodyStart:bodyEnd])

		// Preface text before the first marker belongs to the first chapter.
		if i == 0 {
			if preface := strings.TrimSpace(text[:loc[0]]); preface != "" {
				body = preface + "\n" + body
			}
		}

		chapters = append(chapters, model.Chapter{
			ID:    i + 1,
			Title: cleanTitle(headingLine),
			Text:  body,
		})
	}

	return chapters, nil
}

// cleanTitle strips markdown heading syntax from a chapter title.
func cleanTitle(heading string) string {
	return strings.TrimSpace(strings.TrimLeft(heading, "# \t"))
}
