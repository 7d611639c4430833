// Package prompt renders tabular event views into bounded natural-language
// prompts for the reasoning model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/memoweave/memoweave/internal/model"
)

// Builder renders one user prompt per analysis request: one line per event,
// grouped under a "Chapter N:" heading, in row order. The row types carry
// no event or sentence IDs, so the no-ID contract holds by construction.
type Builder struct{}

// NewBuilder creates a prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Temporal renders the temporal-consistency user prompt.
func (b *Builder) Temporal(rows []model.TemporalRow) string {
	var sb strings.Builder
	sb.WriteString("You are a story consistency validator. Detect any **temporal inconsistencies** in the story. ")
	sb.WriteString("Summarize violations per chapter in human-readable paragraph form. ")
	sb.WriteString("If there are no violations, respond 'No Violations. Wohoo!'\n\n")

	writeChapters(&sb, len(rows), func(emit func(chapter int, line string)) {
		for _, row := range rows {
			emit(row.ChapterID, fmt.Sprintf("- %s (time: %s, type: %s)", row.EventText, row.TimeRaw, row.TimeType))
		}
	})

	return sb.String()
}

// Roles renders the role-completeness user prompt.
func (b *Builder) Roles(rows []model.RoleRow) string {
	var sb strings.Builder
	sb.WriteString("You are a story consistency validator. Detect any **role completeness violations** in the story. ")
	sb.WriteString("Summarize violations per chapter in human-readable paragraph form. ")
	sb.WriteString("If there are no violations, respond 'No Violations. Wohoo!'\n\n")

	writeChapters(&sb, len(rows), func(emit func(chapter int, line string)) {
		for _, row := range rows {
			emit(row.ChapterID, fmt.Sprintf("- %s (actor: %s, target: %s, location: %s)",
				row.EventText, orUnknown(row.Actor), orUnknown(row.Target), orUnknown(row.Location)))
		}
	})

	return sb.String()
}

// writeChapters groups emitted lines under chapter headings in row order.
// Rows arrive already grouped by ascending chapter, so a heading is written
// whenever the chapter changes.
func writeChapters(sb *strings.Builder, total int, visit func(emit func(chapter int, line string))) {
	if total == 0 {
		sb.WriteString("(no events extracted)\n")
		return
	}

	current := 0
	visit(func(chapter int, line string) {
		if chapter != current {
			if current != 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(sb, "Chapter %d:\n", chapter)
			current = chapter
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	})
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
