// Package project serializes a finished event set into the per-rule tabular
// views handed to the prompt builder.
package project

import (
	"strings"

	"github.com/memoweave/memoweave/internal/model"
)

// Projector renders event frames into rule-specific row sets. Rows are
// grouped by ascending chapter with narrative order preserved inside each
// chapter, and never carry event or sentence IDs.
type Projector struct{}

// NewProjector creates a projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Temporal builds the temporal-consistency view. Frames without a temporal
// signal are skipped; they have nothing to contribute to ordering checks.
func (p *Projector) Temporal(frames []model.EventFrame) []model.TemporalRow {
	var rows []model.TemporalRow
	for _, frame := range frames {
		if frame.TimeRaw == "" {
			continue
		}
		rows = append(rows, model.TemporalRow{
			ChapterID: frame.ChapterID,
			EventText: EventText(frame),
			TimeRaw:   frame.TimeRaw,
			TimeType:  frame.TimeType,
		})
	}
	return rows
}

// Roles builds the role-completeness view. Frames with no actor even after
// gap filling are skipped, matching the projection the reasoning prompt was
// designed around.
func (p *Projector) Roles(frames []model.EventFrame) []model.RoleRow {
	var rows []model.RoleRow
	for _, frame := range frames {
		if frame.Actor == "" {
			continue
		}
		rows = append(rows, model.RoleRow{
			ChapterID: frame.ChapterID,
			EventText: EventText(frame),
			Actor:     frame.Actor,
			Target:    frame.Target,
			Location:  frame.Location,
		})
	}
	return rows
}

// EventText renders a frame as human-readable text: resolved actor, action
// and target. Internal IDs never appear here.
func EventText(frame model.EventFrame) string {
	parts := make([]string, 0, 3)
	if frame.Actor != "" {
		parts = append(parts, frame.Actor)
	}
	parts = append(parts, frame.Action)
	if frame.Target != "" {
		parts = append(parts, frame.Target)
	}
	return strings.Join(parts, " ")
}
