package model

import (
	"fmt"
	"time"
)

// TimeType classifies the temporal signal attached to an event frame.
type TimeType string

const (
	TimeAbsolute   TimeType = "absolute"   // Explicit calendar/clock point
	TimeRelative   TimeType = "relative"   // Offset from a reference event
	TimeUnresolved TimeType = "unresolved" // Opaque text, left to the reasoning model
)

// EventFrame is a structured record of one narrative happening derived from
// a single sentence. ChapterID is denormalized from the source sentence and
// must always agree with it. Empty strings stand for absent fields.
type EventFrame struct {
	EventID      string `json:"event_id"`
	ChapterID    int    `json:"chapter_id"`
	SentenceID   int    `json:"sentence_id"`
	SentenceText string `json:"text"`

	Action      string `json:"action"`
	ActionLemma string `json:"action_lemma,omitempty"`
	Actor       string `json:"actor,omitempty"`
	Target      string `json:"target,omitempty"`
	Location    string `json:"location,omitempty"`

	TimeRaw        string   `json:"time_raw,omitempty"`
	TimeNormalized string   `json:"time_normalized,omitempty"`
	TimeType       TimeType `json:"time_type,omitempty"`

	// Provenance for gap-filled fields. Inherited values are a narrative
	// locality heuristic, not ground truth; downstream stages must treat
	// them as advisory.
	ActorInherited    bool `json:"actor_inherited,omitempty"`
	LocationInherited bool `json:"location_inherited,omitempty"`
}

// Rule selects which consistency check a pipeline run performs.
type Rule string

const (
	RuleTemporal         Rule = "temporal"
	RuleRoleCompleteness Rule = "role_completeness"
)

// ParseRule validates a rule name from an external request.
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case RuleTemporal:
		return RuleTemporal, nil
	case RuleRoleCompleteness:
		return RuleRoleCompleteness, nil
	default:
		return "", fmt.Errorf("unknown rule: %q (supported: temporal, role_completeness)", s)
	}
}

// TemporalRow is one row of the temporal-consistency projection. Row types
// deliberately carry no event or sentence IDs so prompts cannot leak them.
type TemporalRow struct {
	ChapterID int      `json:"chapter_id"`
	EventText string   `json:"event_text"`
	TimeRaw   string   `json:"time_raw"`
	TimeType  TimeType `json:"time_type"`
}

// RoleRow is one row of the role-completeness projection.
type RoleRow struct {
	ChapterID int    `json:"chapter_id"`
	EventText string `json:"event_text"`
	Actor     string `json:"actor"`
	Target    string `json:"target"`
	Location  string `json:"location"`
}

// Warning records a non-fatal, stage-local issue absorbed by the pipeline.
type Warning struct {
	Stage      string `json:"stage"`
	SentenceID int    `json:"sentence_id,omitempty"`
	Message    string `json:"message"`
}

// EventMemory bundles the finished artifacts of the extraction stages for
// one document. It is self-contained and safe to reuse across requests with
// different rules.
type EventMemory struct {
	Chapters  []Chapter    `json:"chapters"`
	Sentences []Sentence   `json:"sentences"`
	Frames    []EventFrame `json:"events"`
	Warnings  []Warning    `json:"warnings,omitempty"`
	BuiltAt   time.Time    `json:"built_at"`
}
