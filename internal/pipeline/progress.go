package pipeline

import "github.com/memoweave/memoweave/internal/model"

// EventType distinguishes progress ticks from terminal frames.
type EventType string

const (
	EventProgress EventType = "progress"
	EventResult   EventType = "result"
	EventError    EventType = "error"
)

// Event is one element of an analysis progress stream. A stream is a
// sequence of progress events in stage order followed by exactly one
// terminal event, either result or error.
type Event struct {
	Type    EventType
	Stage   model.Stage
	Message string

	// Feedback carries the reasoning verdict on result events.
	Feedback string

	// Err is set on error events only.
	Err error
}

// emitter delivers events to a single listener channel. All sends
// happen from the one analysis goroutine, so ordering is the send
// order.
type emitter struct {
	ch chan<- Event
}

func (e *emitter) progress(stage model.Stage, message string) {
	e.ch <- Event{Type: EventProgress, Stage: stage, Message: message}
}

func (e *emitter) result(feedback string) {
	e.ch <- Event{Type: EventResult, Stage: model.StageDone, Feedback: feedback}
}

func (e *emitter) fail(stage model.Stage, err error) {
	e.ch <- Event{Type: EventError, Stage: stage, Err: err}
}
