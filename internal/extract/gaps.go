package extract

import "github.com/memoweave/memoweave/internal/model"

// GapFiller backfills missing actor and location fields from narratively
// adjacent events. A null field inherits the nearest preceding non-null
// value within the same chapter (scene continuity); fields stay empty when
// no prior value exists in the chapter. Inheritance never reaches across a
// chapter boundary.
//
// This is a lossy heuristic, not ground truth. Inherited values are flagged
// via the frame's provenance fields and remain advisory through the rest of
// the pipeline; the reasoning model is the final arbiter.
type GapFiller struct{}

// NewGapFiller creates a gap filler.
func NewGapFiller() *GapFiller {
	return &GapFiller{}
}

// Fill returns a copy of the frames with actor and location backfilled.
// Input must be in narrative order. Fill is idempotent: running it on an
// already-filled sequence changes nothing.
func (g *GapFiller) Fill(frames []model.EventFrame) []model.EventFrame {
	filled := make([]model.EventFrame, len(frames))
	copy(filled, frames)

	chapter := 0
	lastActor := ""
	lastLocation := ""

	for i := range filled {
		frame := &filled[i]

		if frame.ChapterID != chapter {
			chapter = frame.ChapterID
			lastActor = ""
			lastLocation = ""
		}

		if frame.Actor == "" && lastActor != "" {
			frame.Actor = lastActor
			frame.ActorInherited = true
		}
		if frame.Location == "" && lastLocation != "" {
			frame.Location = lastLocation
			frame.LocationInherited = true
		}

		if frame.Actor != "" {
			lastActor = frame.Actor
		}
		if frame.Location != "" {
			lastLocation = frame.Location
		}
	}

	return filled
}
