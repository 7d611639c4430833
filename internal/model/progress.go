package model

// Stage identifies one step of the analysis state machine. Stages always
// execute in declaration order; Done and Failed are terminal.
type Stage string

const (
	StageSegmenting         Stage = "Segmenting"
	StageTokenizing         Stage = "Tokenizing"
	StageAnnotating         Stage = "Annotating"
	StageConstructingFrames Stage = "ConstructingFrames"
	StageFillingGaps        Stage = "FillingGaps"
	StageExtractingTime     Stage = "ExtractingTime"
	StageProjecting         Stage = "Projecting"
	StageBuildingPrompt     Stage = "BuildingPrompt"
	StageReasoning          Stage = "Reasoning"
	StageDone               Stage = "Done"
	StageFailed             Stage = "Failed"
)

// Stages lists the non-terminal stages in execution order.
var Stages = []Stage{
	StageSegmenting,
	StageTokenizing,
	StageAnnotating,
	StageConstructingFrames,
	StageFillingGaps,
	StageExtractingTime,
	StageProjecting,
	StageBuildingPrompt,
	StageReasoning,
}
