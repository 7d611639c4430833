// Package pipeline orchestrates the analysis state machine: a document
// goes through segmentation, annotation, frame extraction, and
// projection, then a single reasoning call produces the consistency
// verdict. Stages run in a fixed order and the run fails fast, so a
// stream never mixes partial results with errors.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/memoweave/memoweave/internal/annotate"
	"github.com/memoweave/memoweave/internal/extract"
	"github.com/memoweave/memoweave/internal/llm"
	"github.com/memoweave/memoweave/internal/loader"
	"github.com/memoweave/memoweave/internal/memory"
	"github.com/memoweave/memoweave/internal/model"
	"github.com/memoweave/memoweave/internal/project"
	"github.com/memoweave/memoweave/internal/prompt"
	"github.com/memoweave/memoweave/internal/segment"
	"github.com/memoweave/memoweave/internal/temporal"
	"github.com/memoweave/memoweave/internal/worker"
)

// Pipeline holds the stage components for document analysis. A single
// Pipeline serves many requests concurrently; all components are
// stateless or internally synchronized.
type Pipeline struct {
	segmenter  *segment.Segmenter
	tokenizer  *segment.Tokenizer
	annotator  annotate.Annotator
	frames     *extract.FrameConstructor
	gaps       *extract.GapFiller
	classifier *temporal.Classifier
	projector  *project.Projector
	prompts    *prompt.Builder
	client     *llm.Client
	memories   *memory.Store
	config     *model.Config
}

// New creates a pipeline from configuration. The reasoning provider is
// mandatory; a misconfigured provider fails here, not mid-analysis.
func New(cfg *model.Config) (*Pipeline, error) {
	client, err := llm.NewClient(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("reasoning client: %w", err)
	}
	return NewWithComponents(cfg, annotate.NewProseAnnotator(), client), nil
}

// NewWithComponents creates a pipeline with an explicit annotator and
// reasoning client.
func NewWithComponents(cfg *model.Config, annotator annotate.Annotator, client *llm.Client) *Pipeline {
	var memories *memory.Store
	if cfg.Cache.Enabled {
		memories = memory.NewStore(cfg.Cache.TTL)
	}
	return &Pipeline{
		segmenter:  segment.NewSegmenter(),
		tokenizer:  segment.NewTokenizer(),
		annotator:  annotator,
		frames:     extract.NewFrameConstructor(),
		gaps:       extract.NewGapFiller(),
		classifier: temporal.NewClassifier(),
		projector:  project.NewProjector(),
		prompts:    prompt.NewBuilder(),
		client:     client,
		memories:   memories,
		config:     cfg,
	}
}

// Request is one analysis of one document under one rule.
type Request struct {
	ID       string
	Filename string
	Text     string
	Rule     model.Rule

	// ForceRebuild skips the event-memory cache and re-extracts the
	// document even when a cached memory exists.
	ForceRebuild bool
}

// NewRequest assigns a fresh request ID.
func NewRequest(filename, text string, rule model.Rule) Request {
	return Request{
		ID:       uuid.NewString(),
		Filename: filename,
		Text:     text,
		Rule:     rule,
	}
}

var stageMessages = map[model.Stage]string{
	model.StageSegmenting:         "Segmenting chapters",
	model.StageTokenizing:         "Splitting sentences",
	model.StageAnnotating:         "Tagging parts of speech",
	model.StageConstructingFrames: "Constructing event frames",
	model.StageFillingGaps:        "Filling actor and location gaps",
	model.StageExtractingTime:     "Classifying time expressions",
	model.StageProjecting:         "Projecting rule views",
	model.StageBuildingPrompt:     "Building reasoning prompt",
	model.StageReasoning:          "Consulting reasoning model",
}

// Analyze runs the full state machine for one request and streams
// events to the returned channel. The channel receives one progress
// event per stage in order, then exactly one terminal event, and is
// closed. The caller must drain it.
func (p *Pipeline) Analyze(ctx context.Context, req Request) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		p.run(ctx, req, &emitter{ch: ch})
	}()
	return ch
}

func (p *Pipeline) run(ctx context.Context, req Request, emit *emitter) {
	var mem *model.EventMemory
	var reused bool
	if !req.ForceRebuild {
		mem, reused = p.recall(req.Text)
	}
	if reused {
		for _, stage := range model.Stages[:6] {
			emit.progress(stage, stageMessages[stage]+" (reused)")
		}
	} else {
		var failedAt model.Stage
		var err error
		mem, failedAt, err = p.extract(ctx, req, emit)
		if err != nil {
			emit.fail(failedAt, err)
			return
		}
		p.remember(req.Text, mem)
	}

	emit.progress(model.StageProjecting, stageMessages[model.StageProjecting])
	userPrompt, err := p.project(req.Rule, mem.Frames, emit)
	if err != nil {
		emit.fail(model.StageProjecting, err)
		return
	}

	// The prompt was already rendered during projection; the stage is
	// reported separately to keep the stream shape stable.
	emit.progress(model.StageBuildingPrompt, stageMessages[model.StageBuildingPrompt])

	if err := ctx.Err(); err != nil {
		emit.fail(model.StageReasoning, err)
		return
	}
	emit.progress(model.StageReasoning, stageMessages[model.StageReasoning])
	feedback, err := p.client.Evaluate(ctx, prompt.SystemPrompt(req.Rule), userPrompt)
	if err != nil {
		emit.fail(model.StageReasoning, err)
		return
	}

	emit.result(feedback)
}

// extract runs stages one through six and returns the event memory.
// On failure it reports the stage that failed.
func (p *Pipeline) extract(ctx context.Context, req Request, emit *emitter) (*model.EventMemory, model.Stage, error) {
	emit.progress(model.StageSegmenting, stageMessages[model.StageSegmenting])
	chapters, err := p.segmenter.Split(req.Text)
	if err != nil {
		return nil, model.StageSegmenting, err
	}

	emit.progress(model.StageTokenizing, stageMessages[model.StageTokenizing])
	var sentences []model.Sentence
	nextID := 1
	for _, chapter := range chapters {
		var chapterSentences []model.Sentence
		chapterSentences, nextID = p.tokenizer.Tokenize(chapter, nextID)
		sentences = append(sentences, chapterSentences...)
	}

	emit.progress(model.StageAnnotating, stageMessages[model.StageAnnotating])
	annotations, warnings := p.annotate(sentences)

	emit.progress(model.StageConstructingFrames, stageMessages[model.StageConstructingFrames])
	frames := p.frames.BuildAll(sentences, annotations)

	emit.progress(model.StageFillingGaps, stageMessages[model.StageFillingGaps])
	frames = p.gaps.Fill(frames)

	emit.progress(model.StageExtractingTime, stageMessages[model.StageExtractingTime])
	frames, timeWarnings := p.classifier.Apply(frames)
	warnings = append(warnings, timeWarnings...)

	return &model.EventMemory{
		Chapters:  chapters,
		Sentences: sentences,
		Frames:    frames,
		Warnings:  warnings,
		BuiltAt:   time.Now().UTC(),
	}, "", nil
}

type annotateJob struct {
	sentence  model.Sentence
	annotator annotate.Annotator
}

type annotateResult struct {
	sentenceID int
	annotation model.Annotation
	err        error
}

func (r *annotateResult) GetError() error { return r.err }

func (j *annotateJob) Execute(ctx context.Context) worker.Result {
	ann, err := j.annotator.Annotate(j.sentence)
	return &annotateResult{sentenceID: j.sentence.ID, annotation: ann, err: err}
}

// annotate fans sentences out over a worker pool. A sentence that fails
// annotation is skipped with a warning; frame construction treats
// missing annotations as sentences without events.
func (p *Pipeline) annotate(sentences []model.Sentence) (map[int]model.Annotation, []model.Warning) {
	workers := p.config.Pipeline.AnnotationWorkers
	pool := worker.NewPool(workers)
	pool.Start()
	for _, sentence := range sentences {
		pool.Submit(&annotateJob{sentence: sentence, annotator: p.annotator})
	}
	results := pool.Wait()

	sorted := make([]*annotateResult, 0, len(results))
	for _, r := range results {
		sorted = append(sorted, r.(*annotateResult))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].sentenceID < sorted[j].sentenceID })

	annotations := make(map[int]model.Annotation, len(sorted))
	var warnings []model.Warning
	for _, r := range sorted {
		if r.err != nil {
			warnings = append(warnings, model.Warning{
				Stage:      string(model.StageAnnotating),
				SentenceID: r.sentenceID,
				Message:    r.err.Error(),
			})
			continue
		}
		annotations[r.sentenceID] = r.annotation
	}
	return annotations, warnings
}

// project renders the rule view and its prompt, writing CSV artifacts
// when configured.
func (p *Pipeline) project(rule model.Rule, frames []model.EventFrame, emit *emitter) (string, error) {
	switch rule {
	case model.RuleTemporal:
		rows := p.projector.Temporal(frames)
		if p.config.Output.WriteCSV {
			if _, err := p.projector.WriteTemporalCSV(p.config.Output.Dir, rows); err != nil {
				return "", fmt.Errorf("write temporal CSV: %w", err)
			}
		}
		return p.prompts.Temporal(rows), nil
	case model.RuleRoleCompleteness:
		rows := p.projector.Roles(frames)
		if p.config.Output.WriteCSV {
			if _, err := p.projector.WriteRoleCSV(p.config.Output.Dir, rows); err != nil {
				return "", fmt.Errorf("write role CSV: %w", err)
			}
		}
		return p.prompts.Roles(rows), nil
	default:
		return "", fmt.Errorf("unknown rule: %s", rule)
	}
}

func (p *Pipeline) recall(text string) (*model.EventMemory, bool) {
	if p.memories == nil {
		return nil, false
	}
	return p.memories.Get(memory.Key(text))
}

func (p *Pipeline) remember(text string, mem *model.EventMemory) {
	if p.memories != nil {
		p.memories.Put(memory.Key(text), mem)
	}
}

// AnalyzeSync runs an analysis and blocks until the terminal event,
// returning the feedback. Progress events invoke onProgress when it is
// non-nil.
func (p *Pipeline) AnalyzeSync(ctx context.Context, req Request, onProgress func(Event)) (string, error) {
	var feedback string
	var failure error
	for event := range p.Analyze(ctx, req) {
		switch event.Type {
		case EventProgress:
			if onProgress != nil {
				onProgress(event)
			}
		case EventResult:
			feedback = event.Feedback
		case EventError:
			failure = event.Err
		}
	}
	if failure != nil {
		return "", failure
	}
	return feedback, nil
}

// FileAnalyzer adapts the pipeline to per-file batch processing under a
// fixed rule.
type FileAnalyzer struct {
	pipeline *Pipeline
	rule     model.Rule
}

// FileAnalyzer returns a batch adapter checking files under rule.
func (p *Pipeline) FileAnalyzer(rule model.Rule) *FileAnalyzer {
	return &FileAnalyzer{pipeline: p, rule: rule}
}

// AnalyzeFile loads one story file and runs a full analysis.
func (a *FileAnalyzer) AnalyzeFile(ctx context.Context, path string) (string, error) {
	text, err := loader.Read(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return a.pipeline.AnalyzeSync(ctx, NewRequest(path, text, a.rule), nil)
}
