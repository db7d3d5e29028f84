package publish

import (
	"context"
	"fmt"
)

// Stage is a discrete unit of work in a publish run.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a publish stage.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageLoadDoclets   StageName = "load_doclets"
	StageBuildGraph    StageName = "build_graph"
	StageAssets        StageName = "stage_assets"
	StageRenderIndex   StageName = "render_index"
	StageRenderPages   StageName = "render_pages"
	StageVerifyLinks   StageName = "verify_links"
	StageWriteReport   StageName = "write_report"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Run must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError ties an error to the stage that produced it.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageResult captures the high-level outcome of a stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

func NewFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func NewWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func NewCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 8)} }

// Add appends a stage unconditionally.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// AddIf appends a stage only if cond is true.
func (p *Pipeline) AddIf(cond bool, name StageName, fn Stage) *Pipeline {
	if cond {
		p.Add(name, fn)
	}
	return p
}

// Build returns a copy of the stage definitions.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// Names lists the stage names in order.
func (p *Pipeline) Names() []StageName {
	out := make([]StageName, len(p.Defs))
	for i, d := range p.Defs {
		out[i] = d.Name
	}
	return out
}
