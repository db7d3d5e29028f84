package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/symdoc/internal/logfields"
)

// StageOutcome is the normalized result of executing a stage.
type StageOutcome struct {
	Stage     StageName
	Error     *StageError
	Result    StageResult
	IssueCode ReportIssueCode
	Severity  IssueSeverity
	Abort     bool
}

// RunStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStageError(st.Name, err)
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.AddIssue(IssueCanceled, st.Name, SeverityError, se.Error(), se)
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			return se
		}

		slog.Debug("Stage started", logfields.Stage(string(st.Name)))
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[st.Name] = dur
		if bs.Recorder != nil {
			bs.Recorder.ObserveStageDuration(string(st.Name), dur)
		}

		out := ClassifyStageResult(st.Name, err)
		if out.Error != nil {
			bs.Report.StageErrorKinds[st.Name] = out.Error.Kind
			bs.Report.AddIssue(out.IssueCode, out.Stage, out.Severity, out.Error.Error(), out.Error)
		}
		bs.Report.RecordStageResult(st.Name, out.Result, bs.Recorder)

		attrs := []any{logfields.Stage(string(st.Name)), logfields.Duration(dur), logfields.Outcome(string(out.Result))}
		if out.Error != nil {
			attrs = append(attrs, logfields.Error(out.Error.Err))
		}
		switch out.Result {
		case StageResultWarning:
			slog.Warn("Stage completed with warnings", attrs...)
		case StageResultFatal, StageResultCanceled:
			slog.Error("Stage failed", attrs...)
		default:
			slog.Debug("Stage completed", attrs...)
		}

		if out.Abort {
			if out.Error != nil {
				return out.Error
			}
			return fmt.Errorf("stage %s aborted", st.Name)
		}
	}
	return nil
}

// ClassifyStageResult converts the error returned by a stage into an outcome.
// Plain errors are fatal; context errors count as cancellation.
func ClassifyStageResult(stage StageName, err error) StageOutcome {
	if err == nil {
		return StageOutcome{Stage: stage, Result: StageResultSuccess}
	}

	var se *StageError
	if !errors.As(err, &se) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			se = NewCanceledStageError(stage, err)
		} else {
			se = NewFatalStageError(stage, err)
		}
	}

	switch se.Kind {
	case StageErrorCanceled:
		return StageOutcome{Stage: stage, Error: se, Result: StageResultCanceled, IssueCode: IssueCanceled, Severity: SeverityError, Abort: true}
	case StageErrorWarning:
		return StageOutcome{Stage: stage, Error: se, Result: StageResultWarning, IssueCode: issueCode(se), Severity: SeverityWarning}
	default:
		return StageOutcome{Stage: stage, Error: se, Result: StageResultFatal, IssueCode: issueCode(se), Severity: SeverityError, Abort: true}
	}
}

func issueCode(se *StageError) ReportIssueCode {
	switch se.Stage {
	case StageLoadDoclets:
		return IssueInputFailure
	case StageBuildGraph:
		if se.Kind == StageErrorWarning {
			return IssueGraphDiagnostics
		}
		return IssueGraphFailure
	case StageRenderIndex, StageRenderPages, StageAssets:
		return IssueRenderFailure
	case StageVerifyLinks:
		return IssueBrokenLinks
	default:
		return IssueGenericStageError
	}
}
