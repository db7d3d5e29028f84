package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/linkverify"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
	"git.home.luguber.info/inful/symdoc/internal/version"
)

// SchemaVersion of the JSON report.
const SchemaVersion = 1

// BuildOutcome is the final result of a run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// ReportIssueCode enumerates machine-parseable issue identifiers. Codes are
// only ever appended.
type ReportIssueCode string

const (
	IssueCanceled          ReportIssueCode = "BUILD_CANCELED"
	IssueGenericStageError ReportIssueCode = "GENERIC_STAGE_ERROR"
	IssueInputFailure      ReportIssueCode = "INPUT_FAILURE"
	IssueGraphFailure      ReportIssueCode = "GRAPH_FAILURE"
	IssueGraphDiagnostics  ReportIssueCode = "GRAPH_DIAGNOSTICS"
	IssueRenderFailure     ReportIssueCode = "RENDER_FAILURE"
	IssueBrokenLinks       ReportIssueCode = "BROKEN_LINKS"
)

// IssueSeverity represents normalized severity levels.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// ReportIssue is one structured problem met during the run.
type ReportIssue struct {
	Code     ReportIssueCode `json:"code"`
	Stage    StageName       `json:"stage"`
	Severity IssueSeverity   `json:"severity"`
	Message  string          `json:"message"`
}

// StageCount aggregates outcomes of a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// Counts are the sizes observed along the run.
type Counts struct {
	Records        int `json:"records"`
	Kept           int `json:"kept"`
	Undocumented   int `json:"undocumented"`
	Malformed      int `json:"malformed"`
	Nodes          int `json:"nodes"`
	Roots          int `json:"roots"`
	Pages          int `json:"pages"`
	PagesWritten   int `json:"pages_written"`
	PagesUnchanged int `json:"pages_unchanged"`
	Assets         int `json:"assets"`
	LinksChecked   int `json:"links_checked"`
	BrokenLinks    int `json:"broken_links"`
}

// BuildReport captures what happened during one run.
type BuildReport struct {
	BuildID         string
	Start           time.Time
	End             time.Time
	Input           string
	Output          string
	Revision        string
	Counts          Counts
	Errors          []error
	Warnings        []error
	Issues          []ReportIssue
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Diagnostics     []graph.Diagnostic
	BrokenLinks     []linkverify.BrokenLink
	Outcome         BuildOutcome
}

// NewBuildReport starts a report with a fresh build id.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		BuildID:         uuid.NewString(),
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

// AddIssue appends an issue and mirrors its error into Errors or Warnings.
func (r *BuildReport) AddIssue(code ReportIssueCode, stage StageName, severity IssueSeverity, msg string, err error) {
	r.Issues = append(r.Issues, ReportIssue{Code: code, Stage: stage, Severity: severity, Message: msg})
	if err == nil {
		return
	}
	switch severity {
	case SeverityError:
		r.Errors = append(r.Errors, err)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, err)
	}
}

// RecordStageResult updates the per-stage counters and the recorder.
func (r *BuildReport) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	var label metrics.ResultLabel
	switch res {
	case StageResultSuccess:
		sc.Success++
		label = metrics.ResultSuccess
	case StageResultWarning:
		sc.Warning++
		label = metrics.ResultWarning
	case StageResultFatal:
		sc.Fatal++
		label = metrics.ResultFatal
	case StageResultCanceled:
		sc.Canceled++
		label = metrics.ResultCanceled
	}
	r.StageCounts[stage] = sc
	if recorder != nil {
		recorder.IncStageResult(string(stage), label)
	}
}

// Finish stamps the end time and derives the outcome.
func (r *BuildReport) Finish() {
	r.End = time.Now()
	r.DeriveOutcome()
}

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *BuildReport) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Duration is the wall time of the run, up to now while it is still going.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("symbols=%d pages=%d written=%d unchanged=%d diagnostics=%d broken_links=%d errors=%d warnings=%d duration=%s outcome=%s",
		r.Counts.Nodes, r.Counts.Pages, r.Counts.PagesWritten, r.Counts.PagesUnchanged, len(r.Diagnostics),
		r.Counts.BrokenLinks, len(r.Errors), len(r.Warnings), r.Duration().Truncate(time.Millisecond), r.Outcome)
}

// Persist writes the JSON report to path atomically.
func (r *BuildReport) Persist(path string) error {
	if r.End.IsZero() {
		r.Finish()
	}
	data, err := json.MarshalIndent(r.Serializable(), "", "  ")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "marshal report").Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create report directory").WithContext("path", path).Build()
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write report").WithContext("path", tmp).Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "rename report").WithContext("path", path).Build()
	}
	return nil
}

// Serializable converts the report into its JSON form.
func (r *BuildReport) Serializable() *BuildReportSerializable {
	s := &BuildReportSerializable{
		SchemaVersion:    SchemaVersion,
		BuildID:          r.BuildID,
		SymdocVersion:    version.Version,
		Start:            r.Start,
		End:              r.End,
		DurationMS:       r.Duration().Milliseconds(),
		Input:            r.Input,
		Output:           r.Output,
		Revision:         r.Revision,
		Outcome:          string(r.Outcome),
		Counts:           r.Counts,
		Errors:           make([]string, len(r.Errors)),
		Warnings:         make([]string, len(r.Warnings)),
		Issues:           r.Issues,
		StageDurationsMS: make(map[string]int64, len(r.StageDurations)),
		StageErrorKinds:  make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:      make(map[string]StageCount, len(r.StageCounts)),
		DiagnosticCounts: make(map[string]int),
		Diagnostics:      r.Diagnostics,
		BrokenLinks:      r.BrokenLinks,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageDurations {
		s.StageDurationsMS[string(k)] = v.Milliseconds()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	for code, n := range graph.CountByCode(r.Diagnostics) {
		s.DiagnosticCounts[string(code)] = n
	}
	if s.Issues == nil {
		s.Issues = []ReportIssue{}
	}
	if s.Diagnostics == nil {
		s.Diagnostics = []graph.Diagnostic{}
	}
	return s
}

// BuildReportSerializable mirrors BuildReport with string errors.
type BuildReportSerializable struct {
	SchemaVersion    int                     `json:"schema_version"`
	BuildID          string                  `json:"build_id"`
	SymdocVersion    string                  `json:"symdoc_version"`
	Start            time.Time               `json:"start"`
	End              time.Time               `json:"end"`
	DurationMS       int64                   `json:"duration_ms"`
	Input            string                  `json:"input,omitempty"`
	Output           string                  `json:"output,omitempty"`
	Revision         string                  `json:"revision,omitempty"`
	Outcome          string                  `json:"outcome"`
	Counts           Counts                  `json:"counts"`
	Errors           []string                `json:"errors"`
	Warnings         []string                `json:"warnings"`
	Issues           []ReportIssue           `json:"issues"`
	StageDurationsMS map[string]int64        `json:"stage_durations_ms"`
	StageErrorKinds  map[string]string       `json:"stage_error_kinds"`
	StageCounts      map[string]StageCount   `json:"stage_counts"`
	DiagnosticCounts map[string]int          `json:"diagnostic_counts"`
	Diagnostics      []graph.Diagnostic      `json:"diagnostics"`
	BrokenLinks      []linkverify.BrokenLink `json:"broken_links,omitempty"`
}

// label maps the outcome onto the metrics label.
func (o BuildOutcome) label() metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case OutcomeFailed:
		return metrics.BuildOutcomeFailed
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeSuccess
	}
}
