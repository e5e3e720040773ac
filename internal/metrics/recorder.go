package metrics

import "time"

// Stage names a phase of a check run.
type Stage string

const (
	StageLoad    Stage = "load"
	StageBuild   Stage = "build"
	StageResolve Stage = "resolve"
	StagePublish Stage = "publish"
)

// OutcomeLabel enumerates final run outcomes for counters.
type OutcomeLabel string

const (
	// OutcomeClean means every leaf resolved and nothing is orphaned.
	OutcomeClean OutcomeLabel = "clean"
	// OutcomeWarning means findings exist but the policy accepted them.
	OutcomeWarning OutcomeLabel = "warning"
	// OutcomeFailed means the policy rejected the report.
	OutcomeFailed OutcomeLabel = "failed"
	// OutcomeInvalid means the sidebar or content could not be loaded.
	OutcomeInvalid OutcomeLabel = "invalid"
)

// Recorder defines observability hooks for check runs.
type Recorder interface {
	ObserveStageDuration(stage Stage, d time.Duration)
	ObserveRunDuration(d time.Duration)
	SetResolution(site string, resolved, missing, orphaned int)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(Stage, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)          {}
func (NoopRecorder) SetResolution(string, int, int, int)       {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                {}
