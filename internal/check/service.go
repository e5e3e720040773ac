// Package check runs the sitenav pipeline for one site configuration: build
// the navigation tree, snapshot the content store, resolve, record and
// publish. CLI and watch mode both route through Service.
package check

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/notify"
	"git.home.luguber.info/inful/sitenav/internal/observability"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
)

// Loader produces the content snapshot for a run.
type Loader func(ctx context.Context, cc config.ContentConfig) (*content.Snapshot, error)

// Result is the outcome of one check run.
type Result struct {
	RunID     string
	Site      string
	Policy    resolve.Policy
	Outcome   metrics.OutcomeLabel
	StartTime time.Time
	Duration  time.Duration

	// Tree is nil when the sidebar failed to build.
	Tree *nav.Tree
	// Snapshot and Report are nil when the run stopped before resolution.
	Snapshot *content.Snapshot
	Report   *resolve.Report
}

// Service executes check runs. It is safe for concurrent use.
type Service struct {
	recorder  metrics.Recorder
	publisher notify.Publisher
	loader    Loader
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithPublisher publishes every completed report through p.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLoader replaces the content loader (for testing).
func WithLoader(l Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// NewService creates a Service that loads content per configuration and
// records no metrics.
func NewService(opts ...Option) *Service {
	s := &Service{
		recorder: metrics.NoopRecorder{},
		loader:   LoadContent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run checks cfg once. A structural sidebar error or a content loading
// failure aborts the run. Otherwise the returned error is the policy verdict
// on the report, and the Result is complete either way.
func (s *Service) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), StartTime: start}

	if cfg == nil {
		s.finish(result, metrics.OutcomeInvalid)
		return result, ferrors.ConfigError("config required").Build()
	}
	result.Site = cfg.Site.Title
	ctx = observability.WithSite(observability.WithRunID(ctx, result.RunID), result.Site)

	policy, err := resolve.ParsePolicy(cfg.Check.Policy)
	if err != nil {
		s.finish(result, metrics.OutcomeInvalid)
		return result, err
	}
	result.Policy = policy

	tree, err := s.buildTree(ctx, cfg.Sidebar)
	if err != nil {
		s.finish(result, metrics.OutcomeInvalid)
		return result, err
	}
	result.Tree = tree

	snap, err := s.loadContent(ctx, cfg.Content)
	if err != nil {
		s.finish(result, metrics.OutcomeInvalid)
		return result, err
	}
	result.Snapshot = snap

	report := s.resolve(ctx, tree, snap)
	result.Report = report
	s.recorder.SetResolution(result.Site, report.Resolved.Len(), report.Missing.Len(), report.Orphaned.Len())

	verdict := policy.Evaluate(report)
	outcome := metrics.OutcomeClean
	switch {
	case verdict != nil:
		outcome = metrics.OutcomeFailed
	case !report.Clean():
		outcome = metrics.OutcomeWarning
	}
	s.finish(result, outcome)

	s.publish(ctx, result)

	observability.InfoContext(ctx, "Check finished",
		slog.String("outcome", string(outcome)),
		logfields.Policy(string(policy)),
		logfields.Resolved(report.Resolved.Len()),
		logfields.Missing(report.Missing.Len()),
		logfields.Orphaned(report.Orphaned.Len()),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))

	return result, verdict
}

func (s *Service) finish(result *Result, outcome metrics.OutcomeLabel) {
	result.Outcome = outcome
	result.Duration = time.Since(result.StartTime)
	s.recorder.ObserveRunDuration(result.Duration)
	s.recorder.IncRunOutcome(outcome)
}

func (s *Service) buildTree(ctx context.Context, sidebar []nav.Entry) (*nav.Tree, error) {
	ctx = observability.WithStage(ctx, string(metrics.StageBuild))
	stageStart := time.Now()
	defer func() { s.recorder.ObserveStageDuration(metrics.StageBuild, time.Since(stageStart)) }()

	tree, err := nav.Build(sidebar)
	if err != nil {
		observability.ErrorContext(ctx, "Sidebar is malformed", logfields.Error(err))
		return nil, err
	}
	observability.DebugContext(ctx, "Navigation tree built",
		slog.Int("groups", len(tree.Groups())),
		slog.Int("leaves", len(tree.Leaves())))
	return tree, nil
}

func (s *Service) loadContent(ctx context.Context, cc config.ContentConfig) (*content.Snapshot, error) {
	ctx = observability.WithStage(ctx, string(metrics.StageLoad))
	stageStart := time.Now()
	defer func() { s.recorder.ObserveStageDuration(metrics.StageLoad, time.Since(stageStart)) }()

	snap, err := s.loader(ctx, cc)
	if err != nil {
		observability.ErrorContext(ctx, "Failed to load content", logfields.Source(string(cc.Source)), logfields.Error(err))
		return nil, err
	}
	observability.DebugContext(ctx, "Content snapshot loaded",
		logfields.Source(string(cc.Source)),
		slog.Int("pages", snap.Len()))
	return snap, nil
}

func (s *Service) resolve(ctx context.Context, tree *nav.Tree, snap *content.Snapshot) *resolve.Report {
	ctx = observability.WithStage(ctx, string(metrics.StageResolve))
	stageStart := time.Now()
	defer func() { s.recorder.ObserveStageDuration(metrics.StageResolve, time.Since(stageStart)) }()

	report := resolve.Resolve(tree, snap)
	for _, finding := range report.Findings() {
		slug, _ := finding.Context().GetString("slug")
		if finding.Severity() == ferrors.SeverityWarning {
			observability.WarnContext(ctx, finding.Message(), logfields.Slug(slug))
		} else {
			observability.DebugContext(ctx, finding.Message(), logfields.Slug(slug))
		}
	}
	return report
}

// publish hands the report to the publisher. A delivery failure is logged and
// never changes the verdict of the run.
func (s *Service) publish(ctx context.Context, result *Result) {
	if s.publisher == nil {
		return
	}
	ctx = observability.WithStage(ctx, string(metrics.StagePublish))
	stageStart := time.Now()
	defer func() { s.recorder.ObserveStageDuration(metrics.StagePublish, time.Since(stageStart)) }()

	event := &notify.ReportEvent{
		RunID:      result.RunID,
		Site:       result.Site,
		Outcome:    string(result.Outcome),
		Policy:     string(result.Policy),
		DurationMS: result.Duration.Milliseconds(),
		Report:     result.Report,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		observability.ErrorContext(ctx, "Failed to publish report", logfields.Error(err))
	}
}
