package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitenav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	slugs         *prom.GaugeVec
	runOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual check stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total check run duration",
			Buckets:   prom.DefBuckets,
		}),
		slugs: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "slugs",
			Help:      "Slugs per resolution state in the last check run",
		}, []string{"site", "state"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Check runs by final outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.slugs, pr.runOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage Stage, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetResolution(site string, resolved, missing, orphaned int) {
	if p == nil {
		return
	}
	p.slugs.WithLabelValues(site, "resolved").Set(float64(resolved))
	p.slugs.WithLabelValues(site, "missing").Set(float64(missing))
	p.slugs.WithLabelValues(site, "orphaned").Set(float64(orphaned))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}
