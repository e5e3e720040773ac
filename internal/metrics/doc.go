// Package metrics records check run metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks:
//
//	svc := check.NewService(check.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on a caller-owned registry and
// HTTPHandler serves that registry.
package metrics
