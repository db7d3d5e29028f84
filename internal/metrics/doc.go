// Package metrics records build and stage metrics for symdoc runs.
//
// Components receive a Recorder and default to NoopRecorder, so callers never
// check for nil. The build command swaps in a PrometheusRecorder when
// --metrics-file is given and the serve command exposes the same registry on
// /metrics.
package metrics
