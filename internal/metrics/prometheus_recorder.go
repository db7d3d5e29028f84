package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "symdoc"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	diagnostics   *prom.CounterVec
	graphNodes    prom.Gauge
	graphPages    prom.Gauge
	pageWrites    *prom.CounterVec
	brokenLinks   prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A
// nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual publish stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "graph_diagnostics_total",
			Help:      "Recoverable graph conditions by code",
		}, []string{"code"}),
		graphNodes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Symbols in the last built graph",
		}),
		graphPages: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_pages",
			Help:      "Standalone pages in the last built graph",
		}),
		pageWrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_writes_total",
			Help:      "Rendered pages by write result",
		}, []string{"result"}),
		brokenLinks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "broken_links_total",
			Help:      "Broken internal links found by verification",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.diagnostics, pr.graphNodes, pr.graphPages, pr.pageWrites, pr.brokenLinks)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddDiagnostics(code string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.diagnostics.WithLabelValues(code).Add(float64(n))
}

func (p *PrometheusRecorder) SetGraphSize(nodes, pages int) {
	if p == nil {
		return
	}
	p.graphNodes.Set(float64(nodes))
	p.graphPages.Set(float64(pages))
}

func (p *PrometheusRecorder) IncPageWrite(skipped bool) {
	if p == nil {
		return
	}
	res := "written"
	if skipped {
		res = "unchanged"
	}
	p.pageWrites.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) AddBrokenLinks(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.brokenLinks.Add(float64(n))
}
