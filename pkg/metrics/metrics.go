// Package metrics exposes Prometheus instrumentation for the classification
// pipeline. All observation methods are safe to call on a nil *Pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vigil"

// Pipeline holds the pipeline's Prometheus collectors.
type Pipeline struct {
	OCRPolls        *prometheus.CounterVec
	OCRJobs         *prometheus.CounterVec
	StageDuration   *prometheus.HistogramVec
	StageConfidence *prometheus.HistogramVec
	Runs            *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
}

// New registers the pipeline collectors with reg.
func New(reg prometheus.Registerer) *Pipeline {
	f := promauto.With(reg)
	return &Pipeline{
		OCRPolls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_polls_total",
			Help:      "OCR job status queries by observed status",
		}, []string{"status"}),

		OCRJobs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_jobs_total",
			Help:      "OCR jobs by terminal outcome",
		}, []string{"outcome"}),

		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Inference stage latency",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"stage"}),

		StageConfidence: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_confidence",
			Help:      "Parsed confidence per inference stage",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}, []string{"stage"}),

		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Incident pipeline runs by strategy and outcome",
		}, []string{"strategy", "outcome"}),

		RunDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "End-to-end incident pipeline latency",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"strategy"}),
	}
}

// ObservePoll records one OCR status query.
func (p *Pipeline) ObservePoll(status string) {
	if p == nil {
		return
	}
	p.OCRPolls.WithLabelValues(status).Inc()
}

// ObserveJob records the terminal outcome of an OCR job.
func (p *Pipeline) ObserveJob(outcome string) {
	if p == nil {
		return
	}
	p.OCRJobs.WithLabelValues(outcome).Inc()
}

// ObserveStage records the latency and parsed confidence of a stage.
func (p *Pipeline) ObserveStage(stage string, d time.Duration, confidence float64) {
	if p == nil {
		return
	}
	p.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	p.StageConfidence.WithLabelValues(stage).Observe(confidence)
}

// ObserveRun records one end-to-end pipeline run.
func (p *Pipeline) ObserveRun(strategy, outcome string, d time.Duration) {
	if p == nil {
		return
	}
	p.Runs.WithLabelValues(strategy, outcome).Inc()
	p.RunDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
