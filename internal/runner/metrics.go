package runner

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"qaeval/internal/report"
)

const metricsNamespace = "qaeval"

// newRunRegistry exposes a run summary as gauges on a private registry.
func newRunRegistry(summary report.Summary, runSeconds float64) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	metric := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "metric",
		Help:      "Mean evaluation metric over the questions of a run.",
	}, []string{"run_id", "metric"})
	questions := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "questions",
		Help:      "Number of questions evaluated in a run.",
	}, []string{"run_id"})
	failures := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "failures",
		Help:      "Number of questions that timed out in a run.",
	}, []string{"run_id"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of a run.",
	}, []string{"run_id"})
	registry.MustRegister(metric, questions, failures, duration)

	for _, m := range summary.Metrics() {
		metric.WithLabelValues(summary.RunID, m.Name).Set(m.Value)
	}
	questions.WithLabelValues(summary.RunID).Set(float64(summary.Questions))
	failures.WithLabelValues(summary.RunID).Set(float64(summary.Failures))
	duration.WithLabelValues(summary.RunID).Set(runSeconds)
	return registry
}

// WriteMetricsTextfile writes the summary in the node exporter textfile format.
func WriteMetricsTextfile(path string, summary report.Summary, runSeconds float64) error {
	if err := prometheus.WriteToTextfile(path, newRunRegistry(summary, runSeconds)); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
