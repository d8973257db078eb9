package metrics

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "avd_business_case"

// Recorder counts report generation events. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	reports         *prometheus.CounterVec
	drawFailures    *prometheus.CounterVec
	placeholders    *prometheus.CounterVec
	computeErrors   prometheus.Counter
	computeDuration prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports rendered, by output format.",
		}, []string{"format"}),
		drawFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draw_failures_total",
			Help:      "Document draw calls skipped after a failure, by element.",
		}, []string{"element"}),
		placeholders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placeholder_parts_total",
			Help:      "Report parts rendered as placeholders, by part.",
		}, []string{"part"}),
		computeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compute_errors_total",
			Help:      "Profiles refused as structurally invalid.",
		}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time to compute a business case from a profile.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	r.registry.MustRegister(r.reports, r.drawFailures, r.placeholders, r.computeErrors, r.computeDuration)
	return r
}

func (r *Recorder) ReportGenerated(format string) {
	if r == nil {
		return
	}
	r.reports.WithLabelValues(format).Inc()
}

func (r *Recorder) DrawFailed(element string) {
	if r == nil {
		return
	}
	r.drawFailures.WithLabelValues(element).Inc()
}

func (r *Recorder) Placeholder(part string) {
	if r == nil {
		return
	}
	r.placeholders.WithLabelValues(part).Inc()
}

func (r *Recorder) ComputeFailed() {
	if r == nil {
		return
	}
	r.computeErrors.Inc()
}

func (r *Recorder) ObserveCompute(d time.Duration) {
	if r == nil {
		return
	}
	r.computeDuration.Observe(d.Seconds())
}

// Registry exposes the underlying registry for tests and HTTP handlers
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteText writes all metrics in the Prometheus text exposition format
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes a node_exporter textfile-collector compatible file
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := r.WriteText(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close metrics file: %w", err)
	}
	return os.Rename(tmp, path)
}
