// Package metrics records synthesis results as Prometheus metrics that can
// be written to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/phoenixveritas/vaultasg/internal/descriptor"
)

// SynthRecorder holds the metrics of one synth run in its own registry.
type SynthRecorder struct {
	registry  *prometheus.Registry
	resources *prometheus.GaugeVec
	duration  *prometheus.GaugeVec
	lastRun   *prometheus.GaugeVec
}

// NewSynthRecorder creates a recorder with a fresh registry.
func NewSynthRecorder() *SynthRecorder {
	r := &SynthRecorder{
		registry: prometheus.NewRegistry(),
		resources: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "vaultasg",
				Subsystem: "synth",
				Name:      "resources",
				Help:      "Number of resources in the synthesized template by type",
			},
			[]string{"stack", "type"},
		),
		duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "vaultasg",
				Subsystem: "synth",
				Name:      "duration_seconds",
				Help:      "Time spent building and emitting the stack",
			},
			[]string{"stack"},
		),
		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "vaultasg",
				Subsystem: "synth",
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful synthesis",
			},
			[]string{"stack"},
		),
	}
	r.registry.MustRegister(r.resources, r.duration, r.lastRun)
	return r
}

// Record stores the outcome of a successful synthesis.
func (r *SynthRecorder) Record(d *descriptor.Descriptor, took time.Duration, at time.Time) {
	for _, c := range d.Summary {
		r.resources.WithLabelValues(d.StackName, c.Type).Set(float64(c.Count))
	}
	r.duration.WithLabelValues(d.StackName).Set(took.Seconds())
	r.lastRun.WithLabelValues(d.StackName).Set(float64(at.Unix()))
}

// Registry exposes the underlying registry.
func (r *SynthRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *SynthRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
