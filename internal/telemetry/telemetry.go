// Package telemetry exposes run counters in the Prometheus format. Each
// Collector owns its registry, so several runs in one process never clash.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	registry     *prometheus.Registry
	steps        *prometheus.CounterVec
	collisions   *prometheus.CounterVec
	speed        *prometheus.GaugeVec
	stepDuration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orbsim",
				Name:      "steps_total",
				Help:      "Simulated seconds stepped",
			},
			[]string{"body"},
		),
		collisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orbsim",
				Name:      "collisions_total",
				Help:      "Sticky collisions resolved",
			},
			[]string{"body", "target"},
		),
		speed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "orbsim",
				Name:      "speed_meters_per_second",
				Help:      "Speed after the latest step",
			},
			[]string{"body"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "orbsim",
				Name:      "step_duration_seconds",
				Help:      "Wall time spent computing one step",
				Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"body"},
		),
	}

	c.registry.MustRegister(c.steps, c.collisions, c.speed, c.stepDuration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) RecordStep(body string, speed float64, took time.Duration) {
	c.steps.WithLabelValues(body).Inc()
	c.speed.WithLabelValues(body).Set(speed)
	c.stepDuration.WithLabelValues(body).Observe(took.Seconds())
}

func (c *Collector) RecordCollision(body, target string) {
	c.collisions.WithLabelValues(body, target).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
