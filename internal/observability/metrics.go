package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupCollector bundles Prometheus metrics for the environment setup
// cycle: model factory invocations, assembled body counts, and frame
// transform installs. It satisfies core.SetupMetricsRecorder.
type SetupCollector struct {
	gatherer prometheus.Gatherer

	ModelConstructions    *prometheus.CounterVec
	ConstructionDurations *prometheus.HistogramVec

	EnvironmentBodies       prometheus.Gauge
	FrameTransformsInstalls prometheus.Counter
}

// NewSetupCollector registers setup metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewSetupCollector(reg prometheus.Registerer) (*SetupCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	constructions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "environment_model_constructions_total",
		Help: "Total number of model factory invocations, labeled by model kind and outcome.",
	}, []string{"kind", "outcome"})
	constructions, err := registerCounterVec(reg, constructions, "environment_model_constructions_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "environment_model_construction_duration_seconds",
		Help:    "Model factory latency in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"kind"})
	durations, err = registerHistogramVec(reg, durations, "environment_model_construction_duration_seconds")
	if err != nil {
		return nil, err
	}

	bodies, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "environment_bodies",
		Help: "Current number of assembled bodies in the environment.",
	}), "environment_bodies")
	if err != nil {
		return nil, err
	}

	transforms, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "environment_frame_transforms_installed_total",
		Help: "Total number of frame transforms installed by the reconciler.",
	}), "environment_frame_transforms_installed_total")
	if err != nil {
		return nil, err
	}

	return &SetupCollector{
		gatherer:                gatherer,
		ModelConstructions:      constructions,
		ConstructionDurations:   durations,
		EnvironmentBodies:       bodies,
		FrameTransformsInstalls: transforms,
	}, nil
}

// ObserveModelConstruction records one factory invocation.
func (c *SetupCollector) ObserveModelConstruction(kind string, d time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if c.ModelConstructions != nil {
		c.ModelConstructions.WithLabelValues(kind, outcome).Inc()
	}
	if c.ConstructionDurations != nil {
		c.ConstructionDurations.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// SetBodyCount tracks the size of the assembled body collection.
func (c *SetupCollector) SetBodyCount(n int) {
	if c == nil || c.EnvironmentBodies == nil {
		return
	}
	c.EnvironmentBodies.Set(float64(n))
}

// FrameTransformInstalled counts one reconciler transform install.
func (c *SetupCollector) FrameTransformInstalled() {
	if c == nil || c.FrameTransformsInstalls == nil {
		return
	}
	c.FrameTransformsInstalls.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SetupCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
