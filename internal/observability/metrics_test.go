package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func newTestCollector(t *testing.T) (*SetupCollector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector, err := NewSetupCollector(reg)
	if err != nil {
		t.Fatalf("NewSetupCollector: %v", err)
	}
	return collector, reg
}

func TestObserveModelConstruction(t *testing.T) {
	collector, _ := newTestCollector(t)

	collector.ObserveModelConstruction("ephemeris", 2*time.Millisecond, nil)
	collector.ObserveModelConstruction("ephemeris", time.Millisecond, nil)
	collector.ObserveModelConstruction("gravity field", time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(collector.ModelConstructions.WithLabelValues("ephemeris", "ok")); got != 2 {
		t.Fatalf("ephemeris ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.ModelConstructions.WithLabelValues("gravity field", "error")); got != 1 {
		t.Fatalf("gravity field error count = %v, want 1", got)
	}

	if got := histogramSampleCount(t, collector.ConstructionDurations, "ephemeris"); got != 2 {
		t.Fatalf("ephemeris duration samples = %d, want 2", got)
	}
}

func TestBodyCountAndTransformInstalls(t *testing.T) {
	collector, _ := newTestCollector(t)

	collector.SetBodyCount(3)
	collector.SetBodyCount(4)
	collector.FrameTransformInstalled()
	collector.FrameTransformInstalled()

	if got := testutil.ToFloat64(collector.EnvironmentBodies); got != 4 {
		t.Fatalf("environment_bodies = %v, want 4", got)
	}
	if got := testutil.ToFloat64(collector.FrameTransformsInstalls); got != 2 {
		t.Fatalf("frame transform installs = %v, want 2", got)
	}
}

func TestNewSetupCollector_ReusesExisting(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSetupCollector(reg)
	if err != nil {
		t.Fatalf("first NewSetupCollector: %v", err)
	}
	second, err := NewSetupCollector(reg)
	if err != nil {
		t.Fatalf("second NewSetupCollector: %v", err)
	}

	// Both collectors write into the same registered series.
	first.FrameTransformInstalled()
	second.FrameTransformInstalled()
	if got := testutil.ToFloat64(second.FrameTransformsInstalls); got != 2 {
		t.Fatalf("shared install count = %v, want 2", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *SetupCollector
	collector.ObserveModelConstruction("ephemeris", time.Millisecond, nil)
	collector.SetBodyCount(1)
	collector.FrameTransformInstalled()
}

// histogramSampleCount digs the sample count for one label value out of
// a gathered histogram family.
func histogramSampleCount(t *testing.T, vec *prometheus.HistogramVec, kind string) uint64 {
	t.Helper()

	reg := prometheus.NewRegistry()
	if err := reg.Register(vec); err != nil {
		t.Fatalf("register histogram: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if labelValue(metric, "kind") == kind {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}
	t.Fatalf("no histogram sample for kind %q", kind)
	return 0
}

func labelValue(metric *dto.Metric, name string) string {
	for _, label := range metric.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}
