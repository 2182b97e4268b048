package models

import (
	"fmt"
	"time"
)

// UniformRotationSettings requests a rotation model spinning at a
// constant rate about the body's z axis.
type UniformRotationSettings struct {
	BaseOrientation string
	Target          string
	// RotationRate in radians per second.
	RotationRate float64
	// InitialAngle in radians at Epoch.
	InitialAngle float64
	Epoch        time.Time
}

func (s *UniformRotationSettings) BaseFrameOrientation() string { return s.BaseOrientation }
func (s *UniformRotationSettings) TargetFrame() string          { return s.Target }

// UniformRotationModel is a constant-rate rotational ephemeris.
type UniformRotationModel struct {
	baseOrientation string
	targetFrame     string
	rate            float64
	initialAngle    float64
	epoch           time.Time
}

// NewUniformRotationModel builds the rotation model from its settings.
func NewUniformRotationModel(s *UniformRotationSettings) (*UniformRotationModel, error) {
	if s.Target == "" {
		return nil, fmt.Errorf("target frame name is required")
	}
	return &UniformRotationModel{
		baseOrientation: s.BaseOrientation,
		targetFrame:     s.Target,
		rate:            s.RotationRate,
		initialAngle:    s.InitialAngle,
		epoch:           s.Epoch,
	}, nil
}

func (m *UniformRotationModel) BaseFrameOrientation() string { return m.baseOrientation }
func (m *UniformRotationModel) TargetFrameName() string      { return m.targetFrame }

func (m *UniformRotationModel) RotationAngleAt(t time.Time) float64 {
	return m.initialAngle + m.rate*t.Sub(m.epoch).Seconds()
}
