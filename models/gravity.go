package models

import (
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/astro-environment/core"
	"github.com/signalsfoundry/astro-environment/model"
)

// CentralGravitySettings requests a point-mass gravity field.
// TiedBody optionally names a body this field's parameter is derived
// relative to (a mass-ratio field); it is then a hard dependency.
type CentralGravitySettings struct {
	// GravitationalParameter in m^3/s^2.
	GravitationalParameter float64
	TiedBody               string
	// MassRatio scales the tied body's gravitational parameter when
	// TiedBody is set and GravitationalParameter is zero.
	MassRatio float64
}

func (s *CentralGravitySettings) CentralBody() string { return s.TiedBody }

// CentralGravityField is a point-mass gravity field.
type CentralGravityField struct {
	mu float64
}

// NewCentralGravityField builds the field, resolving a tied body's
// parameter through the body lookup when configured.
func NewCentralGravityField(s *CentralGravitySettings, bodies core.BodyLookup) (*CentralGravityField, error) {
	mu := s.GravitationalParameter
	if mu == 0 && s.TiedBody != "" {
		tied := bodies.Body(s.TiedBody)
		if tied == nil {
			return nil, fmt.Errorf("tied body %q not assembled", s.TiedBody)
		}
		field := tied.GravityField()
		if field == nil {
			return nil, fmt.Errorf("tied body %q has no gravity field", s.TiedBody)
		}
		mu = field.GravitationalParameter() * s.MassRatio
	}
	if mu <= 0 {
		return nil, fmt.Errorf("gravitational parameter must be positive, got %g", mu)
	}
	return &CentralGravityField{mu: mu}, nil
}

func (f *CentralGravityField) GravitationalParameter() float64 { return f.mu }

// TidalVariationSettings requests a periodic correction to a body's
// gravitational parameter raised by one or more deforming bodies.
type TidalVariationSettings struct {
	// Deforming names the bodies raising the tide.
	Deforming []string
	// Amplitude of the parameter correction per deforming body, in
	// m^3/s^2.
	Amplitude float64
	// Period of the correction.
	Period time.Duration
	Epoch  time.Time
}

func (s *TidalVariationSettings) DeformingBodies() []string { return s.Deforming }

// TidalGravityFieldVariation applies a sinusoidal parameter correction
// per deforming body. Deforming bodies are held as non-owning
// name-based references into the body collection.
type TidalGravityFieldVariation struct {
	deforming []string
	bodies    core.BodyLookup
	amplitude float64
	period    time.Duration
	epoch     time.Time
}

// NewTidalGravityFieldVariation validates that every deforming body is
// already assembled and keeps name-based references to them.
func NewTidalGravityFieldVariation(s *TidalVariationSettings, bodies core.BodyLookup) (*TidalGravityFieldVariation, error) {
	if len(s.Deforming) == 0 {
		return nil, fmt.Errorf("at least one deforming body is required")
	}
	if s.Period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %s", s.Period)
	}
	for _, name := range s.Deforming {
		if bodies.Body(name) == nil {
			return nil, fmt.Errorf("deforming body %q not assembled", name)
		}
	}
	return &TidalGravityFieldVariation{
		deforming: append([]string(nil), s.Deforming...),
		bodies:    bodies,
		amplitude: s.Amplitude,
		period:    s.Period,
		epoch:     s.Epoch,
	}, nil
}

func (v *TidalGravityFieldVariation) ParameterCorrection(t time.Time) float64 {
	phase := 2 * math.Pi * t.Sub(v.epoch).Seconds() / v.period.Seconds()
	return v.amplitude * float64(len(v.deforming)) * math.Sin(phase)
}

// DeformingBodies returns the deforming body names in configured order.
func (v *TidalGravityFieldVariation) DeformingBodies() []string {
	return append([]string(nil), v.deforming...)
}

// EffectiveGravitationalParameter sums a body's gravity field with its
// variations at time t, applying variations in configuration order.
func EffectiveGravitationalParameter(field model.GravityField, variations []model.GravityFieldVariation, t time.Time) float64 {
	mu := field.GravitationalParameter()
	for _, v := range variations {
		mu += v.ParameterCorrection(t)
	}
	return mu
}
