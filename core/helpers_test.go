package core

import (
	"errors"
	"time"

	"github.com/signalsfoundry/astro-environment/kb"
	"github.com/signalsfoundry/astro-environment/model"
)

// Stub settings and models shared by the core tests. The core never
// looks inside settings beyond the dependency-reporting methods, so
// these stay minimal.

type stubEphemerisSettings struct {
	origin      string
	orientation string
	state       model.State
	fail        bool
}

func (s *stubEphemerisSettings) FrameOrigin() string      { return s.origin }
func (s *stubEphemerisSettings) FrameOrientation() string { return s.orientation }

type stubRotationSettings struct {
	base   string
	target string
	fail   bool
}

func (s *stubRotationSettings) BaseFrameOrientation() string { return s.base }
func (s *stubRotationSettings) TargetFrame() string          { return s.target }

type stubGravitySettings struct {
	central string
	fail    bool
}

func (s *stubGravitySettings) CentralBody() string { return s.central }

type stubVariationSettings struct {
	deforming []string
}

func (s *stubVariationSettings) DeformingBodies() []string { return s.deforming }

// Opaque settings kinds carry nothing.
type stubOpaqueSettings struct{ fail bool }

type stubEphemeris struct {
	origin      string
	orientation string
	state       model.State
}

func (e *stubEphemeris) ReferenceFrameOrigin() string      { return e.origin }
func (e *stubEphemeris) ReferenceFrameOrientation() string { return e.orientation }
func (e *stubEphemeris) StateAt(time.Time) (model.State, error) {
	return e.state, nil
}

type stubRotation struct {
	base   string
	target string
}

func (r *stubRotation) BaseFrameOrientation() string      { return r.base }
func (r *stubRotation) TargetFrameName() string           { return r.target }
func (r *stubRotation) RotationAngleAt(time.Time) float64 { return 0 }

type stubGravity struct{ mu float64 }

func (g *stubGravity) GravitationalParameter() float64 { return g.mu }

type stubVariation struct{}

func (*stubVariation) ParameterCorrection(time.Time) float64 { return 0 }

type stubAtmosphere struct{}

func (*stubAtmosphere) DensityAt(float64, time.Time) float64 { return 0 }

type stubShape struct{}

func (*stubShape) AverageRadius() float64          { return 1 }
func (*stubShape) AltitudeAt(model.Vec3) float64   { return 0 }

type stubAero struct{}

func (*stubAero) ReferenceArea() float64   { return 1 }
func (*stubAero) DragCoefficient() float64 { return 1 }

type stubRadiationPressure struct{ source string }

func (rp *stubRadiationPressure) SourceBodyName() string                { return rp.source }
func (rp *stubRadiationPressure) RadiationPressureCoefficient() float64 { return 1 }
func (rp *stubRadiationPressure) Area() float64                         { return 1 }

var errStubFactory = errors.New("stub factory rejected settings")

// stubFactories returns a factory set that builds stub models and
// fails whenever a settings object carries fail == true.
func stubFactories() FactorySet {
	return FactorySet{
		Atmosphere: func(_ string, s model.AtmosphereSettings) (model.Atmosphere, error) {
			if opaque, ok := s.(*stubOpaqueSettings); ok && opaque.fail {
				return nil, errStubFactory
			}
			return &stubAtmosphere{}, nil
		},
		Ephemeris: func(_ string, s model.EphemerisSettings, _ BodyLookup) (model.Ephemeris, error) {
			settings := s.(*stubEphemerisSettings)
			if settings.fail {
				return nil, errStubFactory
			}
			return &stubEphemeris{
				origin:      settings.origin,
				orientation: settings.orientation,
				state:       settings.state,
			}, nil
		},
		GravityField: func(_ string, s model.GravityFieldSettings, _ BodyLookup) (model.GravityField, error) {
			if settings, ok := s.(*stubGravitySettings); ok && settings.fail {
				return nil, errStubFactory
			}
			return &stubGravity{mu: 1}, nil
		},
		GravityFieldVariation: func(_ string, _ model.GravityFieldVariationSettings, _ BodyLookup) (model.GravityFieldVariation, error) {
			return &stubVariation{}, nil
		},
		RotationModel: func(_ string, s model.RotationModelSettings) (model.RotationalEphemeris, error) {
			settings := s.(*stubRotationSettings)
			if settings.fail {
				return nil, errStubFactory
			}
			return &stubRotation{base: settings.base, target: settings.target}, nil
		},
		Shape: func(_ string, _ model.ShapeSettings) (model.Shape, error) {
			return &stubShape{}, nil
		},
		AerodynamicCoefficients: func(_ string, _ model.AerodynamicCoefficientSettings) (model.AerodynamicCoefficients, error) {
			return &stubAero{}, nil
		},
		RadiationPressure: func(_ string, source string, s model.RadiationPressureSettings, _ BodyLookup) (model.RadiationPressureInterface, error) {
			if opaque, ok := s.(*stubOpaqueSettings); ok && opaque.fail {
				return nil, errStubFactory
			}
			return &stubRadiationPressure{source: source}, nil
		},
	}
}

// bodyWithEphemeris builds a body directly (bypassing factories) for
// reconciler tests.
func bodyWithEphemeris(name, origin, orientation string, state model.State) *kb.Body {
	b := kb.NewBody(name)
	b.SetEphemeris(&stubEphemeris{origin: origin, orientation: orientation, state: state})
	return b
}
