// Package models provides simple built-in environment model
// implementations and the default factory set that constructs them
// from settings. Physical fidelity is deliberately modest; these
// models exist so an environment can be assembled and queried end to
// end.
package models

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/astro-environment/model"
)

// ConstantEphemerisSettings requests an ephemeris that returns the
// same state at every epoch. Leaving Origin empty expresses the state
// directly in the global frame.
type ConstantEphemerisSettings struct {
	Origin      string
	Orientation string
	State       model.State
}

func (s *ConstantEphemerisSettings) FrameOrigin() string      { return s.Origin }
func (s *ConstantEphemerisSettings) FrameOrientation() string { return s.Orientation }

// ConstantEphemeris is a fixed-state ephemeris.
type ConstantEphemeris struct {
	origin      string
	orientation string
	state       model.State
}

// NewConstantEphemeris builds the ephemeris from its settings.
func NewConstantEphemeris(s *ConstantEphemerisSettings) *ConstantEphemeris {
	return &ConstantEphemeris{origin: s.Origin, orientation: s.Orientation, state: s.State}
}

func (e *ConstantEphemeris) ReferenceFrameOrigin() string      { return e.origin }
func (e *ConstantEphemeris) ReferenceFrameOrientation() string { return e.orientation }

func (e *ConstantEphemeris) StateAt(time.Time) (model.State, error) {
	return e.state, nil
}

// KeplerianEphemerisSettings requests a two-body ephemeris around a
// central body. The central body must exist in the environment; its
// name doubles as the ephemeris frame origin.
type KeplerianEphemerisSettings struct {
	CentralBody string
	Orientation string
	// GravitationalParameter of the central body in m^3/s^2. When
	// zero, the factory reads it from the central body's gravity field.
	GravitationalParameter float64
	// InitialState relative to the central body at Epoch.
	InitialState model.State
	Epoch        time.Time
}

func (s *KeplerianEphemerisSettings) FrameOrigin() string      { return s.CentralBody }
func (s *KeplerianEphemerisSettings) FrameOrientation() string { return s.Orientation }

// KeplerianEphemeris propagates a circular-orbit approximation of a
// two-body orbit: the initial position is rotated about the z axis at
// the mean motion derived from its radius. Good enough to exercise
// frame plumbing; fidelity is a non-goal.
type KeplerianEphemeris struct {
	centralBody string
	orientation string
	mu          float64
	initial     model.State
	epoch       time.Time
}

// NewKeplerianEphemeris builds the ephemeris from its settings and the
// central body's gravitational parameter.
func NewKeplerianEphemeris(s *KeplerianEphemerisSettings, mu float64) (*KeplerianEphemeris, error) {
	if s.InitialState.Position.Norm() == 0 {
		return nil, fmt.Errorf("initial position relative to %q is zero", s.CentralBody)
	}
	if mu <= 0 {
		return nil, fmt.Errorf("gravitational parameter must be positive, got %g", mu)
	}
	return &KeplerianEphemeris{
		centralBody: s.CentralBody,
		orientation: s.Orientation,
		mu:          mu,
		initial:     s.InitialState,
		epoch:       s.Epoch,
	}, nil
}

func (e *KeplerianEphemeris) ReferenceFrameOrigin() string      { return e.centralBody }
func (e *KeplerianEphemeris) ReferenceFrameOrientation() string { return e.orientation }

func (e *KeplerianEphemeris) StateAt(t time.Time) (model.State, error) {
	r := e.initial.Position.Norm()
	n := math.Sqrt(e.mu / (r * r * r)) // mean motion, rad/s
	angle := n * t.Sub(e.epoch).Seconds()

	sin, cos := math.Sin(angle), math.Cos(angle)
	rotate := func(v model.Vec3) model.Vec3 {
		return model.Vec3{
			X: v.X*cos - v.Y*sin,
			Y: v.X*sin + v.Y*cos,
			Z: v.Z,
		}
	}
	return model.State{
		Position: rotate(e.initial.Position),
		Velocity: rotate(e.initial.Velocity),
	}, nil
}

// OrbitalPeriod returns the period of the approximated orbit.
func (e *KeplerianEphemeris) OrbitalPeriod() time.Duration {
	r := e.initial.Position.Norm()
	n := math.Sqrt(e.mu / (r * r * r))
	return time.Duration(2 * math.Pi / n * float64(time.Second))
}

// TLEEphemerisSettings requests an SGP4-propagated ephemeris from a
// two-line element set. Origin is the body the TLE is defined around
// (normally "Earth").
type TLEEphemerisSettings struct {
	Line1       string
	Line2       string
	Origin      string
	Orientation string
}

func (s *TLEEphemerisSettings) FrameOrigin() string      { return s.Origin }
func (s *TLEEphemerisSettings) FrameOrientation() string { return s.Orientation }

// TLEEphemeris propagates a TLE with SGP4 via go-satellite.
// go-satellite works in kilometres; states are returned in metres.
type TLEEphemeris struct {
	origin      string
	orientation string
	sat         satellite.Satellite
}

// NewTLEEphemeris parses the TLE lines and prepares the propagator.
func NewTLEEphemeris(s *TLEEphemerisSettings) (*TLEEphemeris, error) {
	if s.Line1 == "" || s.Line2 == "" {
		return nil, fmt.Errorf("both TLE lines are required")
	}
	sat := satellite.TLEToSat(s.Line1, s.Line2, satellite.GravityWGS72)
	return &TLEEphemeris{origin: s.Origin, orientation: s.Orientation, sat: sat}, nil
}

func (e *TLEEphemeris) ReferenceFrameOrigin() string      { return e.origin }
func (e *TLEEphemeris) ReferenceFrameOrientation() string { return e.orientation }

func (e *TLEEphemeris) StateAt(t time.Time) (model.State, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	pos, vel := satellite.Propagate(e.sat, year, int(month), day, hour, min, sec)

	const kmToM = 1000.0
	return model.State{
		Position: model.Vec3{X: pos.X * kmToM, Y: pos.Y * kmToM, Z: pos.Z * kmToM},
		Velocity: model.Vec3{X: vel.X * kmToM, Y: vel.Y * kmToM, Z: vel.Z * kmToM},
	}, nil
}
