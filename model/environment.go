package model

import "time"

// Ephemeris provides the translational state of a body over time,
// expressed relative to a named frame origin in a named frame
// orientation. Frame names are opaque identifiers compared for exact
// equality; an empty origin or orientation means "the global frame".
type Ephemeris interface {
	ReferenceFrameOrigin() string
	ReferenceFrameOrientation() string
	StateAt(t time.Time) (State, error)
}

// RotationalEphemeris provides a body's attitude over time as a
// rotation from a named base frame to a named body-fixed target frame.
// Attitude has no translational origin, so only orientations are
// reported.
type RotationalEphemeris interface {
	BaseFrameOrientation() string
	TargetFrameName() string
	// RotationAngleAt returns the rotation angle about the body's spin
	// axis at time t, in radians.
	RotationAngleAt(t time.Time) float64
}

// GravityField is the gravitational model of a body.
type GravityField interface {
	// GravitationalParameter returns mu in m^3/s^2.
	GravitationalParameter() float64
}

// GravityFieldVariation is a single time-dependent correction to a
// body's gravity field. Variations are additive and applied in the
// order they were configured.
type GravityFieldVariation interface {
	// ParameterCorrection returns the correction to the body's
	// gravitational parameter at time t, in m^3/s^2.
	ParameterCorrection(t time.Time) float64
}

// Atmosphere models the density of a body's atmosphere.
type Atmosphere interface {
	// DensityAt returns atmospheric density in kg/m^3 at the given
	// altitude above the body's reference surface, in metres.
	DensityAt(altitude float64, t time.Time) float64
}

// Shape is a body's geometric shape model.
type Shape interface {
	// AverageRadius returns the mean radius in metres.
	AverageRadius() float64
	// AltitudeAt returns the altitude of a body-centred position above
	// the shape's surface, in metres.
	AltitudeAt(position Vec3) float64
}

// AerodynamicCoefficients provides aerodynamic force coefficients for
// a vehicle.
type AerodynamicCoefficients interface {
	ReferenceArea() float64
	DragCoefficient() float64
}

// RadiationPressureInterface models the radiation pressure a single
// source body exerts on the owning body. The source is referenced by
// name; lookups into the body collection happen at evaluation time.
type RadiationPressureInterface interface {
	SourceBodyName() string
	RadiationPressureCoefficient() float64
	// Area returns the effective cross-section in m^2.
	Area() float64
}
