package model

import "math"

// Vec3 is a Cartesian vector in metres (or metres per second for
// velocities). All frame-dependent quantities in the environment are
// expressed as Vec3 pairs; the frame itself is tracked by name.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// State is a translational state: position in metres, velocity in
// metres per second, both expressed in the ephemeris frame of whoever
// produced the state.
type State struct {
	Position Vec3
	Velocity Vec3
}

// Add returns the component-wise sum of two states. Used when shifting
// a state by the state of its frame origin.
func (s State) Add(other State) State {
	return State{
		Position: s.Position.Add(other.Position),
		Velocity: s.Velocity.Add(other.Velocity),
	}
}
