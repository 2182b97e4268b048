package models

import (
	"fmt"

	"github.com/signalsfoundry/astro-environment/model"
)

// SphericalShapeSettings requests a spherical shape model.
type SphericalShapeSettings struct {
	// Radius in metres.
	Radius float64
}

// SphericalShape models the body as a sphere of fixed radius.
type SphericalShape struct {
	radius float64
}

// NewSphericalShape builds the shape from its settings.
func NewSphericalShape(s *SphericalShapeSettings) (*SphericalShape, error) {
	if s.Radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %g", s.Radius)
	}
	return &SphericalShape{radius: s.Radius}, nil
}

func (s *SphericalShape) AverageRadius() float64 { return s.radius }

func (s *SphericalShape) AltitudeAt(position model.Vec3) float64 {
	return position.Norm() - s.radius
}
