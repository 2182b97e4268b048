package models

import (
	"fmt"
	"math"
	"time"
)

// ExponentialAtmosphereSettings requests an exponential density model.
type ExponentialAtmosphereSettings struct {
	// SurfaceDensity in kg/m^3.
	SurfaceDensity float64
	// ScaleHeight in metres.
	ScaleHeight float64
}

// ExponentialAtmosphere models density as rho0 * exp(-h/H).
type ExponentialAtmosphere struct {
	surfaceDensity float64
	scaleHeight    float64
}

// NewExponentialAtmosphere builds the atmosphere from its settings.
func NewExponentialAtmosphere(s *ExponentialAtmosphereSettings) (*ExponentialAtmosphere, error) {
	if s.SurfaceDensity <= 0 || s.ScaleHeight <= 0 {
		return nil, fmt.Errorf("surface density and scale height must be positive, got %g and %g",
			s.SurfaceDensity, s.ScaleHeight)
	}
	return &ExponentialAtmosphere{surfaceDensity: s.SurfaceDensity, scaleHeight: s.ScaleHeight}, nil
}

func (a *ExponentialAtmosphere) DensityAt(altitude float64, _ time.Time) float64 {
	if altitude < 0 {
		altitude = 0
	}
	return a.surfaceDensity * math.Exp(-altitude/a.scaleHeight)
}
