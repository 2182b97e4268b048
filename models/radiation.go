package models

import (
	"fmt"

	"github.com/signalsfoundry/astro-environment/core"
)

// CannonballRadiationPressureSettings requests a cannonball radiation
// pressure model: a fixed cross-section and reflectivity coefficient.
// The radiating source body is the key the settings are stored under.
type CannonballRadiationPressureSettings struct {
	// Area is the effective cross-section in m^2.
	Area float64
	// Coefficient is the radiation pressure coefficient (1.0 fully
	// absorbing, 2.0 fully reflecting).
	Coefficient float64
}

// CannonballRadiationPressure holds the model plus a non-owning
// name-based reference to the source body.
type CannonballRadiationPressure struct {
	source      string
	area        float64
	coefficient float64
	bodies      core.BodyLookup
}

// NewCannonballRadiationPressure validates the settings and that the
// source body is already assembled.
func NewCannonballRadiationPressure(source string, s *CannonballRadiationPressureSettings, bodies core.BodyLookup) (*CannonballRadiationPressure, error) {
	if s.Area <= 0 {
		return nil, fmt.Errorf("area must be positive, got %g", s.Area)
	}
	if s.Coefficient < 1 || s.Coefficient > 2 {
		return nil, fmt.Errorf("coefficient must be in [1, 2], got %g", s.Coefficient)
	}
	if !bodies.Has(source) {
		return nil, fmt.Errorf("source body %q not assembled", source)
	}
	return &CannonballRadiationPressure{
		source:      source,
		area:        s.Area,
		coefficient: s.Coefficient,
		bodies:      bodies,
	}, nil
}

func (rp *CannonballRadiationPressure) SourceBodyName() string               { return rp.source }
func (rp *CannonballRadiationPressure) RadiationPressureCoefficient() float64 { return rp.coefficient }
func (rp *CannonballRadiationPressure) Area() float64                         { return rp.area }
