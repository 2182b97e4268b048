package models

import "fmt"

// ConstantAerodynamicCoefficientSettings requests fixed aerodynamic
// coefficients for a vehicle.
type ConstantAerodynamicCoefficientSettings struct {
	// ReferenceArea in m^2.
	ReferenceArea   float64
	DragCoefficient float64
}

// ConstantAerodynamicCoefficients is a fixed-coefficient model.
type ConstantAerodynamicCoefficients struct {
	referenceArea   float64
	dragCoefficient float64
}

// NewConstantAerodynamicCoefficients builds the model from its settings.
func NewConstantAerodynamicCoefficients(s *ConstantAerodynamicCoefficientSettings) (*ConstantAerodynamicCoefficients, error) {
	if s.ReferenceArea <= 0 {
		return nil, fmt.Errorf("reference area must be positive, got %g", s.ReferenceArea)
	}
	if s.DragCoefficient <= 0 {
		return nil, fmt.Errorf("drag coefficient must be positive, got %g", s.DragCoefficient)
	}
	return &ConstantAerodynamicCoefficients{
		referenceArea:   s.ReferenceArea,
		dragCoefficient: s.DragCoefficient,
	}, nil
}

func (c *ConstantAerodynamicCoefficients) ReferenceArea() float64   { return c.referenceArea }
func (c *ConstantAerodynamicCoefficients) DragCoefficient() float64 { return c.dragCoefficient }
