package models

import (
	"fmt"

	"github.com/signalsfoundry/astro-environment/core"
	"github.com/signalsfoundry/astro-environment/model"
)

// DefaultFactorySet returns a factory set dispatching on the concrete
// settings types of this package. A settings object of any other type
// is a construction error naming the type, so misconfigured stores
// fail at assembly rather than silently.
func DefaultFactorySet() core.FactorySet {
	return core.FactorySet{
		Atmosphere: func(_ string, s model.AtmosphereSettings) (model.Atmosphere, error) {
			switch settings := s.(type) {
			case *ExponentialAtmosphereSettings:
				return NewExponentialAtmosphere(settings)
			default:
				return nil, fmt.Errorf("unsupported atmosphere settings type %T", s)
			}
		},

		Ephemeris: func(_ string, s model.EphemerisSettings, bodies core.BodyLookup) (model.Ephemeris, error) {
			switch settings := s.(type) {
			case *ConstantEphemerisSettings:
				return NewConstantEphemeris(settings), nil
			case *KeplerianEphemerisSettings:
				mu := settings.GravitationalParameter
				if mu == 0 {
					var err error
					mu, err = centralBodyParameter(settings.CentralBody, bodies)
					if err != nil {
						return nil, err
					}
				}
				return NewKeplerianEphemeris(settings, mu)
			case *TLEEphemerisSettings:
				return NewTLEEphemeris(settings)
			default:
				return nil, fmt.Errorf("unsupported ephemeris settings type %T", s)
			}
		},

		GravityField: func(_ string, s model.GravityFieldSettings, bodies core.BodyLookup) (model.GravityField, error) {
			switch settings := s.(type) {
			case *CentralGravitySettings:
				return NewCentralGravityField(settings, bodies)
			default:
				return nil, fmt.Errorf("unsupported gravity field settings type %T", s)
			}
		},

		GravityFieldVariation: func(_ string, s model.GravityFieldVariationSettings, bodies core.BodyLookup) (model.GravityFieldVariation, error) {
			switch settings := s.(type) {
			case *TidalVariationSettings:
				return NewTidalGravityFieldVariation(settings, bodies)
			default:
				return nil, fmt.Errorf("unsupported gravity field variation settings type %T", s)
			}
		},

		RotationModel: func(_ string, s model.RotationModelSettings) (model.RotationalEphemeris, error) {
			switch settings := s.(type) {
			case *UniformRotationSettings:
				return NewUniformRotationModel(settings)
			default:
				return nil, fmt.Errorf("unsupported rotation model settings type %T", s)
			}
		},

		Shape: func(_ string, s model.ShapeSettings) (model.Shape, error) {
			switch settings := s.(type) {
			case *SphericalShapeSettings:
				return NewSphericalShape(settings)
			default:
				return nil, fmt.Errorf("unsupported shape settings type %T", s)
			}
		},

		AerodynamicCoefficients: func(_ string, s model.AerodynamicCoefficientSettings) (model.AerodynamicCoefficients, error) {
			switch settings := s.(type) {
			case *ConstantAerodynamicCoefficientSettings:
				return NewConstantAerodynamicCoefficients(settings)
			default:
				return nil, fmt.Errorf("unsupported aerodynamic coefficient settings type %T", s)
			}
		},

		RadiationPressure: func(_ string, source string, s model.RadiationPressureSettings, bodies core.BodyLookup) (model.RadiationPressureInterface, error) {
			switch settings := s.(type) {
			case *CannonballRadiationPressureSettings:
				return NewCannonballRadiationPressure(source, settings, bodies)
			default:
				return nil, fmt.Errorf("unsupported radiation pressure settings type %T", s)
			}
		},
	}
}

// centralBodyParameter reads a central body's gravitational parameter
// for ephemerides configured without an explicit one.
func centralBodyParameter(centralBody string, bodies core.BodyLookup) (float64, error) {
	body := bodies.Body(centralBody)
	if body == nil {
		return 0, fmt.Errorf("central body %q not assembled", centralBody)
	}
	field := body.GravityField()
	if field == nil {
		return 0, fmt.Errorf("central body %q has no gravity field to take a gravitational parameter from", centralBody)
	}
	return field.GravitationalParameter(), nil
}
