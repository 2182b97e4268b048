package models

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/astro-environment/model"
)

// EnvironmentScenario is what a scenario file describes: the global
// frame the simulation runs in plus the settings store to assemble.
type EnvironmentScenario struct {
	GlobalFrameOrigin      string
	GlobalFrameOrientation string
	Store                  *model.SettingsStore
}

// internal JSON shapes, kept unexported so we're free to evolve them.
type environmentJSON struct {
	GlobalFrameOrigin      string              `json:"global_frame_origin"`
	GlobalFrameOrientation string              `json:"global_frame_orientation"`
	Bodies                 map[string]bodyJSON `json:"bodies"`
}

type bodyJSON struct {
	Ephemeris               *ephemerisJSON           `json:"ephemeris"`
	RotationModel           *rotationJSON            `json:"rotation_model"`
	GravityField            *gravityJSON             `json:"gravity_field"`
	GravityFieldVariations  []variationJSON          `json:"gravity_field_variations"`
	Atmosphere              *atmosphereJSON          `json:"atmosphere"`
	Shape                   *shapeJSON               `json:"shape"`
	AerodynamicCoefficients *aeroJSON                `json:"aerodynamic_coefficients"`
	RadiationPressure       map[string]radiationJSON `json:"radiation_pressure"`
}

type vecJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v vecJSON) vec() model.Vec3 { return model.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

type ephemerisJSON struct {
	Type        string  `json:"type"` // "constant" | "keplerian" | "tle"
	Origin      string  `json:"origin"`
	CentralBody string  `json:"central_body"`
	Orientation string  `json:"orientation"`
	Position    vecJSON `json:"position"`
	Velocity    vecJSON `json:"velocity"`
	// GravitationalParameter of the central body; zero means "read it
	// from the central body's gravity field".
	GravitationalParameter float64 `json:"gravitational_parameter"`
	Epoch                  string  `json:"epoch"` // RFC 3339
	Line1                  string  `json:"line1"`
	Line2                  string  `json:"line2"`
}

type rotationJSON struct {
	Type            string  `json:"type"` // "uniform"
	BaseOrientation string  `json:"base_orientation"`
	TargetFrame     string  `json:"target_frame"`
	RotationRate    float64 `json:"rotation_rate"` // rad/s
	InitialAngle    float64 `json:"initial_angle"` // rad
	Epoch           string  `json:"epoch"`
}

type gravityJSON struct {
	Type                   string  `json:"type"` // "central"
	GravitationalParameter float64 `json:"gravitational_parameter"`
	TiedBody               string  `json:"tied_body"`
	MassRatio              float64 `json:"mass_ratio"`
}

type variationJSON struct {
	Type            string   `json:"type"` // "tidal"
	DeformingBodies []string `json:"deforming_bodies"`
	Amplitude       float64  `json:"amplitude"`
	PeriodSeconds   float64  `json:"period_seconds"`
	Epoch           string   `json:"epoch"`
}

type atmosphereJSON struct {
	Type           string  `json:"type"` // "exponential"
	SurfaceDensity float64 `json:"surface_density"`
	ScaleHeight    float64 `json:"scale_height"`
}

type shapeJSON struct {
	Type   string  `json:"type"` // "sphere"
	Radius float64 `json:"radius"`
}

type aeroJSON struct {
	Type            string  `json:"type"` // "constant"
	ReferenceArea   float64 `json:"reference_area"`
	DragCoefficient float64 `json:"drag_coefficient"`
}

type radiationJSON struct {
	Type        string  `json:"type"` // "cannonball"
	Area        float64 `json:"area"`
	Coefficient float64 `json:"coefficient"`
}

// LoadEnvironmentScenario reads a JSON environment scenario from r and
// builds the settings store. It fails on structural errors and unknown
// model types; cross-body reference errors are left to the resolver
// and assembler, which report them with full context.
func LoadEnvironmentScenario(r io.Reader) (*EnvironmentScenario, error) {
	var payload environmentJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadEnvironmentScenario: decode failed: %w", err)
	}
	if len(payload.Bodies) == 0 {
		return nil, fmt.Errorf("LoadEnvironmentScenario: scenario contains no bodies")
	}

	settings := make(map[string]*model.BodySettings, len(payload.Bodies))
	for name, js := range payload.Bodies {
		if name == "" {
			return nil, fmt.Errorf("LoadEnvironmentScenario: body with empty name")
		}
		bodySettings, err := bodySettingsFromJSON(js)
		if err != nil {
			return nil, fmt.Errorf("LoadEnvironmentScenario: body %q: %w", name, err)
		}
		settings[name] = bodySettings
	}

	return &EnvironmentScenario{
		GlobalFrameOrigin:      payload.GlobalFrameOrigin,
		GlobalFrameOrientation: payload.GlobalFrameOrientation,
		Store:                  model.NewSettingsStore(settings),
	}, nil
}

func bodySettingsFromJSON(js bodyJSON) (*model.BodySettings, error) {
	s := &model.BodySettings{}

	if js.Ephemeris != nil {
		eph, err := ephemerisSettingsFromJSON(*js.Ephemeris)
		if err != nil {
			return nil, err
		}
		s.Ephemeris = eph
	}

	if js.RotationModel != nil {
		switch js.RotationModel.Type {
		case "uniform":
			epoch, err := parseEpoch(js.RotationModel.Epoch)
			if err != nil {
				return nil, fmt.Errorf("rotation model: %w", err)
			}
			s.RotationModel = &UniformRotationSettings{
				BaseOrientation: js.RotationModel.BaseOrientation,
				Target:          js.RotationModel.TargetFrame,
				RotationRate:    js.RotationModel.RotationRate,
				InitialAngle:    js.RotationModel.InitialAngle,
				Epoch:           epoch,
			}
		default:
			return nil, fmt.Errorf("unknown rotation model type %q", js.RotationModel.Type)
		}
	}

	if js.GravityField != nil {
		switch js.GravityField.Type {
		case "central":
			s.GravityField = &CentralGravitySettings{
				GravitationalParameter: js.GravityField.GravitationalParameter,
				TiedBody:               js.GravityField.TiedBody,
				MassRatio:              js.GravityField.MassRatio,
			}
		default:
			return nil, fmt.Errorf("unknown gravity field type %q", js.GravityField.Type)
		}
	}

	for i, variation := range js.GravityFieldVariations {
		switch variation.Type {
		case "tidal":
			epoch, err := parseEpoch(variation.Epoch)
			if err != nil {
				return nil, fmt.Errorf("gravity field variation #%d: %w", i, err)
			}
			s.GravityFieldVariations = append(s.GravityFieldVariations, &TidalVariationSettings{
				Deforming: variation.DeformingBodies,
				Amplitude: variation.Amplitude,
				Period:    time.Duration(variation.PeriodSeconds * float64(time.Second)),
				Epoch:     epoch,
			})
		default:
			return nil, fmt.Errorf("unknown gravity field variation type %q", variation.Type)
		}
	}

	if js.Atmosphere != nil {
		switch js.Atmosphere.Type {
		case "exponential":
			s.Atmosphere = &ExponentialAtmosphereSettings{
				SurfaceDensity: js.Atmosphere.SurfaceDensity,
				ScaleHeight:    js.Atmosphere.ScaleHeight,
			}
		default:
			return nil, fmt.Errorf("unknown atmosphere type %q", js.Atmosphere.Type)
		}
	}

	if js.Shape != nil {
		switch js.Shape.Type {
		case "sphere":
			s.Shape = &SphericalShapeSettings{Radius: js.Shape.Radius}
		default:
			return nil, fmt.Errorf("unknown shape type %q", js.Shape.Type)
		}
	}

	if js.AerodynamicCoefficients != nil {
		switch js.AerodynamicCoefficients.Type {
		case "constant":
			s.AerodynamicCoefficients = &ConstantAerodynamicCoefficientSettings{
				ReferenceArea:   js.AerodynamicCoefficients.ReferenceArea,
				DragCoefficient: js.AerodynamicCoefficients.DragCoefficient,
			}
		default:
			return nil, fmt.Errorf("unknown aerodynamic coefficient type %q", js.AerodynamicCoefficients.Type)
		}
	}

	if len(js.RadiationPressure) > 0 {
		s.RadiationPressure = make(map[string]model.RadiationPressureSettings, len(js.RadiationPressure))
		for source, radiation := range js.RadiationPressure {
			switch radiation.Type {
			case "cannonball":
				s.RadiationPressure[source] = &CannonballRadiationPressureSettings{
					Area:        radiation.Area,
					Coefficient: radiation.Coefficient,
				}
			default:
				return nil, fmt.Errorf("unknown radiation pressure type %q for source %q", radiation.Type, source)
			}
		}
	}

	return s, nil
}

func ephemerisSettingsFromJSON(js ephemerisJSON) (model.EphemerisSettings, error) {
	switch js.Type {
	case "constant":
		return &ConstantEphemerisSettings{
			Origin:      js.Origin,
			Orientation: js.Orientation,
			State: model.State{
				Position: js.Position.vec(),
				Velocity: js.Velocity.vec(),
			},
		}, nil
	case "keplerian":
		epoch, err := parseEpoch(js.Epoch)
		if err != nil {
			return nil, fmt.Errorf("ephemeris: %w", err)
		}
		return &KeplerianEphemerisSettings{
			CentralBody:            js.CentralBody,
			Orientation:            js.Orientation,
			GravitationalParameter: js.GravitationalParameter,
			InitialState: model.State{
				Position: js.Position.vec(),
				Velocity: js.Velocity.vec(),
			},
			Epoch: epoch,
		}, nil
	case "tle":
		return &TLEEphemerisSettings{
			Line1:       js.Line1,
			Line2:       js.Line2,
			Origin:      js.Origin,
			Orientation: js.Orientation,
		}, nil
	default:
		return nil, fmt.Errorf("unknown ephemeris type %q", js.Type)
	}
}

// parseEpoch parses an RFC 3339 epoch; empty means the zero time.
func parseEpoch(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	epoch, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad epoch %q: %w", raw, err)
	}
	return epoch, nil
}
