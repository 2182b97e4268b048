package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/astro-environment/internal/logging"
	"github.com/signalsfoundry/astro-environment/kb"
	"github.com/signalsfoundry/astro-environment/model"
)

var ErrModelConstruction = errors.New("model construction failed")

// BodyLookup gives factories read-only access to bodies that were
// assembled earlier in the creation order. The *kb.BodyMap satisfies
// it.
type BodyLookup interface {
	Body(name string) *kb.Body
	Has(name string) bool
}

// FactorySet holds one constructor per model kind. The assembler is
// ignorant of model internals: it only dispatches settings to the
// matching factory and stores the result. Nil entries mean the
// corresponding model kind cannot be built; requesting one is a
// construction error.
type FactorySet struct {
	Atmosphere              func(body string, s model.AtmosphereSettings) (model.Atmosphere, error)
	Ephemeris               func(body string, s model.EphemerisSettings, bodies BodyLookup) (model.Ephemeris, error)
	GravityField            func(body string, s model.GravityFieldSettings, bodies BodyLookup) (model.GravityField, error)
	GravityFieldVariation   func(body string, s model.GravityFieldVariationSettings, bodies BodyLookup) (model.GravityFieldVariation, error)
	RotationModel           func(body string, s model.RotationModelSettings) (model.RotationalEphemeris, error)
	Shape                   func(body string, s model.ShapeSettings) (model.Shape, error)
	AerodynamicCoefficients func(body string, s model.AerodynamicCoefficientSettings) (model.AerodynamicCoefficients, error)
	RadiationPressure       func(body, source string, s model.RadiationPressureSettings, bodies BodyLookup) (model.RadiationPressureInterface, error)
}

// SetupMetricsRecorder receives assembly and reconciliation
// observations. Implemented by observability.SetupCollector; a nil
// recorder disables recording.
type SetupMetricsRecorder interface {
	ObserveModelConstruction(kind string, d time.Duration, err error)
	SetBodyCount(n int)
	FrameTransformInstalled()
}

// Assembler builds bodies from resolved settings by delegating to the
// factory set. It aborts on the first factory failure: a partially
// consistent environment is unsafe to simulate with, and the error
// already names the body and model kind the caller has to fix.
type Assembler struct {
	Factories FactorySet
	Log       logging.Logger
	Metrics   SetupMetricsRecorder
}

// NewAssembler constructs an assembler with a no-op logger.
func NewAssembler(factories FactorySet) *Assembler {
	return &Assembler{Factories: factories, Log: logging.Noop()}
}

// AssembleBodies constructs bodies in the given order and returns the
// populated body map. Construction is synchronous and single-writer;
// a cancelled context aborts the run and the partial map is discarded.
// No frame validation happens here; that is the reconciler's job, so
// checks never fail merely because a body has not been built yet.
func (a *Assembler) AssembleBodies(ctx context.Context, ordered []model.NamedBodySettings) (*kb.BodyMap, error) {
	log := a.Log
	if log == nil {
		log = logging.Noop()
	}

	bodies := kb.NewBodyMap()

	for _, entry := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembly aborted: %w", err)
		}

		body, err := a.assembleBody(entry.Name, entry.Settings, bodies)
		if err != nil {
			return nil, err
		}
		if err := bodies.Add(body); err != nil {
			return nil, fmt.Errorf("insert body: %w", err)
		}
		if a.Metrics != nil {
			a.Metrics.SetBodyCount(bodies.Len())
		}
		log.Debug(ctx, "body assembled", logging.String("body", entry.Name))
	}

	log.Info(ctx, "environment assembled", logging.Int("bodies", bodies.Len()))
	return bodies, nil
}

// AssembleFromStore resolves the creation order and assembles the
// bodies in one call.
func (a *Assembler) AssembleFromStore(ctx context.Context, store *model.SettingsStore) (*kb.BodyMap, error) {
	ordered, err := DetermineBodyCreationOrder(store)
	if err != nil {
		return nil, err
	}
	return a.AssembleBodies(ctx, ordered)
}

// ReconcileGlobalFrame runs frame reconciliation over the assembled
// bodies, logging and recording the installed transforms.
func (a *Assembler) ReconcileGlobalFrame(ctx context.Context, bodies *kb.BodyMap, globalFrameOrigin, globalFrameOrientation string) error {
	log := a.Log
	if log == nil {
		log = logging.Noop()
	}

	installed := 0
	unsub := bodies.Subscribe(func(ev kb.Event) {
		if ev.Type == kb.EventFrameTransformInstalled {
			installed++
			if a.Metrics != nil {
				a.Metrics.FrameTransformInstalled()
			}
		}
	})
	defer unsub()

	if err := SetGlobalFrameBodyEphemerides(bodies, globalFrameOrigin, globalFrameOrientation); err != nil {
		return err
	}

	log.Info(ctx, "global frame reconciled",
		logging.String("origin", globalFrameOrigin),
		logging.String("orientation", globalFrameOrientation),
		logging.Int("transforms_installed", installed),
	)
	return nil
}

// assembleBody constructs one body. Model kinds are built in a fixed
// order; radiation pressure sources sorted by name so failures are
// reported deterministically.
func (a *Assembler) assembleBody(name string, settings *model.BodySettings, bodies BodyLookup) (*kb.Body, error) {
	body := kb.NewBody(name)
	if settings == nil {
		return body, nil
	}

	if settings.Atmosphere != nil {
		atmosphere, err := a.construct(name, "atmosphere", func() (any, error) {
			if a.Factories.Atmosphere == nil {
				return nil, errNoFactory
			}
			return a.Factories.Atmosphere(name, settings.Atmosphere)
		})
		if err != nil {
			return nil, err
		}
		body.SetAtmosphere(atmosphere.(model.Atmosphere))
	}

	if settings.Ephemeris != nil {
		ephemeris, err := a.construct(name, "ephemeris", func() (any, error) {
			if a.Factories.Ephemeris == nil {
				return nil, errNoFactory
			}
			return a.Factories.Ephemeris(name, settings.Ephemeris, bodies)
		})
		if err != nil {
			return nil, err
		}
		body.SetEphemeris(ephemeris.(model.Ephemeris))
	}

	if settings.GravityField != nil {
		field, err := a.construct(name, "gravity field", func() (any, error) {
			if a.Factories.GravityField == nil {
				return nil, errNoFactory
			}
			return a.Factories.GravityField(name, settings.GravityField, bodies)
		})
		if err != nil {
			return nil, err
		}
		body.SetGravityField(field.(model.GravityField))
	}

	if settings.RotationModel != nil {
		rotation, err := a.construct(name, "rotation model", func() (any, error) {
			if a.Factories.RotationModel == nil {
				return nil, errNoFactory
			}
			return a.Factories.RotationModel(name, settings.RotationModel)
		})
		if err != nil {
			return nil, err
		}
		body.SetRotationalEphemeris(rotation.(model.RotationalEphemeris))
	}

	if settings.Shape != nil {
		shape, err := a.construct(name, "shape", func() (any, error) {
			if a.Factories.Shape == nil {
				return nil, errNoFactory
			}
			return a.Factories.Shape(name, settings.Shape)
		})
		if err != nil {
			return nil, err
		}
		body.SetShape(shape.(model.Shape))
	}

	if settings.AerodynamicCoefficients != nil {
		coefficients, err := a.construct(name, "aerodynamic coefficients", func() (any, error) {
			if a.Factories.AerodynamicCoefficients == nil {
				return nil, errNoFactory
			}
			return a.Factories.AerodynamicCoefficients(name, settings.AerodynamicCoefficients)
		})
		if err != nil {
			return nil, err
		}
		body.SetAerodynamicCoefficients(coefficients.(model.AerodynamicCoefficients))
	}

	for _, source := range sortedSources(settings.RadiationPressure) {
		rpSettings := settings.RadiationPressure[source]
		rp, err := a.constructDetailed(name, "radiation pressure interface",
			fmt.Sprintf("radiation pressure interface for source %q", source), func() (any, error) {
			if a.Factories.RadiationPressure == nil {
				return nil, errNoFactory
			}
			return a.Factories.RadiationPressure(name, source, rpSettings, bodies)
		})
		if err != nil {
			return nil, err
		}
		body.SetRadiationPressureInterface(source, rp.(model.RadiationPressureInterface))
	}

	// Variations come last: they may need the body's own gravity
	// field context, and their configured order must be preserved.
	for i, variationSettings := range settings.GravityFieldVariations {
		if variationSettings == nil {
			continue
		}
		variation, err := a.constructDetailed(name, "gravity field variation",
			fmt.Sprintf("gravity field variation #%d", i), func() (any, error) {
			if a.Factories.GravityFieldVariation == nil {
				return nil, errNoFactory
			}
			return a.Factories.GravityFieldVariation(name, variationSettings, bodies)
		})
		if err != nil {
			return nil, err
		}
		body.AddGravityFieldVariation(variation.(model.GravityFieldVariation))
	}

	return body, nil
}

var errNoFactory = errors.New("no factory registered for this model kind")

// construct invokes one factory, timing it and recording the outcome.
func (a *Assembler) construct(body, kind string, build func() (any, error)) (any, error) {
	return a.constructDetailed(body, kind, kind, build)
}

// constructDetailed lets the error carry more detail than the metric
// label (source body names, variation indices) without blowing up
// label cardinality.
func (a *Assembler) constructDetailed(body, kind, detail string, build func() (any, error)) (any, error) {
	start := time.Now()
	result, err := build()
	if a.Metrics != nil {
		a.Metrics.ObserveModelConstruction(kind, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s of body %q: %v", ErrModelConstruction, detail, body, err)
	}
	return result, nil
}

func sortedSources(rp map[string]model.RadiationPressureSettings) []string {
	sources := make([]string, 0, len(rp))
	for source := range rp {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}
