package model

import "sort"

// Per-kind settings are opaque to the setup core: it only ever hands
// them to the matching factory, plus reads the dependency names below.
// Concrete settings types live with the factories that understand them.

// EphemerisSettings describes the ephemeris model a body should get.
// FrameOrigin names the body the ephemeris is expressed relative to; an
// empty origin means the ephemeris is already expressed in the global
// frame. FrameOrientation is the attitude basis of the ephemeris.
type EphemerisSettings interface {
	FrameOrigin() string
	FrameOrientation() string
}

// RotationModelSettings describes a body's rotation model.
type RotationModelSettings interface {
	BaseFrameOrientation() string
	TargetFrame() string
}

// GravityFieldSettings describes a body's gravity field model.
// CentralBody names a body the field is tied to, or "" when the field
// stands alone.
type GravityFieldSettings interface {
	CentralBody() string
}

// GravityFieldVariationSettings describes one time-dependent gravity
// field correction. DeformingBodies names the bodies raising the
// variation (tides and the like); they must exist before the owner can
// be built.
type GravityFieldVariationSettings interface {
	DeformingBodies() []string
}

// AtmosphereSettings, ShapeSettings, AerodynamicCoefficientSettings and
// RadiationPressureSettings carry no dependency information the core
// needs; they are fully opaque.
type AtmosphereSettings interface{}
type ShapeSettings interface{}
type AerodynamicCoefficientSettings interface{}
type RadiationPressureSettings interface{}

// BodySettings bundles the requested models for one body. Every field
// is optional: a nil (or empty) field means no model of that kind is
// requested. RadiationPressure is keyed by source body name, one entry
// per radiating source. GravityFieldVariations is ordered; variations
// are additive and order-sensitive.
type BodySettings struct {
	Atmosphere              AtmosphereSettings
	Ephemeris               EphemerisSettings
	GravityField            GravityFieldSettings
	RotationModel           RotationModelSettings
	Shape                   ShapeSettings
	RadiationPressure       map[string]RadiationPressureSettings
	AerodynamicCoefficients AerodynamicCoefficientSettings
	GravityFieldVariations  []GravityFieldVariationSettings
}

// Dependency is one edge from a body's settings to another body that
// must be constructed first. Weak dependencies (radiation pressure
// sources) order construction but carry no frame relationship.
type Dependency struct {
	Name  string
	Field string
	Weak  bool
}

// Dependencies lists the bodies this settings record references, in a
// deterministic order. Empty names (meaning "the global frame") are
// skipped.
func (s *BodySettings) Dependencies() []Dependency {
	var deps []Dependency

	if s.Ephemeris != nil {
		if origin := s.Ephemeris.FrameOrigin(); origin != "" {
			deps = append(deps, Dependency{Name: origin, Field: "ephemeris frame origin"})
		}
	}
	if s.GravityField != nil {
		if central := s.GravityField.CentralBody(); central != "" {
			deps = append(deps, Dependency{Name: central, Field: "gravity field central body"})
		}
	}
	for _, variation := range s.GravityFieldVariations {
		if variation == nil {
			continue
		}
		for _, deforming := range variation.DeformingBodies() {
			if deforming != "" {
				deps = append(deps, Dependency{Name: deforming, Field: "gravity field variation deforming body"})
			}
		}
	}

	// Radiation pressure sources, sorted so the edge order does not
	// depend on map iteration.
	sources := make([]string, 0, len(s.RadiationPressure))
	for source := range s.RadiationPressure {
		if source != "" {
			sources = append(sources, source)
		}
	}
	sort.Strings(sources)
	for _, source := range sources {
		deps = append(deps, Dependency{Name: source, Field: "radiation pressure source", Weak: true})
	}

	return deps
}

// NamedBodySettings pairs a body name with its settings; the resolver
// produces an ordered sequence of these.
type NamedBodySettings struct {
	Name     string
	Settings *BodySettings
}

// SettingsStore is an immutable name -> settings mapping. It is built
// once from configuration and never mutated during a
// resolve-assemble-reconcile cycle.
type SettingsStore struct {
	settings map[string]*BodySettings
}

// NewSettingsStore copies the provided map into an immutable store.
func NewSettingsStore(settings map[string]*BodySettings) *SettingsStore {
	m := make(map[string]*BodySettings, len(settings))
	for name, s := range settings {
		m[name] = s
	}
	return &SettingsStore{settings: m}
}

// Get returns the settings for a body name.
func (s *SettingsStore) Get(name string) (*BodySettings, bool) {
	settings, ok := s.settings[name]
	return settings, ok
}

// Has reports whether the store contains settings for name.
func (s *SettingsStore) Has(name string) bool {
	_, ok := s.settings[name]
	return ok
}

// Names returns all body names in lexicographic order.
func (s *SettingsStore) Names() []string {
	names := make([]string, 0, len(s.settings))
	for name := range s.settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bodies in the store.
func (s *SettingsStore) Len() int { return len(s.settings) }
