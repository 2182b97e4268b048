package kb

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/signalsfoundry/astro-environment/model"
)

// EventType indicates what kind of change happened in the body map.
type EventType int

const (
	EventBodyAdded EventType = iota
	EventFrameTransformInstalled
)

// Event is emitted to subscribers when the environment changes.
type Event struct {
	Type EventType
	Body string
}

// FrameTransform is a body's frame-transform slot: a time-dependent
// translation of the global frame origin to the body's own ephemeris
// frame origin. OriginName records which body the transform forwards,
// so re-running reconciliation can recognise an installed slot.
type FrameTransform struct {
	OriginName string
	StateAt    func(t time.Time) (model.State, error)
}

// Body is one constructed simulation entity: at most one model of each
// kind plus the frame-transform slot. A Body is created empty by the
// assembler, populated during the construction phase, and has its
// transform slot set at most once by the frame reconciler. The two
// phases are strictly sequential, so Body itself carries no lock; all
// concurrent access goes through the BodyMap.
type Body struct {
	name string

	ephemeris               model.Ephemeris
	rotationalEphemeris     model.RotationalEphemeris
	gravityField            model.GravityField
	gravityFieldVariations  []model.GravityFieldVariation
	atmosphere              model.Atmosphere
	shape                   model.Shape
	aerodynamicCoefficients model.AerodynamicCoefficients
	radiationPressure       map[string]model.RadiationPressureInterface

	frameTransform *FrameTransform
}

// NewBody creates an empty body with the given name.
func NewBody(name string) *Body {
	return &Body{
		name:              name,
		radiationPressure: make(map[string]model.RadiationPressureInterface),
	}
}

// Name returns the body's unique name.
func (b *Body) Name() string { return b.name }

func (b *Body) SetEphemeris(e model.Ephemeris) { b.ephemeris = e }
func (b *Body) Ephemeris() model.Ephemeris    { return b.ephemeris }

func (b *Body) SetRotationalEphemeris(r model.RotationalEphemeris) { b.rotationalEphemeris = r }
func (b *Body) RotationalEphemeris() model.RotationalEphemeris     { return b.rotationalEphemeris }

func (b *Body) SetGravityField(g model.GravityField) { b.gravityField = g }
func (b *Body) GravityField() model.GravityField     { return b.gravityField }

func (b *Body) SetAtmosphere(a model.Atmosphere) { b.atmosphere = a }
func (b *Body) Atmosphere() model.Atmosphere     { return b.atmosphere }

func (b *Body) SetShape(s model.Shape) { b.shape = s }
func (b *Body) Shape() model.Shape     { return b.shape }

func (b *Body) SetAerodynamicCoefficients(a model.AerodynamicCoefficients) {
	b.aerodynamicCoefficients = a
}
func (b *Body) AerodynamicCoefficients() model.AerodynamicCoefficients {
	return b.aerodynamicCoefficients
}

// AddGravityFieldVariation appends a variation; order is preserved
// because variations are additive and order-sensitive.
func (b *Body) AddGravityFieldVariation(v model.GravityFieldVariation) {
	b.gravityFieldVariations = append(b.gravityFieldVariations, v)
}

// GravityFieldVariations returns the variations in configuration order.
func (b *Body) GravityFieldVariations() []model.GravityFieldVariation {
	return b.gravityFieldVariations
}

// SetRadiationPressureInterface stores the interface for one source body.
func (b *Body) SetRadiationPressureInterface(source string, rp model.RadiationPressureInterface) {
	b.radiationPressure[source] = rp
}

// RadiationPressureInterface returns the interface for a source body,
// or nil when none is configured.
func (b *Body) RadiationPressureInterface(source string) model.RadiationPressureInterface {
	return b.radiationPressure[source]
}

// RadiationPressureSources returns the configured source body names in
// lexicographic order.
func (b *Body) RadiationPressureSources() []string {
	sources := make([]string, 0, len(b.radiationPressure))
	for source := range b.radiationPressure {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// SetFrameTransform installs the frame-transform slot.
func (b *Body) SetFrameTransform(ft *FrameTransform) {
	b.frameTransform = ft
}

// FrameTransform returns the installed transform, or nil when the
// body's ephemeris is already expressed in the global frame.
func (b *Body) FrameTransform() *FrameTransform { return b.frameTransform }

// EphemerisState returns the body's raw ephemeris state at t, in the
// ephemeris's own frame.
func (b *Body) EphemerisState(t time.Time) (model.State, error) {
	if b.ephemeris == nil {
		return model.State{}, fmt.Errorf("body %q has no ephemeris", b.name)
	}
	return b.ephemeris.StateAt(t)
}

// StateInGlobalFrame returns the body's state expressed in the global
// frame: the raw ephemeris state shifted by the frame transform when
// one is installed.
func (b *Body) StateInGlobalFrame(t time.Time) (model.State, error) {
	state, err := b.EphemerisState(t)
	if err != nil {
		return model.State{}, err
	}
	if b.frameTransform == nil {
		return state, nil
	}
	originState, err := b.frameTransform.StateAt(t)
	if err != nil {
		return model.State{}, fmt.Errorf("frame transform of body %q: %w", b.name, err)
	}
	return state.Add(originState), nil
}

// BodyMap is the environment's body collection: a thread-safe mapping
// from unique name to owned body. Names are unique; duplicate inserts
// are a configuration error. Iteration via Names is sorted so that
// diagnostics and reconciliation order are deterministic.
type BodyMap struct {
	mu     sync.RWMutex
	bodies map[string]*Body
	subs   []func(Event)
}

// NewBodyMap constructs an empty body map.
func NewBodyMap() *BodyMap {
	return &BodyMap{bodies: make(map[string]*Body)}
}

// Add inserts a body under its name. It returns an error if the name
// is empty or already present.
func (m *BodyMap) Add(b *Body) error {
	if b == nil || b.name == "" {
		return fmt.Errorf("nil or unnamed body")
	}

	m.mu.Lock()
	if _, exists := m.bodies[b.name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("body %q already exists", b.name)
	}
	m.bodies[b.name] = b
	subs := append([]func(Event){}, m.subs...)
	m.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(Event{Type: EventBodyAdded, Body: b.name})
	}
	return nil
}

// Body returns the body with the given name, or nil if not found.
func (m *BodyMap) Body(name string) *Body {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bodies[name]
}

// Has reports whether a body with the given name exists.
func (m *BodyMap) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.bodies[name]
	return ok
}

// Names returns all body names in lexicographic order.
func (m *BodyMap) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.bodies))
	for name := range m.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bodies.
func (m *BodyMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bodies)
}

// NotifyFrameTransformInstalled emits an event for subscribers after
// the reconciler installs a transform on the named body.
func (m *BodyMap) NotifyFrameTransformInstalled(name string) {
	m.mu.RLock()
	subs := append([]func(Event){}, m.subs...)
	m.mu.RUnlock()

	for _, sub := range subs {
		sub(Event{Type: EventFrameTransformInstalled, Body: name})
	}
}

// Subscribe registers a callback for body map events. It returns an
// unsubscribe function.
func (m *BodyMap) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
	idx := len(m.subs) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < 0 || idx >= len(m.subs) {
			return
		}
		m.subs = append(m.subs[:idx], m.subs[idx+1:]...)
		idx = -1
	}
}
