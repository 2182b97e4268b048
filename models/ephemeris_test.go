package models

import (
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/astro-environment/model"
)

const (
	earthMu     = 3.986004418e14 // m^3/s^2
	earthRadius = 6.371e6        // m
)

func TestConstantEphemeris(t *testing.T) {
	state := model.State{Position: model.Vec3{X: 1, Y: 2, Z: 3}}
	eph := NewConstantEphemeris(&ConstantEphemerisSettings{
		Origin:      "Earth",
		Orientation: "ECLIPJ2000",
		State:       state,
	})

	if eph.ReferenceFrameOrigin() != "Earth" {
		t.Fatalf("origin = %q, want Earth", eph.ReferenceFrameOrigin())
	}
	if eph.ReferenceFrameOrientation() != "ECLIPJ2000" {
		t.Fatalf("orientation = %q, want ECLIPJ2000", eph.ReferenceFrameOrientation())
	}
	for _, at := range []time.Time{time.Now(), time.Now().Add(24 * time.Hour)} {
		got, err := eph.StateAt(at)
		if err != nil {
			t.Fatalf("StateAt(%v): %v", at, err)
		}
		if got != state {
			t.Fatalf("StateAt(%v) = %+v, want %+v", at, got, state)
		}
	}
}

func TestKeplerianEphemeris_QuarterPeriod(t *testing.T) {
	epoch := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := 7000e3

	eph, err := NewKeplerianEphemeris(&KeplerianEphemerisSettings{
		CentralBody:  "Earth",
		InitialState: model.State{Position: model.Vec3{X: r}},
		Epoch:        epoch,
	}, earthMu)
	if err != nil {
		t.Fatalf("NewKeplerianEphemeris: %v", err)
	}

	// After a quarter period the position has rotated 90 degrees about
	// z: x -> y, at the same radius.
	quarter := eph.OrbitalPeriod() / 4
	state, err := eph.StateAt(epoch.Add(quarter))
	if err != nil {
		t.Fatalf("StateAt: %v", err)
	}

	const tol = 1.0 // metre, rounding of the period to a Duration
	if math.Abs(state.Position.X) > tol {
		t.Fatalf("x after quarter period = %g, want ~0", state.Position.X)
	}
	if math.Abs(state.Position.Y-r) > tol {
		t.Fatalf("y after quarter period = %g, want ~%g", state.Position.Y, r)
	}
	if got := state.Position.Norm(); math.Abs(got-r) > tol {
		t.Fatalf("radius after quarter period = %g, want %g", got, r)
	}
}

func TestKeplerianEphemeris_Validation(t *testing.T) {
	settings := &KeplerianEphemerisSettings{CentralBody: "Earth"}
	if _, err := NewKeplerianEphemeris(settings, earthMu); err == nil {
		t.Fatalf("expected error for zero initial position")
	}

	settings.InitialState = model.State{Position: model.Vec3{X: 7000e3}}
	if _, err := NewKeplerianEphemeris(settings, 0); err == nil {
		t.Fatalf("expected error for non-positive gravitational parameter")
	}
}

func TestTLEEphemeris_PropagatesISSOrbit(t *testing.T) {
	eph, err := NewTLEEphemeris(&TLEEphemerisSettings{
		Line1:  "1 25544U 98067A   21275.59097222  .00006570  00000-0  12616-3 0  9994",
		Line2:  "2 25544  51.6459 168.2821 0003985  92.7504  57.0144 15.48919755305133",
		Origin: "Earth",
	})
	if err != nil {
		t.Fatalf("NewTLEEphemeris: %v", err)
	}

	at := time.Date(2021, 10, 2, 14, 0, 0, 0, time.UTC)
	first, err := eph.StateAt(at)
	if err != nil {
		t.Fatalf("StateAt: %v", err)
	}

	// A low Earth orbit sits a few hundred kilometres up and moves at
	// roughly 7.7 km/s.
	radius := first.Position.Norm()
	if radius < earthRadius || radius > earthRadius+2000e3 {
		t.Fatalf("orbital radius = %g m, outside low Earth orbit bounds", radius)
	}
	speed := first.Velocity.Norm()
	if speed < 7000 || speed > 8500 {
		t.Fatalf("orbital speed = %g m/s, outside expected bounds", speed)
	}

	later, err := eph.StateAt(at.Add(10 * time.Minute))
	if err != nil {
		t.Fatalf("StateAt later: %v", err)
	}
	if later.Position == first.Position {
		t.Fatalf("position did not change over ten minutes")
	}
}

func TestTLEEphemeris_RequiresBothLines(t *testing.T) {
	if _, err := NewTLEEphemeris(&TLEEphemerisSettings{Line1: "1 25544U"}); err == nil {
		t.Fatalf("expected error for missing second TLE line")
	}
}
