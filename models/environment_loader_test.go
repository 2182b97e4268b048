package models

import (
	"strings"
	"testing"
	"time"
)

const scenarioJSON = `{
  "global_frame_origin": "Sun",
  "global_frame_orientation": "ECLIPJ2000",
  "bodies": {
    "Sun": {
      "ephemeris": {"type": "constant", "orientation": "ECLIPJ2000"},
      "gravity_field": {"type": "central", "gravitational_parameter": 1.32712440018e20},
      "shape": {"type": "sphere", "radius": 6.96e8}
    },
    "Earth": {
      "ephemeris": {
        "type": "keplerian",
        "central_body": "Sun",
        "orientation": "ECLIPJ2000",
        "position": {"x": 1.496e11},
        "epoch": "2026-03-01T00:00:00Z"
      },
      "rotation_model": {
        "type": "uniform",
        "base_orientation": "ECLIPJ2000",
        "target_frame": "IAU_Earth",
        "rotation_rate": 7.29e-5
      },
      "gravity_field": {"type": "central", "gravitational_parameter": 3.986004418e14},
      "gravity_field_variations": [
        {"type": "tidal", "deforming_bodies": ["Sun"], "amplitude": 1e5, "period_seconds": 43200}
      ],
      "atmosphere": {"type": "exponential", "surface_density": 1.225, "scale_height": 8500},
      "shape": {"type": "sphere", "radius": 6.371e6}
    },
    "Probe": {
      "ephemeris": {
        "type": "tle",
        "origin": "Earth",
        "line1": "1 25544U 98067A   21275.59097222  .00006570  00000-0  12616-3 0  9994",
        "line2": "2 25544  51.6459 168.2821 0003985  92.7504  57.0144 15.48919755305133"
      },
      "aerodynamic_coefficients": {"type": "constant", "reference_area": 4, "drag_coefficient": 2.2},
      "radiation_pressure": {
        "Sun": {"type": "cannonball", "area": 4, "coefficient": 1.3}
      }
    }
  }
}`

func TestLoadEnvironmentScenario(t *testing.T) {
	scenario, err := LoadEnvironmentScenario(strings.NewReader(scenarioJSON))
	if err != nil {
		t.Fatalf("LoadEnvironmentScenario: %v", err)
	}

	if scenario.GlobalFrameOrigin != "Sun" || scenario.GlobalFrameOrientation != "ECLIPJ2000" {
		t.Fatalf("global frame = %q/%q", scenario.GlobalFrameOrigin, scenario.GlobalFrameOrientation)
	}
	if scenario.Store.Len() != 3 {
		t.Fatalf("store has %d bodies, want 3", scenario.Store.Len())
	}

	earth, ok := scenario.Store.Get("Earth")
	if !ok {
		t.Fatalf("store has no Earth")
	}
	keplerian, ok := earth.Ephemeris.(*KeplerianEphemerisSettings)
	if !ok {
		t.Fatalf("Earth ephemeris settings have type %T", earth.Ephemeris)
	}
	if keplerian.CentralBody != "Sun" || keplerian.InitialState.Position.X != 1.496e11 {
		t.Fatalf("unexpected keplerian settings %+v", keplerian)
	}
	wantEpoch := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !keplerian.Epoch.Equal(wantEpoch) {
		t.Fatalf("epoch = %v, want %v", keplerian.Epoch, wantEpoch)
	}
	if len(earth.GravityFieldVariations) != 1 {
		t.Fatalf("Earth has %d variations, want 1", len(earth.GravityFieldVariations))
	}
	tidal, ok := earth.GravityFieldVariations[0].(*TidalVariationSettings)
	if !ok {
		t.Fatalf("variation settings have type %T", earth.GravityFieldVariations[0])
	}
	if tidal.Period != 12*time.Hour {
		t.Fatalf("tidal period = %s, want 12h", tidal.Period)
	}

	probe, _ := scenario.Store.Get("Probe")
	if _, ok := probe.Ephemeris.(*TLEEphemerisSettings); !ok {
		t.Fatalf("Probe ephemeris settings have type %T", probe.Ephemeris)
	}
	if _, ok := probe.RadiationPressure["Sun"].(*CannonballRadiationPressureSettings); !ok {
		t.Fatalf("Probe radiation pressure settings have type %T", probe.RadiationPressure["Sun"])
	}

	// The loaded settings expose the right dependency edges.
	deps := probe.Dependencies()
	if len(deps) != 2 || deps[0].Name != "Earth" || deps[1].Name != "Sun" || !deps[1].Weak {
		t.Fatalf("Probe dependencies = %+v", deps)
	}
}

func TestLoadEnvironmentScenario_UnknownModelType(t *testing.T) {
	raw := `{"bodies": {"X": {"shape": {"type": "torus"}}}}`
	_, err := LoadEnvironmentScenario(strings.NewReader(raw))
	if err == nil {
		t.Fatalf("expected error for unknown shape type")
	}
	if !strings.Contains(err.Error(), "torus") || !strings.Contains(err.Error(), `"X"`) {
		t.Fatalf("error does not name the type and body: %v", err)
	}
}

func TestLoadEnvironmentScenario_BadInput(t *testing.T) {
	cases := map[string]string{
		"malformed":  `{"bodies": `,
		"no bodies":  `{"bodies": {}}`,
		"bad epoch":  `{"bodies": {"X": {"ephemeris": {"type": "keplerian", "central_body": "Y", "position": {"x": 1}, "epoch": "yesterday"}}}}`,
		"empty name": `{"bodies": {"": {}}}`,
	}
	for name, raw := range cases {
		if _, err := LoadEnvironmentScenario(strings.NewReader(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
