package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/signalsfoundry/astro-environment/kb"
	"github.com/signalsfoundry/astro-environment/model"
)

var (
	ErrUnreconcilableOrigin = errors.New("no conversion path to global frame origin")
	ErrOrientationMismatch  = errors.New("frame orientation differs from global orientation")
)

// SetGlobalFrameBodyEphemerides enforces a single global reference
// frame across the fully assembled body collection. Bodies are visited
// in sorted name order so diagnostics are deterministic.
//
// For each body with an ephemeris:
//   - an origin equal to the global origin (or unset) needs no action;
//   - an origin naming another body in the collection gets a
//     frame-transform installed that forwards that body's raw ephemeris
//     state (single-hop only: the origin body is not itself required to
//     be expressed in the global frame);
//   - an origin naming an absent body is fatal;
//   - an orientation differing from the global orientation is fatal and
//     never auto-repaired.
//
// For each body with a rotational ephemeris, the base frame
// orientation must equal the global orientation; attitude has no
// translational origin, so no origin check applies.
//
// The pass is idempotent: a transform already installed for the same
// origin is left untouched, so reconciling an already-consistent
// collection a second time is a no-op.
func SetGlobalFrameBodyEphemerides(bodies *kb.BodyMap, globalFrameOrigin, globalFrameOrientation string) error {
	if bodies == nil {
		return fmt.Errorf("nil body map")
	}

	for _, name := range bodies.Names() {
		body := bodies.Body(name)

		if ephemeris := body.Ephemeris(); ephemeris != nil {
			origin := ephemeris.ReferenceFrameOrigin()
			if origin != "" && origin != globalFrameOrigin {
				if err := installFrameTransform(bodies, body, origin, globalFrameOrigin); err != nil {
					return err
				}
			}

			orientation := ephemeris.ReferenceFrameOrientation()
			if orientation != "" && orientation != globalFrameOrientation {
				return fmt.Errorf("%w: ephemeris of body %q is in orientation %q, global orientation is %q",
					ErrOrientationMismatch, name, orientation, globalFrameOrientation)
			}
		}

		if rotation := body.RotationalEphemeris(); rotation != nil {
			base := rotation.BaseFrameOrientation()
			if base != "" && base != globalFrameOrientation {
				return fmt.Errorf("%w: rotation model of body %q has base orientation %q, global orientation is %q",
					ErrOrientationMismatch, name, base, globalFrameOrientation)
			}
		}
	}

	return nil
}

// installFrameTransform synthesizes the single-hop transform for a
// body whose ephemeris origin is another body in the collection.
func installFrameTransform(bodies *kb.BodyMap, body *kb.Body, origin, globalFrameOrigin string) error {
	if existing := body.FrameTransform(); existing != nil && existing.OriginName == origin {
		// Already reconciled on a previous pass.
		return nil
	}

	originBody := bodies.Body(origin)
	if originBody == nil {
		return fmt.Errorf("%w: body %q has ephemeris in frame %q, but no conversion to frame %q can be made",
			ErrUnreconcilableOrigin, body.Name(), origin, globalFrameOrigin)
	}

	body.SetFrameTransform(&kb.FrameTransform{
		OriginName: origin,
		StateAt: func(t time.Time) (model.State, error) {
			return originBody.EphemerisState(t)
		},
	})
	bodies.NotifyFrameTransformInstalled(body.Name())
	return nil
}
