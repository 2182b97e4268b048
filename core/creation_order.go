package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/signalsfoundry/astro-environment/model"
)

var (
	ErrSelfReference       = errors.New("body settings reference the body itself")
	ErrUnresolvedReference = errors.New("body settings reference unknown body")
	ErrDependencyCycle     = errors.New("cyclic dependency between body settings")
)

// DetermineBodyCreationOrder computes an order over the settings store
// such that every body referenced by another body's settings (as
// ephemeris frame origin, gravity field central body, deforming body,
// or radiation pressure source) appears before its referrer.
//
// The order is a topological order of the dependency graph. Bodies
// that do not depend on each other are emitted in lexicographic name
// order, so the result is fully deterministic for a given store.
func DetermineBodyCreationOrder(store *model.SettingsStore) ([]model.NamedBodySettings, error) {
	if store == nil {
		return nil, fmt.Errorf("nil settings store")
	}

	names := store.Names()

	// dependents[d] lists bodies that must come after d; indegree
	// counts distinct unresolved dependencies per body.
	dependents := make(map[string][]string, len(names))
	indegree := make(map[string]int, len(names))

	for _, name := range names {
		settings, _ := store.Get(name)
		if settings == nil {
			continue
		}

		seen := make(map[string]struct{})
		for _, dep := range settings.Dependencies() {
			if dep.Name == name {
				return nil, fmt.Errorf("%w: body %q is its own %s", ErrSelfReference, name, dep.Field)
			}
			if !store.Has(dep.Name) {
				return nil, fmt.Errorf("%w: body %q names %q as %s, but %q is not in the settings store",
					ErrUnresolvedReference, name, dep.Name, dep.Field, dep.Name)
			}
			// A body may reference the same dependency through several
			// fields; count it once.
			if _, dup := seen[dep.Name]; dup {
				continue
			}
			seen[dep.Name] = struct{}{}
			dependents[dep.Name] = append(dependents[dep.Name], name)
			indegree[name]++
		}
	}

	// Kahn's algorithm with a sorted ready set for determinism.
	ready := make([]string, 0, len(names))
	for _, name := range names {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	ordered := make([]model.NamedBodySettings, 0, len(names))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]

		settings, _ := store.Get(name)
		ordered = append(ordered, model.NamedBodySettings{Name: name, Settings: settings})

		released := false
		for _, dependent := range dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(ordered) != len(names) {
		// Everything not emitted sits on a cycle (or downstream of one).
		var stuck []string
		for _, name := range names {
			if indegree[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: bodies %s", ErrDependencyCycle, strings.Join(quoteAll(stuck), ", "))
	}

	return ordered, nil
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fmt.Sprintf("%q", name)
	}
	return out
}
