package exts

import (
	"fmt"
	"maps"
	"slices"

	"github.com/overlook-labs/overlook/internal/errs"
	"github.com/overlook-labs/overlook/internal/layered"
)

const (
	// RouteType is the type whose files define routes.
	RouteType = "route"

	// DefaultRouteExtension is used for RouteType when no extension is
	// configured for it.
	DefaultRouteExtension = "js"
)

// Registry maps type names to ordered, de-duplicated extension lists.
type Registry struct {
	store *layered.Store[any, []string]
}

// New creates a registry seeded from initial, whose values may be a string
// or a list of strings. Nil values are ignored. The route type always ends
// up with at least one extension: when it is absent or configured empty it
// gets DefaultRouteExtension.
func New(initial map[string]any) (*Registry, error) {
	r := &Registry{
		store: layered.New(layered.Policy[any, []string]{
			Validate: validate,
			Resolve:  resolve,
			Merge:    appendMissing,
			Clone:    slices.Clone[[]string],
		}),
	}

	for _, typ := range slices.Sorted(maps.Keys(initial)) {
		v := initial[typ]
		if v == nil {
			continue
		}
		if _, err := r.Set(typ, v); err != nil {
			return nil, fmt.Errorf("configuring types.%s: %w", typ, err)
		}
	}

	if current, ok := r.store.Get(RouteType); !ok || len(current) == 0 {
		r.store.Put(RouteType, []string{DefaultRouteExtension})
	}

	return r, nil
}

// Conform normalizes loosely typed input into a fresh slice of extensions.
// A single string becomes a one-element slice; a []string or a []any holding
// only strings is copied. Anything else, nil included, reports false.
// Conform does not remove duplicates.
func Conform(input any) ([]string, bool) {
	switch v := input.(type) {
	case string:
		return []string{v}, true
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Set replaces the extensions of typ and returns the stored list.
func (r *Registry) Set(typ string, exts any) ([]string, error) {
	return r.store.Set(typ, exts)
}

// Default sets the extensions of typ only if typ has none yet. It returns
// the list in effect afterwards.
func (r *Registry) Default(typ string, exts any) ([]string, error) {
	return r.store.Default(typ, exts)
}

// SetWithDefault sets exts when non-nil, otherwise applies fallback with
// Default. Features use it to let their own option override a centrally
// configured mapping.
func (r *Registry) SetWithDefault(typ string, exts, fallback any) ([]string, error) {
	return r.store.SetWithDefault(typ, exts, exts != nil, fallback)
}

// Add appends the extensions of exts that typ does not have yet, keeping
// the order of first appearance, and returns the full resulting list.
func (r *Registry) Add(typ string, exts any) ([]string, error) {
	return r.store.Merge(typ, exts)
}

// Get returns a copy of the extensions registered for typ.
func (r *Registry) Get(typ string) ([]string, bool) {
	return r.store.Get(typ)
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	return r.store.Keys()
}

// Snapshot returns a deep copy of the mapping.
func (r *Registry) Snapshot() map[string][]string {
	return r.store.Snapshot()
}

// TypeForExtension returns the first type, in sorted type order, that
// claims ext.
func (r *Registry) TypeForExtension(ext string) (string, bool) {
	for _, typ := range r.store.Keys() {
		list, _ := r.store.Get(typ)
		if slices.Contains(list, ext) {
			return typ, true
		}
	}
	return "", false
}

func validate(typ string, in any) error {
	if typ == "" {
		return errs.InvalidArgument("type must be a non-empty string")
	}
	list, ok := Conform(in)
	if !ok {
		return errs.InvalidArgument("extensions for type %q must be a string or a list of strings (got %T)", typ, in)
	}
	if slices.Contains(list, "") {
		return errs.InvalidArgument("extensions for type %q must not be empty strings", typ)
	}
	return nil
}

func resolve(_ string, in any) ([]string, error) {
	list, _ := Conform(in)
	return appendMissing(make([]string, 0, len(list)), list), nil
}

// appendMissing appends the values of incoming not already in existing.
func appendMissing(existing, incoming []string) []string {
	out := slices.Clone(existing)
	for _, ext := range incoming {
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}
