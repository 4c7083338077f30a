package layered

import (
	"maps"
	"slices"
)

// Policy describes how raw input becomes a stored value.
type Policy[In, V any] struct {
	// Validate checks the shape of key and in. It runs on every write,
	// including Default calls that end up not storing anything. Optional.
	Validate func(key string, in In) error

	// Resolve turns validated input into the stored form. It must not
	// mutate the store it belongs to.
	Resolve func(key string, in In) (V, error)

	// Merge combines an existing value with a resolved incoming one. When
	// nil, Merge behaves like Set.
	Merge func(existing, incoming V) V

	// Clone copies values handed out to callers. When nil, values are
	// returned as stored.
	Clone func(V) V
}

// Store is a named key-value store written through a Policy.
type Store[In, V any] struct {
	policy Policy[In, V]
	values map[string]V
}

// New returns an empty store governed by policy.
func New[In, V any](policy Policy[In, V]) *Store[In, V] {
	return &Store[In, V]{
		policy: policy,
		values: make(map[string]V),
	}
}

// Get returns the value stored under key.
func (s *Store[In, V]) Get(key string) (V, bool) {
	v, ok := s.values[key]
	if !ok {
		return v, false
	}
	return s.clone(v), true
}

// Has reports whether key has an entry.
func (s *Store[In, V]) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of entries.
func (s *Store[In, V]) Len() int {
	return len(s.values)
}

// Put stores an already resolved value, bypassing the policy. It is meant
// for seeding a store from trusted, normalized configuration.
func (s *Store[In, V]) Put(key string, v V) {
	s.values[key] = v
}

// Set validates and resolves in, then stores it under key unconditionally.
func (s *Store[In, V]) Set(key string, in In) (V, error) {
	v, err := s.resolve(key, in)
	if err != nil {
		var zero V
		return zero, err
	}
	s.values[key] = v
	return s.clone(v), nil
}

// Default stores in under key only if key has no entry yet. It returns the
// value in effect afterwards, whether pre-existing or newly stored.
func (s *Store[In, V]) Default(key string, in In) (V, error) {
	if err := s.validate(key, in); err != nil {
		var zero V
		return zero, err
	}
	if existing, ok := s.values[key]; ok {
		return s.clone(existing), nil
	}
	return s.Set(key, in)
}

// SetWithDefault lets a feature expose its own option while cooperating with
// centrally configured values: when present is true, in is Set; otherwise
// fallback is applied with Default.
func (s *Store[In, V]) SetWithDefault(key string, in In, present bool, fallback In) (V, error) {
	if present {
		return s.Set(key, in)
	}
	return s.Default(key, fallback)
}

// Merge resolves in and combines it with the existing entry using the
// policy's Merge function. An absent key stores the resolved value as-is.
func (s *Store[In, V]) Merge(key string, in In) (V, error) {
	v, err := s.resolve(key, in)
	if err != nil {
		var zero V
		return zero, err
	}
	if existing, ok := s.values[key]; ok && s.policy.Merge != nil {
		v = s.policy.Merge(existing, v)
	}
	s.values[key] = v
	return s.clone(v), nil
}

// Keys returns the stored keys in sorted order.
func (s *Store[In, V]) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Snapshot returns an independent copy of the store's contents.
func (s *Store[In, V]) Snapshot() map[string]V {
	out := make(map[string]V, len(s.values))
	for k, v := range s.values {
		out[k] = s.clone(v)
	}
	return out
}

func (s *Store[In, V]) validate(key string, in In) error {
	if s.policy.Validate == nil {
		return nil
	}
	return s.policy.Validate(key, in)
}

func (s *Store[In, V]) resolve(key string, in In) (V, error) {
	if err := s.validate(key, in); err != nil {
		var zero V
		return zero, err
	}
	return s.policy.Resolve(key, in)
}

func (s *Store[In, V]) clone(v V) V {
	if s.policy.Clone == nil {
		return v
	}
	return s.policy.Clone(v)
}
