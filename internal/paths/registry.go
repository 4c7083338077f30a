package paths

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/overlook-labs/overlook/internal/errs"
	"github.com/overlook-labs/overlook/internal/layered"
)

// Root is the name of the base path every relative path resolves upon
// unless another one is named.
const Root = "root"

// input is the raw form of a path write.
type input struct {
	path string
	upon string
}

// Registry maps path names to absolute filesystem paths.
type Registry struct {
	store *layered.Store[input, string]
}

// New creates a registry seeded from initial. The "root" entry defaults to
// the process working directory; a relative root is made absolute against
// it. Other relative entries resolve upon root. Empty values are dropped.
func New(initial map[string]string) (*Registry, error) {
	r := &Registry{}
	r.store = layered.New(layered.Policy[input, string]{
		Validate: validate,
		Resolve:  r.resolve,
	})

	root := initial[Root]
	if root == "" || !isAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	r.store.Put(Root, root)

	for _, name := range slices.Sorted(maps.Keys(initial)) {
		path := initial[name]
		if name == Root || path == "" {
			continue
		}
		if _, err := r.Set(name, path, Root); err != nil {
			return nil, fmt.Errorf("configuring path %q: %w", name, err)
		}
	}

	return r, nil
}

// Set stores path under name, overwriting any existing entry. A path that
// starts with the path separator is stored verbatim; otherwise it is joined
// onto the path named by upon ("root" when upon is empty).
func (r *Registry) Set(name, path, upon string) (*Registry, error) {
	if _, err := r.store.Set(name, input{path: path, upon: upon}); err != nil {
		return r, err
	}
	return r, nil
}

// Default behaves like Set but leaves an existing entry untouched.
func (r *Registry) Default(name, path, upon string) (*Registry, error) {
	if _, err := r.store.Default(name, input{path: path, upon: upon}); err != nil {
		return r, err
	}
	return r, nil
}

// SetWithDefault is meant for features that accept their own path option:
// an explicit path overwrites whatever is configured, while an empty one
// only applies defaultPath (upon defaultUpon) if name is not set yet.
func (r *Registry) SetWithDefault(name, path, upon, defaultPath, defaultUpon string) (*Registry, error) {
	_, err := r.store.SetWithDefault(name,
		input{path: path, upon: upon},
		path != "",
		input{path: defaultPath, upon: defaultUpon},
	)
	return r, err
}

// Get returns the path stored under name. With parts, it returns the stored
// path joined with them; the registry is not modified. A missing name
// reports false rather than failing.
func (r *Registry) Get(name string, parts ...string) (string, bool) {
	base, ok := r.store.Get(name)
	if !ok {
		return "", false
	}
	if len(parts) == 0 {
		return base, true
	}
	return filepath.Join(append([]string{base}, parts...)...), true
}

// Names returns the registered path names in sorted order.
func (r *Registry) Names() []string {
	return r.store.Keys()
}

// Snapshot returns a copy of all entries.
func (r *Registry) Snapshot() map[string]string {
	return r.store.Snapshot()
}

func validate(name string, in input) error {
	if name == "" {
		return errs.InvalidArgument("name must be a non-empty string")
	}
	if in.path == "" {
		return errs.InvalidArgument("path for %q must be a non-empty string", name)
	}
	return nil
}

func (r *Registry) resolve(_ string, in input) (string, error) {
	if isAbs(in.path) {
		return in.path, nil
	}
	upon := in.upon
	if upon == "" {
		upon = Root
	}
	base, ok := r.store.Get(upon)
	if !ok {
		return "", errs.MissingBasePath(upon)
	}
	return filepath.Join(base, in.path), nil
}

func isAbs(path string) bool {
	return strings.HasPrefix(path, string(filepath.Separator)) || filepath.IsAbs(path)
}
