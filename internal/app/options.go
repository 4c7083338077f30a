package app

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/overlook-labs/overlook/internal/errs"
	"github.com/overlook-labs/overlook/internal/paths"
	"github.com/overlook-labs/overlook/internal/routetree"
	"github.com/spf13/cast"
)

// OptionsFromMap builds Options from loosely typed settings such as those
// decoded from a config file. Keys match case-insensitively and ignore "_"
// and "-", so "maxConcurrent", "max_concurrent" and "maxconcurrent" are the
// same key.
//
// "paths" may be a path string (the root) or a map of strings. "routes" may
// hold path, upon, types, exts, filter_files, filter_folders (glob patterns)
// and max_concurrent.
func OptionsFromMap(raw map[string]any) (Options, error) {
	var opts Options

	p, err := conformPaths(lookup(raw, "paths"))
	if err != nil {
		return opts, err
	}
	opts.Paths = p

	routes := lookup(raw, "routes")
	if routes == nil {
		return opts, nil
	}
	rm, ok := asMap(routes)
	if !ok {
		return opts, errs.InvalidArgument("routes must be a map (got %T)", routes)
	}
	if opts.Routes, err = conformRoutes(rm); err != nil {
		return opts, err
	}
	return opts, nil
}

func conformPaths(v any) (map[string]string, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case string:
		return map[string]string{paths.Root: p}, nil
	}

	m, ok := asMap(v)
	if !ok {
		return nil, errs.InvalidArgument("paths must be a map or a path string (got %T)", v)
	}
	out := make(map[string]string, len(m))
	for name, value := range m {
		if value == nil {
			continue
		}
		s, ok := value.(string)
		if !ok {
			return nil, errs.InvalidArgument("paths.%s must be a string (got %T)", name, value)
		}
		out[name] = s
	}
	return out, nil
}

func conformRoutes(m map[string]any) (RoutesOptions, error) {
	var ro RoutesOptions
	var err error

	if ro.Path, err = optionalString(m, "path"); err != nil {
		return ro, err
	}
	if ro.Upon, err = optionalString(m, "upon"); err != nil {
		return ro, err
	}

	if types := lookup(m, "types"); types != nil {
		tm, ok := asMap(types)
		if !ok {
			return ro, errs.InvalidArgument("routes.types must be a map (got %T)", types)
		}
		ro.Types = tm
	}
	ro.Exts = lookup(m, "exts")

	if ro.FilterFiles, err = globOption(m, "filterFiles"); err != nil {
		return ro, err
	}
	if ro.FilterFolders, err = globOption(m, "filterFolders"); err != nil {
		return ro, err
	}

	if v := lookup(m, "maxConcurrent"); v != nil {
		n, err := cast.ToIntE(v)
		if err != nil || n < 0 {
			return ro, errs.InvalidArgument("routes.maxConcurrent must be a non-negative integer (got %v)", v)
		}
		ro.MaxConcurrent = n
	}
	return ro, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	v := lookup(m, key)
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.InvalidArgument("routes.%s must be a string (got %T)", key, v)
	}
	return s, nil
}

func globOption(m map[string]any, key string) (routetree.Filter, error) {
	v := lookup(m, key)
	var patterns []string
	switch p := v.(type) {
	case nil:
		return nil, nil
	case string:
		patterns = []string{p}
	case []string:
		patterns = p
	case []any:
		for _, item := range p {
			s, ok := item.(string)
			if !ok {
				return nil, errs.InvalidArgument("routes.%s must hold only strings (got %T)", key, item)
			}
			patterns = append(patterns, s)
		}
	default:
		return nil, errs.InvalidArgument("routes.%s must be a pattern or a list of patterns (got %T)", key, v)
	}

	f, err := routetree.GlobFilter(patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: routes.%s: %w", errs.ErrInvalidArgument, key, err)
	}
	return f, nil
}

// lookup finds key in m ignoring case, "_" and "-". An exact match wins;
// among spellings that differ only in form, the first in sorted order wins.
func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	want := normalizeKey(key)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if normalizeKey(k) == want {
			return m[k]
		}
	}
	return nil
}

var keyReplacer = strings.NewReplacer("_", "", "-", "")

func normalizeKey(k string) string {
	return strings.ToLower(keyReplacer.Replace(k))
}

// asMap accepts the map shapes produced by YAML and viper decoding.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
