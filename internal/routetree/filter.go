package routetree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Filter decides whether a directory entry is loaded. name is the entry's
// base name and path its full path. A nil Filter accepts everything.
type Filter func(name, path string) bool

// GlobFilter builds a Filter from glob patterns matched against entry names.
// Patterns prefixed with "!" exclude. An entry is accepted when it matches
// no exclude pattern and, if any include patterns exist, at least one of
// them. No patterns yields a nil Filter.
func GlobFilter(patterns ...string) (Filter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var include, exclude []glob.Glob
	for _, p := range patterns {
		negate := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile glob pattern %q: %w", p, err)
		}
		if negate {
			exclude = append(exclude, g)
		} else {
			include = append(include, g)
		}
	}

	return func(name, _ string) bool {
		for _, g := range exclude {
			if g.Match(name) {
				return false
			}
		}
		if len(include) == 0 {
			return true
		}
		for _, g := range include {
			if g.Match(name) {
				return true
			}
		}
		return false
	}, nil
}

// RegexpFilter accepts entries whose name matches re.
func RegexpFilter(re *regexp.Regexp) Filter {
	return func(name, _ string) bool {
		return re.MatchString(name)
	}
}

func (f Filter) accept(name, path string) bool {
	return f == nil || f(name, path)
}
