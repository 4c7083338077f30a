package routetree

import (
	"errors"
	"strings"
)

// IndexName is the base name of the file that defines a directory's route.
const IndexName = "index"

// SkipChildren can be returned from a Traverse callback to skip the
// children of the current route.
var SkipChildren = errors.New("skip children")

// Route is a node of the loaded tree.
type Route struct {
	// Name is the route's segment name; empty for the root.
	Name string
	// Path is the slash-separated path from the root, e.g. "/users/edit".
	Path string
	// Dir is the directory the route was loaded from, if any.
	Dir string
	// File is the route definition file, if any.
	File string
	// Files holds files of other types, keyed by type name.
	Files map[string]string
	// Context is the value passed as Options.Context to the loader.
	Context any

	Parent   *Route
	Children []*Route
}

func newRoute(parent *Route, name string, ctx any) *Route {
	r := &Route{Name: name, Path: "/", Files: make(map[string]string), Parent: parent, Context: ctx}
	if parent != nil {
		r.Path = strings.TrimSuffix(parent.Path, "/") + "/" + name
	}
	return r
}

// Child returns the direct child called name, or nil.
func (r *Route) Child(name string) *Route {
	for _, c := range r.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the route at path below r, e.g. "/users/edit", or nil.
func (r *Route) Find(path string) *Route {
	cur := r
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		if cur = cur.Child(seg); cur == nil {
			return nil
		}
	}
	return cur
}

// Traverse calls fn for root and every descendant, parents before children.
// fn may return SkipChildren to prune the current route's subtree; any other
// error stops the walk and is returned.
func Traverse(root *Route, fn func(*Route) error) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range root.Children {
		if err := Traverse(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Flatten returns root and all its descendants in Traverse order.
func Flatten(root *Route) []*Route {
	var out []*Route
	_ = Traverse(root, func(r *Route) error {
		out = append(out, r)
		return nil
	})
	return out
}
