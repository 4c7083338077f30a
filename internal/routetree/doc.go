// Package routetree locates route files under a directory and arranges them
// into a tree. Every directory is a route; an index file of the route type
// defines it, and other route-type files define leaf child routes named
// after the file. Files of other registered types are attached to the route
// of the same base name.
//
// Routes are only located and registered here. Nothing in this package
// reads or executes their contents.
package routetree
