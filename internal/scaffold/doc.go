// Package scaffold generates a new project skeleton from embedded templates.
// It powers the "overlook init" command, writing overlook.yaml and an index
// route, and never overwrites existing files.
package scaffold
