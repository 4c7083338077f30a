// Package cli defines the Cobra command tree for the overlook CLI. Each file
// in this package registers one top-level command (routes, start, init, etc.)
// with the root command. Commands load the project file, build an app.App
// and only handle flag parsing and output formatting.
package cli
