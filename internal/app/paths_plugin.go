package app

import (
	"fmt"

	"github.com/overlook-labs/overlook/internal/paths"
)

// PathsPlugin owns the application's path registry.
type PathsPlugin struct {
	app *App
}

// Name implements Plugin.
func (p *PathsPlugin) Name() string { return "paths" }

// Init implements Plugin.
func (p *PathsPlugin) Init(a *App) error {
	reg, err := paths.New(a.opts.Paths)
	if err != nil {
		return fmt.Errorf("configuring paths: %w", err)
	}
	p.app = a
	a.paths = reg

	root, _ := reg.Get(paths.Root)
	a.logger.Debug("Path registry created.", "root", root)
	return nil
}

// SetPath stores a path; see paths.Registry.Set.
func (p *PathsPlugin) SetPath(name, path, upon string) (*PathsPlugin, error) {
	_, err := p.app.paths.Set(name, path, upon)
	return p, err
}

// DefaultPath stores a path unless one exists; see paths.Registry.Default.
func (p *PathsPlugin) DefaultPath(name, path, upon string) (*PathsPlugin, error) {
	_, err := p.app.paths.Default(name, path, upon)
	return p, err
}

// SetPathWithDefault lets a plugin expose its own path option; see
// paths.Registry.SetWithDefault.
func (p *PathsPlugin) SetPathWithDefault(name, path, upon, defaultPath, defaultUpon string) (*PathsPlugin, error) {
	_, err := p.app.paths.SetWithDefault(name, path, upon, defaultPath, defaultUpon)
	return p, err
}

// GetPath returns a stored path, optionally joined with parts.
func (p *PathsPlugin) GetPath(name string, parts ...string) (string, bool) {
	return p.app.paths.Get(name, parts...)
}
