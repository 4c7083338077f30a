package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/overlook-labs/overlook/internal/exts"
	"github.com/overlook-labs/overlook/internal/paths"
	"github.com/overlook-labs/overlook/internal/routetree"
	"github.com/spf13/afero"
	slogcontext "github.com/veqryn/slog-context"
)

// RoutesPathName is the path registry entry holding the routes directory.
const RoutesPathName = "routes"

// Options configures New.
type Options struct {
	// Paths seeds the path registry. A missing "root" defaults to the
	// working directory.
	Paths map[string]string
	// Routes configures the routes plugin.
	Routes RoutesOptions
	// Logger receives the application's logs. Nil discards them.
	Logger *slog.Logger
	// Fs is the filesystem routes are loaded from. Nil means the OS
	// filesystem.
	Fs afero.Fs
	// Plugins are registered after the core plugins, in order.
	Plugins []Plugin
}

// RoutesOptions configures route loading.
type RoutesOptions struct {
	// Path of the routes directory, resolved upon Upon. Empty keeps a
	// configured "routes" path, or falls back to <root>/routes.
	Path string
	Upon string
	// Types maps type names to a string or list of strings of extensions.
	Types map[string]any
	// Exts, when non-nil, overrides the extensions of the route type.
	Exts any

	FilterFiles   routetree.Filter
	FilterFolders routetree.Filter
	MaxConcurrent int
}

// App is an overlook application.
type App struct {
	opts   Options
	logger *slog.Logger
	fs     afero.Fs

	paths *paths.Registry
	types *exts.Registry

	plugins map[string]Plugin
	order   []string

	routes *RoutesPlugin
	start  *StartPlugin
	stop   *StopPlugin

	root *routetree.Route
	flat []*routetree.Route
}

// New creates an App and registers the core plugins followed by
// opts.Plugins.
func New(opts Options) (*App, error) {
	a := &App{
		opts:    opts,
		logger:  opts.Logger,
		fs:      opts.Fs,
		plugins: make(map[string]Plugin),
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	if a.fs == nil {
		a.fs = afero.NewOsFs()
	}

	a.routes = &RoutesPlugin{}
	a.start = &StartPlugin{}
	a.stop = &StopPlugin{}

	core := []Plugin{&PathsPlugin{}, a.routes, a.start, a.stop}
	for _, p := range append(core, opts.Plugins...) {
		if err := a.Use(p); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("Application created.", "plugins", a.order)
	return a, nil
}

// NewWithRoot creates an App whose root path is root.
func NewWithRoot(root string) (*App, error) {
	return New(Options{Paths: map[string]string{paths.Root: root}})
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Fs returns the filesystem routes are loaded from.
func (a *App) Fs() afero.Fs { return a.fs }

// Options returns the options the App was created with.
func (a *App) Options() Options { return a.opts }

// Paths returns the path registry.
func (a *App) Paths() *paths.Registry { return a.paths }

// Types returns the type-extension registry.
func (a *App) Types() *exts.Registry { return a.types }

// SetPath stores a path; see paths.Registry.Set.
func (a *App) SetPath(name, path, upon string) error {
	_, err := a.paths.Set(name, path, upon)
	return err
}

// DefaultPath stores a path unless name is set; see paths.Registry.Default.
func (a *App) DefaultPath(name, path, upon string) error {
	_, err := a.paths.Default(name, path, upon)
	return err
}

// GetPath returns a stored path, optionally joined with parts.
func (a *App) GetPath(name string, parts ...string) (string, bool) {
	return a.paths.Get(name, parts...)
}

// RoutesPlugin returns the core routes plugin.
func (a *App) RoutesPlugin() *RoutesPlugin { return a.routes }

// StartHooks returns the hooks run around Start.
func (a *App) StartHooks() *StartPlugin { return a.start }

// StopHooks returns the hooks run by Stop.
func (a *App) StopHooks() *StopPlugin { return a.stop }

// LoadRoutes loads the route tree, reading sibling directories
// concurrently.
func (a *App) LoadRoutes(ctx context.Context) (*App, error) {
	if err := a.routes.Load(a.withLogger(ctx)); err != nil {
		return a, err
	}
	return a, nil
}

// LoadRoutesSync loads the route tree one directory at a time.
func (a *App) LoadRoutesSync(ctx context.Context) (*App, error) {
	if err := a.routes.LoadSync(a.withLogger(ctx)); err != nil {
		return a, err
	}
	return a, nil
}

// Root returns the root of the last loaded route tree, or nil.
func (a *App) Root() *routetree.Route { return a.root }

// Routes returns every route of the last loaded tree, parents first.
func (a *App) Routes() []*routetree.Route { return a.flat }

// Start runs the start.before hooks, loads routes, then runs the
// start.after hooks.
func (a *App) Start(ctx context.Context) error {
	return a.start.Start(a.withLogger(ctx), a)
}

// Stop runs the stop.before hooks.
func (a *App) Stop(ctx context.Context) error {
	return a.stop.Stop(a.withLogger(ctx))
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return slogcontext.NewCtx(ctx, a.logger)
}

func (a *App) setRoutes(root *routetree.Route) {
	a.root = root
	a.flat = routetree.Flatten(root)
}

func (a *App) requirePaths() error {
	if a.paths == nil {
		return fmt.Errorf("plugin %q must be registered first", "paths")
	}
	return nil
}
