package app

import (
	"context"
	"fmt"
	"time"

	"github.com/overlook-labs/overlook/internal/exts"
	"github.com/overlook-labs/overlook/internal/routetree"
	"github.com/spf13/afero"
	slogcontext "github.com/veqryn/slog-context"
)

// RoutesPlugin configures the routes directory and route types, and loads
// the route tree.
type RoutesPlugin struct {
	app *App
}

// Name implements Plugin.
func (p *RoutesPlugin) Name() string { return "routes" }

// Init implements Plugin. An explicit routes path or route extension list
// overrides what is configured centrally; otherwise defaults are applied
// only where nothing is configured.
func (p *RoutesPlugin) Init(a *App) error {
	if err := a.requirePaths(); err != nil {
		return err
	}
	opts := a.opts.Routes

	if _, err := a.paths.SetWithDefault(RoutesPathName, opts.Path, opts.Upon, RoutesPathName, ""); err != nil {
		return fmt.Errorf("configuring routes path: %w", err)
	}

	types, err := exts.New(opts.Types)
	if err != nil {
		return err
	}
	// An empty list is treated as absent so the route type keeps an extension.
	routeOpt := opts.Exts
	if list, ok := exts.Conform(routeOpt); ok && len(list) == 0 {
		routeOpt = nil
	}
	if _, err := types.SetWithDefault(exts.RouteType, routeOpt, exts.DefaultRouteExtension); err != nil {
		return fmt.Errorf("configuring route extensions: %w", err)
	}

	p.app = a
	a.types = types
	return nil
}

// Exts returns the extensions currently registered for the route type.
func (p *RoutesPlugin) Exts() []string {
	list, _ := p.app.types.Get(exts.RouteType)
	return list
}

// SetExtensions replaces the extensions of typ; see exts.Registry.Set.
func (p *RoutesPlugin) SetExtensions(typ string, e any) ([]string, error) {
	return p.app.types.Set(typ, e)
}

// DefaultExtensions sets the extensions of typ if it has none; see
// exts.Registry.Default.
func (p *RoutesPlugin) DefaultExtensions(typ string, e any) ([]string, error) {
	return p.app.types.Default(typ, e)
}

// SetExtensionsWithDefault sets e when non-nil, otherwise defaults to
// fallback; see exts.Registry.SetWithDefault.
func (p *RoutesPlugin) SetExtensionsWithDefault(typ string, e, fallback any) ([]string, error) {
	return p.app.types.SetWithDefault(typ, e, fallback)
}

// AddExtensions appends missing extensions to typ; see exts.Registry.Add.
func (p *RoutesPlugin) AddExtensions(typ string, e any) ([]string, error) {
	return p.app.types.Add(typ, e)
}

// LoaderOptions returns the snapshot of configuration handed to the loader.
func (p *RoutesPlugin) LoaderOptions() (string, routetree.Options) {
	a := p.app
	dir, _ := a.paths.Get(RoutesPathName)
	return dir, routetree.Options{
		Types:         a.types.Snapshot(),
		FilterFiles:   a.opts.Routes.FilterFiles,
		FilterFolders: a.opts.Routes.FilterFolders,
		MaxConcurrent: a.opts.Routes.MaxConcurrent,
		Context:       a,
	}
}

// Load loads the route tree concurrently and stores it on the App.
func (p *RoutesPlugin) Load(ctx context.Context) error {
	return p.load(ctx, routetree.Load)
}

// LoadSync loads the route tree sequentially and stores it on the App.
func (p *RoutesPlugin) LoadSync(ctx context.Context) error {
	return p.load(ctx, routetree.LoadSync)
}

// Traverse walks the loaded route tree; see routetree.Traverse.
func (p *RoutesPlugin) Traverse(fn func(*routetree.Route) error) error {
	return routetree.Traverse(p.app.root, fn)
}

// Flatten returns the loaded routes, parents first.
func (p *RoutesPlugin) Flatten() []*routetree.Route {
	return routetree.Flatten(p.app.root)
}

type loadFunc func(context.Context, afero.Fs, string, routetree.Options) (*routetree.Route, error)

func (p *RoutesPlugin) load(ctx context.Context, fn loadFunc) error {
	logger := slogcontext.FromCtx(ctx)
	dir, opts := p.LoaderOptions()

	started := time.Now()
	root, err := fn(ctx, p.app.fs, dir, opts)
	if err != nil {
		return fmt.Errorf("loading routes from %s: %w", dir, err)
	}
	p.app.setRoutes(root)

	logger.Info("Routes loaded.", "dir", dir, "count", len(p.app.flat), "duration", time.Since(started))
	return nil
}
