package routetree

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/afero"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RouteType is the type whose files define routes.
const RouteType = "route"

// Options configures a load.
type Options struct {
	// Types maps type names to the file extensions (without the dot)
	// recognized for them. Files with other extensions are ignored.
	Types map[string][]string
	// FilterFiles and FilterFolders restrict which entries are loaded.
	FilterFiles   Filter
	FilterFolders Filter
	// MaxConcurrent bounds concurrent directory reads. Zero or less means
	// runtime.NumCPU().
	MaxConcurrent int
	// Context is attached to every loaded route.
	Context any
}

type loader struct {
	fs         afero.Fs
	opts       Options
	extTypes   map[string]string
	sem        *semaphore.Weighted
	concurrent bool
}

// Load reads the tree rooted at dir, loading sibling directories
// concurrently.
func Load(ctx context.Context, fsys afero.Fs, dir string, opts Options) (*Route, error) {
	return load(ctx, fsys, dir, opts, true)
}

// LoadSync reads the tree rooted at dir one directory at a time.
func LoadSync(ctx context.Context, fsys afero.Fs, dir string, opts Options) (*Route, error) {
	return load(ctx, fsys, dir, opts, false)
}

func load(ctx context.Context, fsys afero.Fs, dir string, opts Options, concurrent bool) (*Route, error) {
	logger := slogcontext.FromCtx(ctx)

	extTypes, err := indexExtensions(opts.Types)
	if err != nil {
		return nil, err
	}

	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading routes directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("routes path %s is not a directory", dir)
	}

	limit := opts.MaxConcurrent
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	l := &loader{
		fs:         fsys,
		opts:       opts,
		extTypes:   extTypes,
		sem:        semaphore.NewWeighted(int64(limit)),
		concurrent: concurrent,
	}

	logger.Debug("Loading route tree.", "dir", dir, "concurrent", concurrent, "max_concurrent", limit)
	root := newRoute(nil, "", opts.Context)
	root.Dir = dir
	if err := l.loadDir(ctx, root); err != nil {
		return nil, err
	}
	logger.Debug("Route tree loaded.", "dir", dir, "routes", len(Flatten(root)))
	return root, nil
}

// indexExtensions inverts a type->extensions map. An extension claimed by
// two types is an error, since a file could not be classified.
func indexExtensions(types map[string][]string) (map[string]string, error) {
	index := make(map[string]string)
	for _, typ := range slices.Sorted(maps.Keys(types)) {
		for _, ext := range types[typ] {
			if other, ok := index[ext]; ok && other != typ {
				return nil, fmt.Errorf("extension %q is claimed by both %q and %q", ext, other, typ)
			}
			index[ext] = typ
		}
	}
	return index, nil
}

// loadDir fills route from the contents of route.Dir, recursing into
// sub-directories.
func (l *loader) loadDir(ctx context.Context, route *Route) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := l.readDir(ctx, route.Dir)
	if err != nil {
		return err
	}

	// files[base][type] = path
	files := make(map[string]map[string]string)
	var dirs []*Route

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(route.Dir, name)

		if entry.IsDir() {
			if !l.opts.FilterFolders.accept(name, full) {
				continue
			}
			child := newRoute(route, name, l.opts.Context)
			child.Dir = full
			dirs = append(dirs, child)
			continue
		}

		if !l.opts.FilterFiles.accept(name, full) {
			continue
		}
		ext := filepath.Ext(name)
		typ, ok := l.extTypes[strings.TrimPrefix(ext, ".")]
		if !ok {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		if files[base] == nil {
			files[base] = make(map[string]string)
		}
		if existing, ok := files[base][typ]; ok {
			return fmt.Errorf("%s and %s both define the %s file for %q", existing, full, typ, base)
		}
		files[base][typ] = full
	}

	if err := l.loadChildren(ctx, dirs); err != nil {
		return err
	}

	for typ, path := range files[IndexName] {
		if typ == RouteType {
			route.File = path
		} else {
			route.Files[typ] = path
		}
	}

	children := dirs
	for _, base := range slices.Sorted(maps.Keys(files)) {
		if base == IndexName {
			continue
		}
		byType := files[base]

		var child *Route
		for _, d := range dirs {
			if d.Name == base {
				child = d
				break
			}
		}
		if child == nil {
			if _, ok := byType[RouteType]; !ok {
				slogcontext.FromCtx(ctx).Debug("Ignoring files without a route.", "dir", route.Dir, "name", base)
				continue
			}
			child = newRoute(route, base, l.opts.Context)
			children = append(children, child)
		}

		// A directory's own index files take precedence over siblings.
		for typ, path := range byType {
			if typ == RouteType {
				if child.File == "" {
					child.File = path
				}
				continue
			}
			if _, ok := child.Files[typ]; !ok {
				child.Files[typ] = path
			}
		}
	}

	slices.SortFunc(children, func(a, b *Route) int { return strings.Compare(a.Name, b.Name) })
	route.Children = children
	return nil
}

func (l *loader) loadChildren(ctx context.Context, dirs []*Route) error {
	if !l.concurrent {
		for _, d := range dirs {
			if err := l.loadDir(ctx, d); err != nil {
				return err
			}
		}
		return nil
	}

	// The semaphore only guards directory reads, so recursion here cannot
	// starve parents waiting on their children.
	eg, egctx := errgroup.WithContext(ctx)
	for _, d := range dirs {
		eg.Go(func() error {
			return l.loadDir(egctx, d)
		})
	}
	return eg.Wait()
}

func (l *loader) readDir(ctx context.Context, dir string) ([]os.FileInfo, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	return entries, nil
}
