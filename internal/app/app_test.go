package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/overlook-labs/overlook/internal/errs"
	"github.com/spf13/afero"
)

func memFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range files {
		if err := fsys.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", f, err)
		}
		if err := afero.WriteFile(fsys, f, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	return fsys
}

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.Paths == nil {
		opts.Paths = map[string]string{"root": "/app"}
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewRegistersCorePlugins(t *testing.T) {
	a := newApp(t, Options{})

	if diff := cmp.Diff([]string{"paths", "routes", "start", "stop"}, a.Plugins()); diff != "" {
		t.Errorf("Plugins (-want +got):\n%s", diff)
	}
	for _, name := range []string{"routes", "overlook-routes"} {
		if _, ok := a.Plugin(name); !ok {
			t.Errorf("Plugin(%q) not found", name)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	a := newApp(t, Options{})

	if got, _ := a.GetPath("routes"); got != "/app/routes" {
		t.Errorf("routes path = %q, want /app/routes", got)
	}
	if diff := cmp.Diff([]string{"js"}, a.RoutesPlugin().Exts()); diff != "" {
		t.Errorf("route exts (-want +got):\n%s", diff)
	}
}

func TestNewWithRoot(t *testing.T) {
	a, err := NewWithRoot("/srv/site")
	if err != nil {
		t.Fatalf("NewWithRoot: %v", err)
	}
	if got, _ := a.GetPath("routes"); got != "/srv/site/routes" {
		t.Errorf("routes path = %q, want /srv/site/routes", got)
	}
}

func TestRoutesPathPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		paths map[string]string
		path  string
		want  string
	}{
		{name: "default", paths: map[string]string{"root": "/app"}, want: "/app/routes"},
		{name: "configured path kept", paths: map[string]string{"root": "/app", "routes": "/elsewhere"}, want: "/elsewhere"},
		{name: "plugin option overrides configured", paths: map[string]string{"root": "/app", "routes": "/elsewhere"}, path: "pages", want: "/app/pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp(t, Options{Paths: tt.paths, Routes: RoutesOptions{Path: tt.path}})
			if got, _ := a.GetPath("routes"); got != tt.want {
				t.Errorf("routes path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouteExtsPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		types map[string]any
		exts  any
		want  []string
	}{
		{name: "default", want: []string{"js"}},
		{name: "empty route type defaults", types: map[string]any{"route": []any{}}, want: []string{"js"}},
		{name: "configured type kept", types: map[string]any{"route": []any{"ts"}}, want: []string{"ts"}},
		{name: "empty exts option ignored", types: map[string]any{"route": "ts"}, exts: []any{}, want: []string{"ts"}},
		{name: "exts option overrides type", types: map[string]any{"route": []any{"ts"}}, exts: "mjs", want: []string{"mjs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp(t, Options{Routes: RoutesOptions{Types: tt.types, Exts: tt.exts}})
			if diff := cmp.Diff(tt.want, a.RoutesPlugin().Exts()); diff != "" {
				t.Errorf("route exts (-want +got):\n%s", diff)
			}
			got, _ := a.Types().Get("route")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("types.route (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRouteExtsReflectsLaterChanges(t *testing.T) {
	a := newApp(t, Options{})
	rp := a.RoutesPlugin()
	if _, err := rp.AddExtensions("route", "ts"); err != nil {
		t.Fatalf("AddExtensions: %v", err)
	}
	if diff := cmp.Diff([]string{"js", "ts"}, rp.Exts()); diff != "" {
		t.Errorf("after AddExtensions (-want +got):\n%s", diff)
	}
	if _, err := rp.SetExtensions("route", "mjs"); err != nil {
		t.Fatalf("SetExtensions: %v", err)
	}
	if diff := cmp.Diff([]string{"mjs"}, rp.Exts()); diff != "" {
		t.Errorf("after SetExtensions (-want +got):\n%s", diff)
	}
}

func TestNewRejectsInvalidTypes(t *testing.T) {
	_, err := New(Options{
		Paths:  map[string]string{"root": "/app"},
		Routes: RoutesOptions{Types: map[string]any{"view": 12}},
	})
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("New error = %v, want ErrInvalidArgument", err)
	}
}

func TestLoadRoutes(t *testing.T) {
	fsys := memFs(t,
		"/app/routes/index.js",
		"/app/routes/about.js",
		"/app/routes/about.html",
		"/app/routes/users/index.js",
	)
	a := newApp(t, Options{Fs: fsys, Routes: RoutesOptions{Types: map[string]any{"view": "html"}}})

	if _, err := a.LoadRoutes(context.Background()); err != nil {
		t.Fatalf("LoadRoutes: %v", err)
	}

	var got []string
	for _, r := range a.Routes() {
		got = append(got, r.Path)
	}
	if diff := cmp.Diff([]string{"/", "/about", "/users"}, got); diff != "" {
		t.Errorf("routes (-want +got):\n%s", diff)
	}
	if a.Root() == nil || a.Root().Context != a {
		t.Error("root route does not carry the app as context")
	}
	if v := a.Root().Find("/about").Files["view"]; v != "/app/routes/about.html" {
		t.Errorf("about view = %q", v)
	}
	if n := len(a.RoutesPlugin().Flatten()); n != 3 {
		t.Errorf("Flatten returned %d routes, want 3", n)
	}
}

func TestLoadRoutesSyncPicksUpAddedExtensions(t *testing.T) {
	fsys := memFs(t, "/app/routes/index.js", "/app/routes/page.ts")
	a := newApp(t, Options{Fs: fsys})

	if _, err := a.RoutesPlugin().AddExtensions("route", "ts"); err != nil {
		t.Fatalf("AddExtensions: %v", err)
	}
	if _, err := a.LoadRoutesSync(context.Background()); err != nil {
		t.Fatalf("LoadRoutesSync: %v", err)
	}
	if a.Root().Find("/page") == nil {
		t.Error("route /page not loaded after adding ts extension")
	}
}

func TestLoadRoutesMissingDirectory(t *testing.T) {
	a := newApp(t, Options{Fs: afero.NewMemMapFs()})

	if _, err := a.LoadRoutes(context.Background()); err == nil {
		t.Fatal("LoadRoutes succeeded without a routes directory")
	}
	if a.Root() != nil {
		t.Error("Root set after failed load")
	}
}

func TestStartRunsHooksAroundLoad(t *testing.T) {
	fsys := memFs(t, "/app/routes/index.js")
	a := newApp(t, Options{Fs: fsys})

	var events []string
	a.StartHooks().Before.Tap("test", func(context.Context) error {
		events = append(events, "before")
		if a.Root() != nil {
			t.Error("routes loaded before start.before hooks")
		}
		return nil
	})
	a.StartHooks().After.Tap("test", func(context.Context) error {
		events = append(events, "after")
		if a.Root() == nil {
			t.Error("routes not loaded before start.after hooks")
		}
		return nil
	})
	a.StopHooks().Before.Tap("test", func(context.Context) error {
		events = append(events, "stop")
		return nil
	})

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := a.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if diff := cmp.Diff([]string{"before", "after", "stop"}, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestStartAbortsOnHookError(t *testing.T) {
	a := newApp(t, Options{Fs: memFs(t, "/app/routes/index.js")})
	boom := errors.New("boom")
	a.StartHooks().Before.Tap("fail", func(context.Context) error { return boom })

	if err := a.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Start error = %v, want boom", err)
	}
	if a.Root() != nil {
		t.Error("routes loaded despite failing start.before hook")
	}
}

// recordingPlugin taps the start hooks and sets a path during Init.
type recordingPlugin struct {
	name string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Init(a *App) error {
	if err := a.DefaultPath("views", "views", ""); err != nil {
		return err
	}
	a.StartHooks().After.Tap(p.name, func(context.Context) error { return nil })
	return nil
}

func TestExtraPlugins(t *testing.T) {
	a := newApp(t, Options{Plugins: []Plugin{&recordingPlugin{name: "overlook-views"}}})

	if got, _ := a.GetPath("views"); got != "/app/views" {
		t.Errorf("views path = %q, want /app/views", got)
	}
	if _, ok := a.Plugin("views"); !ok {
		t.Error("Plugin(views) not found")
	}
	if diff := cmp.Diff([]string{"overlook-views"}, a.StartHooks().After.Names()); diff != "" {
		t.Errorf("start.after taps (-want +got):\n%s", diff)
	}
}

func TestUseRejectsDuplicates(t *testing.T) {
	a := newApp(t, Options{})

	err := a.Use(&recordingPlugin{name: "routes"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("Use duplicate error = %v", err)
	}
	if err := a.Use(&recordingPlugin{name: ""}); err == nil {
		t.Error("Use accepted a plugin without a name")
	}
}

func TestPathsPluginFluentMethods(t *testing.T) {
	a := newApp(t, Options{})
	p, ok := a.Plugin("paths")
	if !ok {
		t.Fatal("paths plugin missing")
	}
	pp := p.(*PathsPlugin)

	if _, err := pp.SetPath("assets", "public", ""); err != nil {
		t.Fatalf("SetPath: %v", err)
	}
	if _, err := pp.SetPathWithDefault("assets", "", "", "ignored", ""); err != nil {
		t.Fatalf("SetPathWithDefault: %v", err)
	}
	if got, _ := pp.GetPath("assets", "img"); got != "/app/public/img" {
		t.Errorf("GetPath = %q, want /app/public/img", got)
	}
	if err := a.SetPath("x", "", ""); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("SetPath empty = %v, want ErrInvalidArgument", err)
	}
}

func TestLoggerReceivesLoadMessages(t *testing.T) {
	var buf bytes.Buffer
	a := newApp(t, Options{
		Fs:     memFs(t, "/app/routes/index.js"),
		Logger: NewLogger("debug", "text", &buf),
	})
	if _, err := a.LoadRoutes(context.Background()); err != nil {
		t.Fatalf("LoadRoutes: %v", err)
	}
	if !strings.Contains(buf.String(), "Routes loaded.") {
		t.Errorf("log output missing load message:\n%s", buf.String())
	}
}
