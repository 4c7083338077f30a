package exts

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/overlook-labs/overlook/internal/errs"
)

func newRegistry(t *testing.T, initial map[string]any) *Registry {
	t.Helper()
	r, err := New(initial)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestConform(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   []string
		wantOK bool
	}{
		{name: "string", input: "js", want: []string{"js"}, wantOK: true},
		{name: "string slice keeps duplicates", input: []string{"a", "b", "a"}, want: []string{"a", "b", "a"}, wantOK: true},
		{name: "empty slice", input: []string{}, want: []string{}, wantOK: true},
		{name: "any slice of strings", input: []any{"ts", "tsx"}, want: []string{"ts", "tsx"}, wantOK: true},
		{name: "number", input: 42, wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "map", input: map[string]any{}, wantOK: false},
		{name: "slice with non-string", input: []any{"js", 1}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Conform(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Conform(%#v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Conform(%#v) (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestConformCopiesInput(t *testing.T) {
	in := []string{"js", "ts"}
	out, ok := Conform(in)
	if !ok {
		t.Fatal("Conform failed")
	}
	out[0] = "mutated"
	if in[0] != "js" {
		t.Errorf("Conform aliased caller slice: in[0] = %q", in[0])
	}
}

func TestNewRouteSeeding(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]any
		want    []string
	}{
		{name: "no types", initial: nil, want: []string{"js"}},
		{name: "route absent", initial: map[string]any{"view": "html"}, want: []string{"js"}},
		{name: "route nil", initial: map[string]any{"route": nil}, want: []string{"js"}},
		{name: "route empty", initial: map[string]any{"route": []any{}}, want: []string{"js"}},
		{name: "route explicit", initial: map[string]any{"route": []any{"ts"}}, want: []string{"ts"}},
		{name: "route string", initial: map[string]any{"route": "mjs"}, want: []string{"mjs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t, tt.initial)
			got, ok := r.Get(RouteType)
			if !ok {
				t.Fatal("route type not seeded")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("route extensions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewDoesNotSeedOtherTypes(t *testing.T) {
	r := newRegistry(t, map[string]any{"view": []any{}})

	got, ok := r.Get("view")
	if !ok {
		t.Fatal("view type missing")
	}
	if len(got) != 0 {
		t.Errorf("view = %v, want empty", got)
	}
}

func TestNewRejectsInvalidTypes(t *testing.T) {
	_, err := New(map[string]any{"route": []any{"js", 3}})
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("New error = %v, want ErrInvalidArgument", err)
	}
}

func TestSet(t *testing.T) {
	r := newRegistry(t, nil)

	got, err := r.Set("route", []string{"ts", "js"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if diff := cmp.Diff([]string{"ts", "js"}, got); diff != "" {
		t.Errorf("Set (-want +got):\n%s", diff)
	}
	stored, _ := r.Get("route")
	if diff := cmp.Diff([]string{"ts", "js"}, stored); diff != "" {
		t.Errorf("stored (-want +got):\n%s", diff)
	}
}

func TestSetDropsDuplicates(t *testing.T) {
	r := newRegistry(t, nil)

	got, err := r.Set("view", []string{"html", "htm", "html"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "htm"}, got); diff != "" {
		t.Errorf("Set (-want +got):\n%s", diff)
	}
}

func TestSetRejectsInvalidInput(t *testing.T) {
	r := newRegistry(t, nil)
	before := r.Snapshot()

	cases := []struct {
		name string
		typ  string
		exts any
	}{
		{name: "object", typ: "x", exts: map[string]any{}},
		{name: "nil", typ: "x", exts: nil},
		{name: "number", typ: "x", exts: 42},
		{name: "empty type", typ: "", exts: "js"},
		{name: "empty extension", typ: "x", exts: []string{"js", ""}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := r.Set(c.typ, c.exts); !errors.Is(err, errs.ErrInvalidArgument) {
				t.Errorf("Set(%q, %#v) error = %v, want ErrInvalidArgument", c.typ, c.exts, err)
			}
		})
	}

	if diff := cmp.Diff(before, r.Snapshot()); diff != "" {
		t.Errorf("registry mutated (-before +after):\n%s", diff)
	}
}

func TestDefault(t *testing.T) {
	r := newRegistry(t, nil)

	got, err := r.Default("view", "html")
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if diff := cmp.Diff([]string{"html"}, got); diff != "" {
		t.Errorf("Default on absent type (-want +got):\n%s", diff)
	}

	got, err = r.Default("view", "hbs")
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if diff := cmp.Diff([]string{"html"}, got); diff != "" {
		t.Errorf("Default on present type (-want +got):\n%s", diff)
	}

	if _, err := r.Default("view", 7); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("Default with invalid input = %v, want ErrInvalidArgument", err)
	}
}

func TestSetWithDefault(t *testing.T) {
	tests := []struct {
		name     string
		initial  map[string]any
		exts     any
		fallback any
		want     []string
	}{
		{name: "explicit overrides configured", initial: map[string]any{"view": "html"}, exts: "hbs", fallback: "tpl", want: []string{"hbs"}},
		{name: "configured wins over fallback", initial: map[string]any{"view": "html"}, fallback: "tpl", want: []string{"html"}},
		{name: "fallback when nothing configured", fallback: "tpl", want: []string{"tpl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t, tt.initial)
			got, err := r.SetWithDefault("view", tt.exts, tt.fallback)
			if err != nil {
				t.Fatalf("SetWithDefault: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SetWithDefault (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	r := newRegistry(t, map[string]any{"route": []any{"js"}})

	if _, err := r.Add("route", []string{"js", "ts"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := r.Add("route", []string{"ts", "jsx"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := []string{"js", "ts", "jsx"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Add result (-want +got):\n%s", diff)
	}
	stored, _ := r.Get("route")
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("stored (-want +got):\n%s", diff)
	}
}

func TestAddCreatesAbsentType(t *testing.T) {
	r := newRegistry(t, nil)

	got, err := r.Add("style", "css")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if diff := cmp.Diff([]string{"css"}, got); diff != "" {
		t.Errorf("Add (-want +got):\n%s", diff)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	r := newRegistry(t, nil)

	got, _ := r.Get("route")
	got[0] = "mutated"
	again, _ := r.Get("route")
	if again[0] != "js" {
		t.Errorf("Get aliased stored slice: %q", again[0])
	}
}

func TestTypeForExtension(t *testing.T) {
	r := newRegistry(t, map[string]any{"view": []any{"html", "js"}})

	if typ, ok := r.TypeForExtension("html"); !ok || typ != "view" {
		t.Errorf("TypeForExtension(html) = (%q, %v), want (view, true)", typ, ok)
	}
	// Both claim js; route sorts first.
	if typ, ok := r.TypeForExtension("js"); !ok || typ != "route" {
		t.Errorf("TypeForExtension(js) = (%q, %v), want (route, true)", typ, ok)
	}
	if _, ok := r.TypeForExtension("css"); ok {
		t.Error("TypeForExtension(css) found a type")
	}
	if diff := cmp.Diff([]string{"route", "view"}, r.Types()); diff != "" {
		t.Errorf("Types (-want +got):\n%s", diff)
	}
}
