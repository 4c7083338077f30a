package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/overlook-labs/overlook/internal/app"
	"github.com/overlook-labs/overlook/internal/branding"
	"github.com/overlook-labs/overlook/internal/manifest"
	"github.com/overlook-labs/overlook/internal/paths"
	"github.com/spf13/viper"
)

// Defaults applied when neither the project file, the environment nor the
// user settings name a value.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// OVERLOOK_LOG_LEVEL maps to log.level.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Overridable from the environment even though the project file nests them
// inside maps.
var routeScalars = []string{"path", "upon", "max_concurrent"}

// ValidationError reports a project file that does not match the schema.
type ValidationError struct {
	File   string
	Issues []manifest.ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid project file %s: %s", e.File, strings.Join(msgs, "; "))
}

// Project holds the settings of a project file merged with OVERLOOK_*
// environment variables.
type Project struct {
	v    *viper.Viper
	file string
}

// Load reads the project file at path. An empty path looks for overlook.yaml
// in the working directory; when there is none the Project carries only
// defaults and environment overrides. The file is validated against the
// project schema before it is read.
func Load(path string) (*Project, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	v.SetDefault("log.level", userDefault("log.level", DefaultLogLevel))
	v.SetDefault("log.format", userDefault("log.format", DefaultLogFormat))
	if err := v.BindEnv(paths.Root); err != nil {
		return nil, fmt.Errorf("binding %s: %w", branding.EnvVar(paths.Root), err)
	}

	if path == "" {
		path = branding.ProjectFile()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return &Project{v: v}, nil
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	result, err := manifest.ValidateFile(abs)
	if err != nil {
		return nil, fmt.Errorf("validating project file: %w", err)
	}
	if !result.Valid {
		return nil, &ValidationError{File: abs, Issues: result.Issues}
	}

	v.SetConfigFile(abs)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", abs, err)
	}
	return &Project{v: v, file: abs}, nil
}

// File returns the absolute path of the loaded project file, or "" when
// none was found.
func (p *Project) File() string { return p.file }

// Dir returns the directory holding the project file, or "".
func (p *Project) Dir() string {
	if p.file == "" {
		return ""
	}
	return filepath.Dir(p.file)
}

// Name returns the project name.
func (p *Project) Name() string { return p.v.GetString("name") }

// Requires returns the semver constraint on the CLI version, if any.
func (p *Project) Requires() string { return p.v.GetString("requires") }

// LogLevel returns the configured log level.
func (p *Project) LogLevel() string { return p.v.GetString("log.level") }

// LogFormat returns the configured log format.
func (p *Project) LogFormat() string { return p.v.GetString("log.format") }

// Settings returns every setting, keys lowercased.
func (p *Project) Settings() map[string]any { return p.v.AllSettings() }

// CheckVersion reports an error when version does not satisfy Requires.
// Versions that are not semver, such as "dev" builds, are not checked.
func (p *Project) CheckVersion(version string) error {
	req := p.Requires()
	if req == "" {
		return nil
	}
	c, err := semver.NewConstraint(req)
	if err != nil {
		return fmt.Errorf("parsing requires %q: %w", req, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return fmt.Errorf("project requires %s %s, running %s", branding.CLIName(), req, version)
	}
	return nil
}

// AppOptions converts the paths and routes settings to app.Options. The
// root path defaults to the project file's directory, and a relative root
// from the file is resolved against that directory. OVERLOOK_ROOT
// overrides both.
func (p *Project) AppOptions() (app.Options, error) {
	raw := map[string]any{
		"paths":  p.v.Get("paths"),
		"routes": p.routes(),
	}
	opts, err := app.OptionsFromMap(raw)
	if err != nil {
		return opts, fmt.Errorf("project file %s: %w", p.file, err)
	}

	if opts.Paths == nil {
		opts.Paths = make(map[string]string)
	}
	root := opts.Paths[paths.Root]
	switch env := p.v.GetString(paths.Root); {
	case env != "":
		root = env
	case p.file != "" && root == "":
		root = p.Dir()
	case p.file != "" && !filepath.IsAbs(root):
		root = filepath.Join(p.Dir(), root)
	}
	if root != "" {
		opts.Paths[paths.Root] = root
	}
	return opts, nil
}

func (p *Project) routes() any {
	routes := make(map[string]any)
	if m, ok := p.v.Get("routes").(map[string]any); ok {
		maps.Copy(routes, m)
	}
	for _, key := range routeScalars {
		if p.v.IsSet("routes." + key) {
			routes[key] = p.v.Get("routes." + key)
		}
	}
	if len(routes) == 0 {
		return nil
	}
	return routes
}

func userDefault(key, fallback string) string {
	if v := Get(key); v != "" {
		return v
	}
	return fallback
}
