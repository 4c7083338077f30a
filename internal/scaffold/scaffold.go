package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/overlook-labs/overlook/internal/branding"
	"github.com/overlook-labs/overlook/internal/exts"
	"github.com/overlook-labs/overlook/internal/manifest"
	"github.com/spf13/afero"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Data holds the template variables available to scaffold templates.
type Data struct {
	Name        string // project name, e.g. "my-site"
	DisplayName string // product name
	RoutesDir   string // routes directory relative to the project, e.g. "routes"
	Ext         string // route file extension, e.g. "js"
	Requires    string // semver constraint on the CLI, may be empty
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// NewData creates Data with defaults filled in. An empty routesDir becomes
// "routes" and an empty ext the default route extension. A semver version
// pins Requires to the same minor release or later.
func NewData(name, routesDir, ext, version string) *Data {
	d := &Data{
		Name:        projectName(name),
		DisplayName: branding.DisplayName(),
		RoutesDir:   routesDir,
		Ext:         strings.TrimPrefix(ext, "."),
	}
	if d.RoutesDir == "" {
		d.RoutesDir = "routes"
	}
	if d.Ext == "" {
		d.Ext = exts.DefaultRouteExtension
	}
	if v, err := semver.NewVersion(strings.TrimPrefix(version, "v")); err == nil {
		d.Requires = fmt.Sprintf(">= %d.%d.0", v.Major(), v.Minor())
	}
	return d
}

func projectName(name string) string {
	name = invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	name = strings.TrimLeft(name, "._-")
	if name == "" {
		return branding.CLIName() + "-site"
	}
	return name
}

// outputs maps each template to the file it renders, relative to the
// output directory.
func outputs(data *Data) []struct{ tmpl, out string } {
	return []struct{ tmpl, out string }{
		{"overlook.yaml.tmpl", branding.ProjectFile()},
		{"index.tmpl", filepath.Join(data.RoutesDir, "index."+data.Ext)},
	}
}

// Generate renders the project skeleton into outputDir on fsys. It fails
// without writing anything if any target file already exists. The generated
// project file is validated; issues are reported as warnings.
func Generate(fsys afero.Fs, outputDir string, data *Data) (*Result, error) {
	files := outputs(data)

	for _, f := range files {
		target := filepath.Join(outputDir, f.out)
		exists, err := afero.Exists(fsys, target)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", target, err)
		}
		if exists {
			return nil, fmt.Errorf("%s already exists; remove it first", target)
		}
	}

	rendered := make([][]byte, len(files))
	for i, f := range files {
		out, err := render(f.tmpl, data)
		if err != nil {
			return nil, err
		}
		rendered[i] = out
	}

	result := &Result{OutputDir: outputDir}
	for i, f := range files {
		target := filepath.Join(outputDir, f.out)
		if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", target, err)
		}
		if err := afero.WriteFile(fsys, target, rendered[i], 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", target, err)
		}
		result.Files = append(result.Files, f.out)
	}

	valResult, err := manifest.Validate(rendered[0])
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate %s: %v", files[0].out, err))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}

// GenerateOS is Generate on the OS filesystem.
func GenerateOS(outputDir string, data *Data) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return Generate(afero.NewOsFs(), outputDir, data)
}

func render(name string, data *Data) ([]byte, error) {
	tmplBytes, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
