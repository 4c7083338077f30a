// Package branding provides compile-time identity values for the CLI.
//
// The values come from the embedded branding.yaml, so a fork can rename the
// binary, its home directory and its environment prefix in one place.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GitHubRepo  string `yaml:"github_repo"`
	ProjectFile string `yaml:"project_file"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "overlook",
			DisplayName: "Overlook",
			Description: "Filesystem-driven route loader for web applications",
			HomeDir:     ".overlook",
			EnvPrefix:   "OVERLOOK",
			GitHubRepo:  "overlook-labs/overlook",
			ProjectFile: "overlook.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "overlook").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".overlook").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "OVERLOOK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// ProjectFile returns the project configuration file name (e.g., "overlook.yaml").
func ProjectFile() string { load(); return defaults.ProjectFile }

// PluginPrefix returns the prefix plugin names may carry (e.g., "overlook-").
func PluginPrefix() string { load(); return defaults.CLIName + "-" }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log_level") → "OVERLOOK_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
