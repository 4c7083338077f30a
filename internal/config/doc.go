// Package config loads overlook.yaml project files with viper, applying
// OVERLOOK_* environment overrides, and manages user-level settings stored
// at ~/.overlook/config.yaml.
package config
