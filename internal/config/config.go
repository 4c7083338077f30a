package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/overlook-labs/overlook/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// user holds the user-level settings. It is replaced by LoadUser.
var user = viper.New()

// Dir returns the path to the user config directory (~/.overlook/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file (~/.overlook/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// LoadUser reads the user config file and the environment.
func LoadUser() {
	user = viper.New()
	user.SetConfigFile(FilePath())
	user.SetConfigType(fileType)
	user.SetEnvPrefix(branding.EnvPrefix())
	user.SetEnvKeyReplacer(envKeyReplacer)
	user.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = user.ReadInConfig()
}

// Get returns a user config value by key. Returns empty string if not set.
func Get(key string) string {
	return user.GetString(key)
}

// Set writes a user config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	user.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := user.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
