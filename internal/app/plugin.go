package app

import (
	"fmt"
	"strings"

	"github.com/overlook-labs/overlook/internal/branding"
)

// Plugin is a feature composed into an App. A plugin may be registered or
// looked up as "overlook-<name>" or "<name>".
type Plugin interface {
	// Name identifies the plugin. It must be unique within an App.
	Name() string
	// Init attaches the plugin to a. It runs once, during Use.
	Init(a *App) error
}

// Use initializes p and registers it under its name.
func (a *App) Use(p Plugin) error {
	name := pluginName(p.Name())
	if name == "" {
		return fmt.Errorf("plugin %T has an empty name", p)
	}
	if _, exists := a.plugins[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}

	if err := p.Init(a); err != nil {
		return fmt.Errorf("initializing plugin %q: %w", name, err)
	}

	a.plugins[name] = p
	a.order = append(a.order, name)
	a.logger.Debug("Plugin registered.", "plugin", name)
	return nil
}

// Plugin returns the plugin registered under name.
func (a *App) Plugin(name string) (Plugin, bool) {
	p, ok := a.plugins[pluginName(name)]
	return p, ok
}

// Plugins returns the registered plugin names in registration order.
func (a *App) Plugins() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func pluginName(name string) string {
	return strings.TrimPrefix(name, branding.PluginPrefix())
}
