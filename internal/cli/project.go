package cli

import (
	"fmt"

	"github.com/overlook-labs/overlook/internal/app"
	"github.com/overlook-labs/overlook/internal/config"
	"github.com/overlook-labs/overlook/internal/paths"
	"github.com/spf13/cobra"
)

// loadProject reads the project file named by --config, or the one in the
// working directory, and checks its version constraint.
func loadProject() (*config.Project, error) {
	p, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := p.CheckVersion(buildVersion); err != nil {
		return nil, err
	}
	return p, nil
}

// buildApp creates the application described by the project file. Logs go
// to the command's error stream; flags override the project's log settings
// and root path.
func buildApp(cmd *cobra.Command) (*app.App, error) {
	p, err := loadProject()
	if err != nil {
		return nil, err
	}

	opts, err := p.AppOptions()
	if err != nil {
		return nil, err
	}
	if rootDir != "" {
		opts.Paths[paths.Root] = rootDir
	}

	level, format := p.LogLevel(), p.LogFormat()
	if logLevel != "" {
		level = logLevel
	}
	if logFormat != "" {
		format = logFormat
	}
	opts.Logger = app.NewLogger(level, format, cmd.ErrOrStderr())

	a, err := app.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}
	return a, nil
}
