package app

import (
	"context"
	"fmt"

	"github.com/overlook-labs/overlook/internal/hooks"
	slogcontext "github.com/veqryn/slog-context"
)

// StartPlugin runs route loading between its before and after hooks.
type StartPlugin struct {
	Before *hooks.Series
	After  *hooks.Series
}

// Name implements Plugin.
func (p *StartPlugin) Name() string { return "start" }

// Init implements Plugin.
func (p *StartPlugin) Init(*App) error {
	p.Before = hooks.NewSeries("start.before")
	p.After = hooks.NewSeries("start.after")
	return nil
}

// Start runs the before hooks, loads a's routes, then runs the after hooks.
func (p *StartPlugin) Start(ctx context.Context, a *App) error {
	logger := slogcontext.FromCtx(ctx)
	logger.Debug("Starting application.")

	if err := p.Before.Call(ctx); err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	if err := a.routes.Load(ctx); err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	if err := p.After.Call(ctx); err != nil {
		return fmt.Errorf("starting: %w", err)
	}

	logger.Info("Application started.", "routes", len(a.flat))
	return nil
}

// StopPlugin runs its before hooks on Stop.
type StopPlugin struct {
	Before *hooks.Series
}

// Name implements Plugin.
func (p *StopPlugin) Name() string { return "stop" }

// Init implements Plugin.
func (p *StopPlugin) Init(*App) error {
	p.Before = hooks.NewSeries("stop.before")
	return nil
}

// Stop runs the before hooks.
func (p *StopPlugin) Stop(ctx context.Context) error {
	if err := p.Before.Call(ctx); err != nil {
		return fmt.Errorf("stopping: %w", err)
	}
	slogcontext.FromCtx(ctx).Info("Application stopped.")
	return nil
}
