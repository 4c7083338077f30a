package hooks

import (
	"context"
	"fmt"

	slogcontext "github.com/veqryn/slog-context"
)

// Func is a single hook callback.
type Func func(ctx context.Context) error

type tap struct {
	name string
	fn   Func
}

// Series runs its taps one after another in registration order.
type Series struct {
	name string
	taps []tap
}

// NewSeries returns an empty hook. The name only appears in logs and errors.
func NewSeries(name string) *Series {
	return &Series{name: name}
}

// Tap registers fn under name.
func (s *Series) Tap(name string, fn Func) {
	s.taps = append(s.taps, tap{name: name, fn: fn})
}

// Len returns the number of taps.
func (s *Series) Len() int {
	return len(s.taps)
}

// Names returns the tap names in call order.
func (s *Series) Names() []string {
	names := make([]string, len(s.taps))
	for i, t := range s.taps {
		names[i] = t.name
	}
	return names
}

// Call runs every tap in order and stops at the first error or when ctx is
// done.
func (s *Series) Call(ctx context.Context) error {
	logger := slogcontext.FromCtx(ctx).With("hook", s.name)

	for _, t := range s.taps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hook %s: %w", s.name, err)
		}
		logger.Debug("Calling hook tap.", "tap", t.name)
		if err := t.fn(ctx); err != nil {
			return fmt.Errorf("hook %s, tap %s: %w", s.name, t.name, err)
		}
	}
	return nil
}
