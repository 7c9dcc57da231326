package window

import (
	"context"
	"fmt"

	"github.com/yourusername/danke/internal/logging"
	"github.com/yourusername/danke/internal/models"
	"github.com/yourusername/danke/internal/stash"
)

// Commander issues the window manager commands the executor needs
type Commander interface {
	Minimize(ctx context.Context, windowID uint32) error
	Focus(ctx context.Context, windowID uint32) error
	ToggleFloat(ctx context.Context) error
}

// Executor turns decisions into window manager commands
type Executor struct {
	c Commander
}

// NewExecutor creates an executor issuing commands through c
func NewExecutor(c Commander) *Executor {
	return &Executor{c: c}
}

// Apply performs every side effect a requires. The first failing command
// aborts; commands already issued are not undone.
func (e *Executor) Apply(ctx context.Context, a stash.Action) error {
	logging.Info().Str("action", a.String()).Msg("applying action")

	switch a.Kind {
	case stash.KindNone:
		return nil
	case stash.KindToggle:
		return e.Toggle(ctx, a.Window)
	case stash.KindUnstash:
		return e.Unstash(ctx, a.Window)
	case stash.KindCycle:
		if err := e.Stash(ctx, a.Window); err != nil {
			return err
		}
		return e.Unstash(ctx, a.Next)
	case stash.KindStash:
		return e.Stash(ctx, a.Window)
	case stash.KindRestore:
		return e.Restore(ctx, a.Window)
	default:
		return fmt.Errorf("unknown action kind %v", a.Kind)
	}
}

// Toggle unstashes a minimized window and stashes any other
func (e *Executor) Toggle(ctx context.Context, w models.Window) error {
	if w.IsMinimized {
		return e.Unstash(ctx, w)
	}
	return e.Stash(ctx, w)
}

// Stash minimizes w unless it already is
func (e *Executor) Stash(ctx context.Context, w models.Window) error {
	if w.IsMinimized {
		return nil
	}
	return e.c.Minimize(ctx, w.ID)
}

// Unstash focuses w and makes it float so yabai does not tile it away again
func (e *Executor) Unstash(ctx context.Context, w models.Window) error {
	if err := e.c.Focus(ctx, w.ID); err != nil {
		return err
	}

	if !w.IsFloating {
		return e.c.ToggleFloat(ctx)
	}
	return nil
}

// Restore focuses w and re-tiles it when it floats. This is the inverse of
// Unstash and must stay a separate operation.
func (e *Executor) Restore(ctx context.Context, w models.Window) error {
	if err := e.c.Focus(ctx, w.ID); err != nil {
		return err
	}

	if w.IsFloating {
		return e.c.ToggleFloat(ctx)
	}
	return nil
}
