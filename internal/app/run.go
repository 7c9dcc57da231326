package app

import (
	"context"

	"github.com/yourusername/danke/internal/logging"
	"github.com/yourusername/danke/internal/reconcile"
	"github.com/yourusername/danke/internal/server"
	"github.com/yourusername/danke/internal/stash"
	"github.com/yourusername/danke/internal/state"
	"github.com/yourusername/danke/internal/window"
)

// Yabai is everything an invocation needs from the window manager
type Yabai interface {
	server.WindowQuerier
	window.Commander
}

// Decision picks the action for one invocation, mutating the queue
type Decision func(q *state.Queue, snap *server.Snapshot) stash.Action

// Connector opens the window manager connection. It is only called once the
// queue has loaded, so state file errors win over connection errors.
type Connector func() (Yabai, error)

// Run performs one load → query → decide → act → save sequence.
//
// Any failure aborts before the save, so queue changes made by the
// decision are lost while commands already sent to yabai stay applied.
func Run(ctx context.Context, connect Connector, statePath string, decide Decision) (stash.Action, error) {
	return run(ctx, connect, statePath, decide, true)
}

// RunStash applies req to a single window. When no window matches, the
// queue file is left untouched.
func RunStash(ctx context.Context, connect Connector, statePath string, req stash.Request) (stash.Action, error) {
	return run(ctx, connect, statePath, StashDecision(req), false)
}

func run(ctx context.Context, connect Connector, statePath string, decide Decision, saveIdle bool) (stash.Action, error) {
	q, err := state.Load(statePath)
	if err != nil {
		return stash.NoAction(), err
	}

	y, err := connect()
	if err != nil {
		return stash.NoAction(), err
	}

	snap, err := server.Fetch(ctx, y)
	if err != nil {
		return stash.NoAction(), err
	}

	before := q.Len()
	action := decide(q, snap)
	logging.Debug().
		Int("queue_before", before).
		Int("queue_after", q.Len()).
		Str("action", action.String()).
		Msg("decided")

	if action.Kind == stash.KindNone && !saveIdle {
		return action, nil
	}

	if err := window.NewExecutor(y).Apply(ctx, action); err != nil {
		return action, err
	}

	if err := q.Save(statePath); err != nil {
		return action, err
	}

	return action, nil
}

// CycleDecision wraps stash.Cycle
func CycleDecision(q *state.Queue, snap *server.Snapshot) stash.Action {
	return stash.Cycle(q, snap)
}

// ShowDecision wraps stash.Peek
func ShowDecision(q *state.Queue, snap *server.Snapshot) stash.Action {
	return stash.Peek(q, snap)
}

// StashDecision returns a Decision applying req
func StashDecision(req stash.Request) Decision {
	return func(q *state.Queue, snap *server.Snapshot) stash.Action {
		return stash.Direct(q, snap, req)
	}
}

// Inspect loads the queue and the live windows without changing anything
func Inspect(ctx context.Context, connect Connector, statePath string) (*state.Queue, *server.Snapshot, error) {
	q, err := state.Load(statePath)
	if err != nil {
		return nil, nil, err
	}

	y, err := connect()
	if err != nil {
		return nil, nil, err
	}

	snap, err := server.Fetch(ctx, y)
	if err != nil {
		return nil, nil, err
	}

	return q, snap, nil
}

// Prune drops queue entries without a live window and saves the result
func Prune(ctx context.Context, connect Connector, statePath string) ([]uint32, error) {
	q, snap, err := Inspect(ctx, connect, statePath)
	if err != nil {
		return nil, err
	}

	dropped := reconcile.Prune(snap, q)
	if len(dropped) > 0 {
		logging.Info().Interface("dropped", dropped).Msg("pruned queue")
	}

	if err := q.Save(statePath); err != nil {
		return nil, err
	}
	return dropped, nil
}

// Clear empties the queue without talking to yabai
func Clear(statePath string) (int, error) {
	q, err := state.Load(statePath)
	if err != nil {
		return 0, err
	}

	n := q.Len()
	q.Clear()
	if err := q.Save(statePath); err != nil {
		return 0, err
	}
	return n, nil
}
