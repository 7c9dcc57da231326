package stash

import (
	"fmt"

	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/models"
	"github.com/yourusername/danke/internal/state"
)

// Directory resolves window IDs against the live window set
type Directory interface {
	Find(id uint32) (models.Window, bool)
	Focused() (models.Window, bool)
}

// Cycle rotates from the front of the queue to the next stashed window.
//
// Entries whose window is gone are dropped on the way, except when a single
// entry is left: a lone dead entry is kept and nothing happens. A minimized
// front window is unstashed instead of cycled away from.
func Cycle(q *state.Queue, dir Directory) Action {
	for !q.IsEmpty() {
		if q.Len() == 1 {
			id, _ := q.Front()
			w, ok := dir.Find(id)
			if !ok {
				return NoAction()
			}
			return ToggleAction(w)
		}

		curr, _ := q.PopFront()
		next, _ := q.Front()

		currWin, currOK := dir.Find(curr)
		nextWin, nextOK := dir.Find(next)
		if next == curr {
			// a duplicate entry is never its own successor
			nextOK = false
		}

		if !currOK {
			continue
		}

		if !nextOK {
			q.PopFront()
			q.PushFront(curr)
			continue
		}

		if currWin.IsMinimized {
			q.PushFront(curr)
			return UnstashAction(currWin)
		}

		q.PushBack(curr)
		return CycleAction(currWin, nextWin)
	}

	return NoAction()
}

// Peek toggles the most recent entry that still has a live window,
// evicting dead entries in front of it.
func Peek(q *state.Queue, dir Directory) Action {
	for {
		id, ok := q.Front()
		if !ok {
			return NoAction()
		}

		if w, found := dir.Find(id); found {
			return ToggleAction(w)
		}

		q.PopFront()
	}
}

// Behavior selects what Direct does with its target window
type Behavior int

const (
	// BehaviorToggle stashes an unstashed window and restores a stashed one
	BehaviorToggle Behavior = iota
	// BehaviorStash stashes the window and remembers it
	BehaviorStash
	// BehaviorUnstash restores a remembered window and forgets it
	BehaviorUnstash
)

// String returns the CLI name of the behavior
func (b Behavior) String() string {
	switch b {
	case BehaviorToggle:
		return "toggle"
	case BehaviorStash:
		return "stash"
	case BehaviorUnstash:
		return "unstash"
	default:
		return fmt.Sprintf("behavior(%d)", int(b))
	}
}

// ParseBehavior parses a CLI behavior name
func ParseBehavior(s string) (Behavior, error) {
	switch s {
	case "toggle":
		return BehaviorToggle, nil
	case "stash":
		return BehaviorStash, nil
	case "unstash":
		return BehaviorUnstash, nil
	default:
		return 0, errs.Usagef("Unexpected behavior `%s`", s)
	}
}

// Request describes a direct stash command
type Request struct {
	WindowID *uint32 // Window to act on (nil = use focused)
	Behavior Behavior
}

// Direct applies req to a single window and updates its queue membership
func Direct(q *state.Queue, dir Directory, req Request) Action {
	var (
		w  models.Window
		ok bool
	)
	if req.WindowID != nil {
		w, ok = dir.Find(*req.WindowID)
	} else {
		w, ok = dir.Focused()
	}
	if !ok {
		return NoAction()
	}

	index := q.Index(w.ID)

	switch req.Behavior {
	case BehaviorToggle:
		if index >= 0 {
			q.Remove(index)
			return RestoreAction(w)
		}
		return stashWindow(q, w)
	case BehaviorStash:
		return stashWindow(q, w)
	case BehaviorUnstash:
		if index >= 0 {
			q.Remove(index)
			return RestoreAction(w)
		}
		return NoAction()
	default:
		return NoAction()
	}
}

func stashWindow(q *state.Queue, w models.Window) Action {
	if !q.Contains(w.ID) {
		q.PushFront(w.ID)
	}
	return StashAction(w)
}
