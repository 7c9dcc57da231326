package stash

import (
	"fmt"

	"github.com/yourusername/danke/internal/models"
)

// Kind identifies which window manager side effects an Action requires
type Kind int

const (
	// KindNone requires nothing
	KindNone Kind = iota
	// KindToggle flips the stash state of Window
	KindToggle
	// KindUnstash forces Window back on screen as a floating window
	KindUnstash
	// KindCycle stashes Window and unstashes Next
	KindCycle
	// KindStash minimizes Window unless it already is
	KindStash
	// KindRestore brings Window back and re-tiles it if it floats
	KindRestore
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindToggle:
		return "toggle"
	case KindUnstash:
		return "unstash"
	case KindCycle:
		return "cycle"
	case KindStash:
		return "stash"
	case KindRestore:
		return "restore"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action is the outcome of a decision. Window is set for every kind but
// KindNone; Next is only set for KindCycle.
type Action struct {
	Kind   Kind
	Window models.Window
	Next   models.Window
}

// NoAction returns an Action that does nothing
func NoAction() Action {
	return Action{Kind: KindNone}
}

// ToggleAction flips the stash state of w
func ToggleAction(w models.Window) Action {
	return Action{Kind: KindToggle, Window: w}
}

// UnstashAction restores w
func UnstashAction(w models.Window) Action {
	return Action{Kind: KindUnstash, Window: w}
}

// CycleAction stashes stash and unstashes unstash
func CycleAction(stash, unstash models.Window) Action {
	return Action{Kind: KindCycle, Window: stash, Next: unstash}
}

// StashAction minimizes w
func StashAction(w models.Window) Action {
	return Action{Kind: KindStash, Window: w}
}

// RestoreAction brings w back in its pre-stash tiling state
func RestoreAction(w models.Window) Action {
	return Action{Kind: KindRestore, Window: w}
}

// String describes the action for logs and command output
func (a Action) String() string {
	switch a.Kind {
	case KindNone:
		return "none"
	case KindCycle:
		return fmt.Sprintf("cycle(stash=%d, unstash=%d)", a.Window.ID, a.Next.ID)
	default:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Window.ID)
	}
}
