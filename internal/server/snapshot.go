package server

import (
	"context"
	"fmt"

	"github.com/yourusername/danke/internal/models"
)

// WindowQuerier lists the windows yabai currently manages
type WindowQuerier interface {
	QueryWindows(ctx context.Context) ([]models.Window, error)
}

// Snapshot is a parsed, read-only view of yabai's windows at a point in time.
// It is built once per invocation and never cached across runs.
type Snapshot struct {
	Windows         []models.Window // In the order yabai reported them
	WindowIDs       map[uint32]int  // Window ID -> index of first match in Windows
	FocusedWindowID uint32          // 0 when no window reports focus
}

// Fetch queries windows ONCE and builds a Snapshot
func Fetch(ctx context.Context, q WindowQuerier) (*Snapshot, error) {
	windows, err := q.QueryWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("query windows: %w", err)
	}
	return NewSnapshot(windows), nil
}

// NewSnapshot builds a snapshot from an already decoded window list
func NewSnapshot(windows []models.Window) *Snapshot {
	snap := &Snapshot{
		Windows:   windows,
		WindowIDs: make(map[uint32]int, len(windows)),
	}

	for i, w := range windows {
		if _, seen := snap.WindowIDs[w.ID]; !seen {
			snap.WindowIDs[w.ID] = i
		}
		if w.HasFocus && snap.FocusedWindowID == 0 {
			snap.FocusedWindowID = w.ID
		}
	}

	return snap
}

// Find returns the window with the given ID
func (s *Snapshot) Find(id uint32) (models.Window, bool) {
	i, ok := s.WindowIDs[id]
	if !ok {
		return models.Window{}, false
	}
	return s.Windows[i], true
}

// Focused returns the first window that reports focus
func (s *Snapshot) Focused() (models.Window, bool) {
	for _, w := range s.Windows {
		if w.HasFocus {
			return w, true
		}
	}
	return models.Window{}, false
}

// Has returns true if a live window has the given ID
func (s *Snapshot) Has(id uint32) bool {
	_, ok := s.WindowIDs[id]
	return ok
}
