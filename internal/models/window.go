package models

import (
	"encoding/json"
	"fmt"
)

// Window is one entry of yabai's `query --windows` response.
// Only the fields the stash logic needs are required; the rest are
// informational and left zero when yabai omits them.
type Window struct {
	ID          uint32 `json:"id"`
	HasFocus    bool   `json:"has-focus"`
	IsMinimized bool   `json:"is-minimized"`
	IsFloating  bool   `json:"is-floating"`

	App     string `json:"app,omitempty"`
	Title   string `json:"title,omitempty"`
	Space   int    `json:"space,omitempty"`
	Display int    `json:"display,omitempty"`
}

// rawWindow mirrors Window with pointer fields so missing keys can be detected
type rawWindow struct {
	ID          *uint32 `json:"id"`
	HasFocus    *bool   `json:"has-focus"`
	IsMinimized *bool   `json:"is-minimized"`
	IsFloating  *bool   `json:"is-floating"`

	App     string `json:"app"`
	Title   string `json:"title"`
	Space   int    `json:"space"`
	Display int    `json:"display"`
}

// UnmarshalJSON decodes a window and fails when a required field is absent
func (w *Window) UnmarshalJSON(data []byte) error {
	var raw rawWindow
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return fmt.Errorf("window missing field %q", "id")
	case raw.HasFocus == nil:
		return fmt.Errorf("window %d missing field %q", *raw.ID, "has-focus")
	case raw.IsMinimized == nil:
		return fmt.Errorf("window %d missing field %q", *raw.ID, "is-minimized")
	case raw.IsFloating == nil:
		return fmt.Errorf("window %d missing field %q", *raw.ID, "is-floating")
	}

	*w = Window{
		ID:          *raw.ID,
		HasFocus:    *raw.HasFocus,
		IsMinimized: *raw.IsMinimized,
		IsFloating:  *raw.IsFloating,
		App:         raw.App,
		Title:       raw.Title,
		Space:       raw.Space,
		Display:     raw.Display,
	}
	return nil
}

// ParseWindows decodes a `query --windows` JSON array
func ParseWindows(data []byte) ([]Window, error) {
	var windows []Window
	if err := json.Unmarshal(data, &windows); err != nil {
		return nil, fmt.Errorf("failed to parse windows: %w", err)
	}
	if windows == nil {
		// "null" decodes without error but is not a window list
		return nil, fmt.Errorf("failed to parse windows: expected array")
	}
	return windows, nil
}

// GetTitle returns the title, or "-" for untitled windows
func (w *Window) GetTitle() string {
	if w.Title == "" {
		return "-"
	}
	return w.Title
}

// StateString describes how the window is currently shown
func (w *Window) StateString() string {
	switch {
	case w.IsMinimized:
		return "minimized"
	case w.IsFloating:
		return "floating"
	default:
		return "tiled"
	}
}
