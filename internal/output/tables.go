package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/danke/internal/models"
	"github.com/yourusername/danke/internal/server"
	"github.com/yourusername/danke/internal/state"
)

// PrintWindowsTable prints live windows, marking the ones in the stash queue
// with their queue position (1 = front)
func PrintWindowsTable(w io.Writer, windows []models.Window, q *state.Queue) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "App", "Title", "Space", "State", "Focus", "Stash")

	sorted := make([]models.Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	for _, win := range sorted {
		focus := ""
		if win.HasFocus {
			focus = "*"
		}

		stashed := "-"
		if i := q.Index(win.ID); i >= 0 {
			stashed = fmt.Sprintf("#%d", i+1)
		}

		if err := table.Append(
			fmt.Sprintf("%d", win.ID),
			truncate(win.App, 20),
			truncate(win.GetTitle(), 30),
			formatSpace(win.Space),
			win.StateString(),
			focus,
			stashed,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// PrintQueueTable prints the stash queue front to back with the state of
// each entry's window, or "gone" when no live window matches
func PrintQueueTable(w io.Writer, q *state.Queue, snap *server.Snapshot) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "App", "Title", "State")

	for i, id := range q.IDs() {
		app, title, status := "-", "-", "gone"
		if win, ok := snap.Find(id); ok {
			app = truncate(win.App, 20)
			title = truncate(win.GetTitle(), 30)
			status = win.StateString()
		}

		if err := table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", id),
			app,
			title,
			status,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// Helper functions

func truncate(s string, maxLen int) string {
	if s == "" {
		return "-"
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func formatSpace(space int) string {
	if space == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", space)
}
