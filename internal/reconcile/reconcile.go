package reconcile

import (
	"github.com/yourusername/danke/internal/server"
	"github.com/yourusername/danke/internal/state"
)

// Prune drops every queue entry that no longer matches a live window and
// collapses repeated entries to their first occurrence. It returns the
// dropped IDs in queue order.
//
// The decision functions only evict entries they walk over; this is the
// explicit, whole-queue cleanup behind `danke queue prune`.
func Prune(snap *server.Snapshot, q *state.Queue) []uint32 {
	seen := make(map[uint32]bool, q.Len())
	return q.Retain(func(id uint32) bool {
		if seen[id] || !snap.Has(id) {
			return false
		}
		seen[id] = true
		return true
	})
}
