package state

// Queue is the ordered list of stashed window IDs. The front is the window
// most recently stashed or cycled to, the back the least recent one.
//
// Insertions through PushFront/PushBack are expected to be guarded with
// Contains by callers; a hand-edited state file may still hold duplicates
// and those are kept as loaded.
type Queue struct {
	ids []uint32
}

// NewQueue creates a queue holding ids in front-to-back order
func NewQueue(ids ...uint32) *Queue {
	q := &Queue{ids: make([]uint32, len(ids))}
	copy(q.ids, ids)
	return q
}

// Len returns the number of entries
func (q *Queue) Len() int {
	return len(q.ids)
}

// IsEmpty returns true if the queue has no entries
func (q *Queue) IsEmpty() bool {
	return len(q.ids) == 0
}

// Front returns the most recent entry
func (q *Queue) Front() (uint32, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[0], true
}

// Back returns the least recent entry
func (q *Queue) Back() (uint32, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[len(q.ids)-1], true
}

// PushFront inserts id as the most recent entry
func (q *Queue) PushFront(id uint32) {
	q.ids = append(q.ids, 0)
	copy(q.ids[1:], q.ids)
	q.ids[0] = id
}

// PushBack inserts id as the least recent entry
func (q *Queue) PushBack(id uint32) {
	q.ids = append(q.ids, id)
}

// PopFront removes and returns the most recent entry
func (q *Queue) PopFront() (uint32, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// Remove deletes the entry at index i. Out of range indexes are ignored.
func (q *Queue) Remove(i int) {
	if i < 0 || i >= len(q.ids) {
		return
	}
	q.ids = append(q.ids[:i], q.ids[i+1:]...)
}

// Index returns the position of the first entry equal to id, or -1
func (q *Queue) Index(id uint32) int {
	for i, wid := range q.ids {
		if wid == id {
			return i
		}
	}
	return -1
}

// Contains returns true if id is in the queue
func (q *Queue) Contains(id uint32) bool {
	return q.Index(id) >= 0
}

// Clear removes every entry
func (q *Queue) Clear() {
	q.ids = q.ids[:0]
}

// Retain keeps only the entries for which keep returns true, preserving
// order. It returns the removed IDs.
func (q *Queue) Retain(keep func(id uint32) bool) []uint32 {
	var removed []uint32
	kept := q.ids[:0]
	for _, id := range q.ids {
		if keep(id) {
			kept = append(kept, id)
		} else {
			removed = append(removed, id)
		}
	}
	q.ids = kept
	return removed
}

// IDs returns a copy of the entries in front-to-back order
func (q *Queue) IDs() []uint32 {
	ids := make([]uint32, len(q.ids))
	copy(ids, q.ids)
	return ids
}
