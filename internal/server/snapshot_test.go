package server

import (
	"context"
	"errors"
	"testing"

	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/models"
)

type stubQuerier struct {
	windows []models.Window
	err     error
	calls   int
}

func (s *stubQuerier) QueryWindows(ctx context.Context) ([]models.Window, error) {
	s.calls++
	return s.windows, s.err
}

func TestFetch(t *testing.T) {
	q := &stubQuerier{windows: []models.Window{
		{ID: 1},
		{ID: 2, HasFocus: true},
		{ID: 3, IsMinimized: true},
	}}

	snap, err := Fetch(context.Background(), q)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if q.calls != 1 {
		t.Errorf("QueryWindows called %d times, want 1", q.calls)
	}
	if len(snap.Windows) != 3 {
		t.Errorf("expected 3 windows, got %d", len(snap.Windows))
	}
	if snap.FocusedWindowID != 2 {
		t.Errorf("FocusedWindowID = %d, want 2", snap.FocusedWindowID)
	}
}

func TestFetch_Error(t *testing.T) {
	q := &stubQuerier{err: errs.New(errs.DecodeError, errors.New("bad json"))}

	_, err := Fetch(context.Background(), q)
	if errs.KindOf(err) != errs.DecodeError {
		t.Errorf("expected DecodeError to survive wrapping, got %v", err)
	}
}

func TestFind(t *testing.T) {
	snap := NewSnapshot([]models.Window{
		{ID: 10, IsFloating: true},
		{ID: 20, IsMinimized: true},
	})

	w, ok := snap.Find(20)
	if !ok {
		t.Fatal("expected to find window 20")
	}
	if !w.IsMinimized {
		t.Error("found window should carry its flags")
	}

	if _, ok := snap.Find(30); ok {
		t.Error("window 30 should not be found")
	}
	if !snap.Has(10) || snap.Has(30) {
		t.Error("Has() reports wrong membership")
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	snap := NewSnapshot([]models.Window{
		{ID: 5, IsFloating: true},
		{ID: 5},
	})

	w, _ := snap.Find(5)
	if !w.IsFloating {
		t.Error("Find() should return the first window reported with the id")
	}
}

func TestFocused(t *testing.T) {
	snap := NewSnapshot([]models.Window{{ID: 1}, {ID: 2}})
	if _, ok := snap.Focused(); ok {
		t.Error("no window has focus")
	}

	snap = NewSnapshot([]models.Window{{ID: 1}, {ID: 2, HasFocus: true}})
	w, ok := snap.Focused()
	if !ok || w.ID != 2 {
		t.Errorf("Focused() = (%d, %v), want (2, true)", w.ID, ok)
	}
}
