package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/models"
	"github.com/yourusername/danke/internal/stash"
	"github.com/yourusername/danke/internal/state"
)

// fakeYabai serves a fixed window list and records commands
type fakeYabai struct {
	windows  []models.Window
	queryErr error
	failOn   string
	calls    []string
}

func (f *fakeYabai) QueryWindows(ctx context.Context) ([]models.Window, error) {
	return f.windows, f.queryErr
}

func (f *fakeYabai) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errs.NewRemote("failed")
	}
	return nil
}

func (f *fakeYabai) Minimize(ctx context.Context, windowID uint32) error {
	return f.record(fmt.Sprintf("minimize %d", windowID))
}

func (f *fakeYabai) Focus(ctx context.Context, windowID uint32) error {
	return f.record(fmt.Sprintf("focus %d", windowID))
}

func (f *fakeYabai) ToggleFloat(ctx context.Context) error {
	return f.record("toggle float")
}

// connectTo returns a Connector handing out y
func connectTo(y Yabai) Connector {
	return func() (Yabai, error) {
		return y, nil
	}
}

func writeQueue(t *testing.T, ids ...uint32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), state.DefaultStateFile)
	if err := state.NewQueue(ids...).Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func readQueue(t *testing.T, path string) []uint32 {
	t.Helper()
	q, err := state.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return q.IDs()
}

func TestRun_Cycle(t *testing.T) {
	path := writeQueue(t, 1, 2)
	y := &fakeYabai{windows: []models.Window{{ID: 1}, {ID: 2, IsMinimized: true}}}

	action, err := Run(context.Background(), connectTo(y), path, CycleDecision)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if action.Kind != stash.KindCycle {
		t.Errorf("Kind = %v, want %v", action.Kind, stash.KindCycle)
	}
	if diff := cmp.Diff([]string{"minimize 1", "focus 2", "toggle float"}, y.calls); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{2, 1}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CycleEmptyStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), state.DefaultStateFile)
	y := &fakeYabai{windows: []models.Window{{ID: 1}}}

	action, err := Run(context.Background(), connectTo(y), path, CycleDecision)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if action.Kind != stash.KindNone || len(y.calls) != 0 {
		t.Errorf("expected no action and no commands, got %v / %v", action, y.calls)
	}
	if diff := cmp.Diff([]uint32{}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ShowEvictsDeadEntries(t *testing.T) {
	path := writeQueue(t, 9, 3)
	y := &fakeYabai{windows: []models.Window{{ID: 3, IsMinimized: true, IsFloating: true}}}

	if _, err := Run(context.Background(), connectTo(y), path, ShowDecision); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if diff := cmp.Diff([]string{"focus 3"}, y.calls); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{3}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_StashMinimizedWindow(t *testing.T) {
	path := writeQueue(t)
	y := &fakeYabai{windows: []models.Window{{ID: 4, IsMinimized: true}}}

	id := uint32(4)
	req := stash.Request{WindowID: &id, Behavior: stash.BehaviorStash}
	if _, err := RunStash(context.Background(), connectTo(y), path, req); err != nil {
		t.Fatalf("RunStash() error: %v", err)
	}
	if len(y.calls) != 0 {
		t.Errorf("already minimized window should not be minimized again, calls: %v", y.calls)
	}
	if diff := cmp.Diff([]uint32{4}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ToggleRestores(t *testing.T) {
	path := writeQueue(t, 6, 4)
	y := &fakeYabai{windows: []models.Window{{ID: 4, HasFocus: true, IsFloating: true}}}

	action, err := RunStash(context.Background(), connectTo(y), path, stash.Request{})
	if err != nil {
		t.Fatalf("RunStash() error: %v", err)
	}
	if action.Kind != stash.KindRestore {
		t.Errorf("Kind = %v, want %v", action.Kind, stash.KindRestore)
	}
	if diff := cmp.Diff([]string{"focus 4", "toggle float"}, y.calls); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{6}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CommandFailureSkipsSave(t *testing.T) {
	path := writeQueue(t, 1, 2)
	y := &fakeYabai{
		windows: []models.Window{{ID: 1}, {ID: 2}},
		failOn:  "focus 2",
	}

	_, err := Run(context.Background(), connectTo(y), path, CycleDecision)
	if errs.KindOf(err) != errs.RemoteError {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if diff := cmp.Diff([]uint32{1, 2}, readQueue(t, path)); diff != "" {
		t.Errorf("queue should not be saved after a failure (-want +got):\n%s", diff)
	}
}

func TestRun_QueryFailure(t *testing.T) {
	path := writeQueue(t, 1)
	y := &fakeYabai{queryErr: errs.New(errs.ConnectFailed, errors.New("no such file"))}

	_, err := Run(context.Background(), connectTo(y), path, CycleDecision)
	if errs.KindOf(err) != errs.ConnectFailed {
		t.Errorf("expected ConnectFailed, got %v", err)
	}
}

func TestRun_StateReadFailure(t *testing.T) {
	y := &fakeYabai{}

	_, err := Run(context.Background(), connectTo(y), t.TempDir(), CycleDecision)
	if errs.KindOf(err) != errs.StateRead {
		t.Errorf("expected StateRead, got %v", err)
	}
}

func TestRun_StateWriteFailure(t *testing.T) {
	// Loading succeeds because the file is absent, saving fails because
	// its directory is missing too
	path := filepath.Join(t.TempDir(), "missing", state.DefaultStateFile)
	y := &fakeYabai{windows: []models.Window{{ID: 1, HasFocus: true}}}

	_, err := RunStash(context.Background(), connectTo(y), path, stash.Request{})
	if errs.KindOf(err) != errs.StateWrite {
		t.Errorf("expected StateWrite, got %v", err)
	}
	if diff := cmp.Diff([]string{"minimize 1"}, y.calls); diff != "" {
		t.Errorf("command should still have been sent (-want +got):\n%s", diff)
	}
}

func TestRun_StateReadBeforeConnect(t *testing.T) {
	connected := false
	connect := func() (Yabai, error) {
		connected = true
		return nil, errs.New(errs.MissingIdentity, nil)
	}

	_, err := Run(context.Background(), connect, t.TempDir(), CycleDecision)
	if errs.KindOf(err) != errs.StateRead {
		t.Errorf("expected StateRead, got %v", err)
	}
	if connected {
		t.Error("connector should not be called when the queue cannot be read")
	}
}

func TestRun_ConnectFailure(t *testing.T) {
	path := writeQueue(t, 1)
	connect := func() (Yabai, error) {
		return nil, errs.New(errs.MissingIdentity, nil)
	}

	_, err := Run(context.Background(), connect, path, CycleDecision)
	if errs.KindOf(err) != errs.MissingIdentity {
		t.Errorf("expected MissingIdentity, got %v", err)
	}
}

func TestRunStash_NoMatchLeavesStateFile(t *testing.T) {
	y := &fakeYabai{windows: []models.Window{{ID: 1}}}
	id := uint32(5)
	req := stash.Request{WindowID: &id, Behavior: stash.BehaviorStash}

	t.Run("absent file is not created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), state.DefaultStateFile)

		action, err := RunStash(context.Background(), connectTo(y), path, req)
		if err != nil {
			t.Fatalf("RunStash() error: %v", err)
		}
		if action.Kind != stash.KindNone {
			t.Errorf("Kind = %v, want %v", action.Kind, stash.KindNone)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("state file should not exist, stat err: %v", err)
		}
	})

	t.Run("corrupt file is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), state.DefaultStateFile)
		if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		if _, err := RunStash(context.Background(), connectTo(y), path, req); err != nil {
			t.Fatalf("RunStash() error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(data) != "not json" {
			t.Errorf("state file = %q, want it unchanged", data)
		}
	})
}

func TestPrune(t *testing.T) {
	path := writeQueue(t, 5, 1, 6)
	y := &fakeYabai{windows: []models.Window{{ID: 1}}}

	dropped, err := Prune(context.Background(), connectTo(y), path)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if diff := cmp.Diff([]uint32{5, 6}, dropped); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{1}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	path := writeQueue(t, 1, 2, 3)

	n, err := Clear(path)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if diff := cmp.Diff([]uint32{}, readQueue(t, path)); diff != "" {
		t.Errorf("saved queue mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect(t *testing.T) {
	path := writeQueue(t, 2)
	y := &fakeYabai{windows: []models.Window{{ID: 2}}}

	q, snap, err := Inspect(context.Background(), connectTo(y), path)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if q.Len() != 1 || !snap.Has(2) {
		t.Errorf("unexpected inspect result: %v %v", q.IDs(), snap.WindowIDs)
	}
}
