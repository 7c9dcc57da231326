package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/logging"
)

// DefaultStateFile is the state file name under $HOME
const DefaultStateFile = ".danke.json"

// PathForHome returns the state file path for a home directory. An empty
// home falls back to the current directory.
func PathForHome(home string) string {
	if home == "" {
		home = "."
	}
	return filepath.Join(home, DefaultStateFile)
}

// Load reads the queue stored at path. A missing file yields an empty queue.
// A file that is present but does not hold a JSON array of window IDs also
// yields an empty queue; only a failed read is an error.
func Load(path string) (*Queue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewQueue(), nil
		}
		return nil, errs.New(errs.StateRead, err)
	}

	var ids []uint32
	if err := json.Unmarshal(data, &ids); err != nil {
		logging.Warn().Str("path", path).Err(err).Msg("state file unreadable, starting empty")
		return NewQueue(), nil
	}

	return &Queue{ids: ids}, nil
}

// Save overwrites the file at path with the queue as a JSON array.
// Concurrent invocations are not serialized; the last save wins.
func (q *Queue) Save(path string) error {
	data, err := json.Marshal(q.IDs())
	if err != nil {
		return errs.New(errs.StateWrite, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.New(errs.StateWrite, err)
	}

	return nil
}
