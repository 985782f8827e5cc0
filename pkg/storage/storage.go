package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/harrisonrobin/lockin/pkg/model"
)

// Key is the fixed name the task list is stored under.
const Key = "lockin-tasks"

// ErrCorrupt is returned alongside an empty list when the stored value
// cannot be decoded.
var ErrCorrupt = errors.New("stored tasks are corrupt")

// Backend loads and saves the whole task list in one piece.
type Backend interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}

func decode(b []byte) ([]model.Task, error) {
	if len(b) == 0 {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return []model.Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

// LoadOrEmpty loads from the backend and treats any failure as "no saved
// tasks", logging the reason.
func LoadOrEmpty(b Backend) []model.Task {
	tasks, err := b.Load()
	if err != nil {
		log.Printf("Warning: could not load saved tasks, starting empty: %v", err)
		return []model.Task{}
	}
	return tasks
}
