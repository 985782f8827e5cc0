package storage

import (
	"sync"

	"github.com/harrisonrobin/lockin/pkg/model"
)

// Memory is an in-process Backend used by tests and dry runs.
type Memory struct {
	mu      sync.Mutex
	tasks   []model.Task
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemory returns a Memory backend pre-populated with tasks.
func NewMemory(tasks ...model.Task) *Memory {
	return &Memory{tasks: append([]model.Task(nil), tasks...)}
}

func (m *Memory) Load() ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return []model.Task{}, m.LoadErr
	}
	return append([]model.Task{}, m.tasks...), nil
}

func (m *Memory) Save(tasks []model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.tasks = append([]model.Task{}, tasks...)
	m.saves++
	return nil
}

// Saves reports how many successful writes happened.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Snapshot returns the last saved list.
func (m *Memory) Snapshot() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Task{}, m.tasks...)
}
