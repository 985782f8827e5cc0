package store

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrisonrobin/lockin/pkg/clock"
	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/storage"
)

// DefaultUndoWindow is how long a deleted task can be restored.
const DefaultUndoWindow = 5 * time.Second

// Option customizes Store construction.
type Option func(*Store)

// WithClock replaces the wall clock used for the undo window.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDFunc replaces the task id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// WithUndoWindow sets how long Remove keeps a task restorable.
func WithUndoWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.undoWindow = d
		}
	}
}

// pendingUndo is the occupied state of the one-slot undo buffer.
type pendingUndo struct {
	task      model.Task
	expiresAt time.Time
	timer     clock.Timer
	gen       uint64
}

// Store owns the task list and mirrors every change to its backend.
type Store struct {
	mu         sync.Mutex
	tasks      []model.Task
	backend    storage.Backend
	clock      clock.Clock
	newID      func() string
	undoWindow time.Duration

	undo    *pendingUndo
	undoGen uint64
}

// New loads the saved list from backend. Missing or corrupt data starts an
// empty list.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		clock:      clock.Real(),
		newID:      uuid.NewString,
		undoWindow: DefaultUndoWindow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.tasks = storage.LoadOrEmpty(backend)
	return s
}

// save writes the full list. Callers hold s.mu.
func (s *Store) save() error {
	if err := s.backend.Save(s.tasks); err != nil {
		log.Printf("Warning: failed to persist tasks: %v", err)
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends a new pending task. A blank title or empty due date is a
// no-op and returns the zero Task.
func (s *Store) Add(title, dueDate string) (model.Task, error) {
	if strings.TrimSpace(title) == "" || dueDate == "" {
		return model.Task{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	task := model.Task{ID: id, Title: title, DueDate: dueDate}
	s.tasks = append(s.tasks, task)
	return task, s.save()
}

// ToggleComplete flips the completed flag of the task with id.
func (s *Store) ToggleComplete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save()
}

// Update replaces title and due date of the task with id.
func (s *Store) Update(id, title, dueDate string) error {
	if strings.TrimSpace(title) == "" || dueDate == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	if s.tasks[i].Title == title && s.tasks[i].DueDate == dueDate {
		return nil
	}
	s.tasks[i].Title = title
	s.tasks[i].DueDate = dueDate
	return s.save()
}

// Remove deletes the task with id and parks it in the undo buffer,
// replacing any earlier pending deletion.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	task := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	s.clearUndo()
	s.undoGen++
	gen := s.undoGen
	s.undo = &pendingUndo{
		task:      task,
		expiresAt: s.clock.Now().Add(s.undoWindow),
		gen:       gen,
	}
	s.undo.timer = s.clock.AfterFunc(s.undoWindow, func() { s.expire(gen) })

	return s.save()
}

// expire is the timer callback. A stale generation means the slot was
// reused and must be left alone.
func (s *Store) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undo != nil && s.undo.gen == gen {
		s.undo = nil
	}
}

// clearUndo stops the timer and empties the buffer. Callers hold s.mu.
func (s *Store) clearUndo() {
	if s.undo == nil {
		return
	}
	if s.undo.timer != nil {
		s.undo.timer.Stop()
	}
	s.undo = nil
}

// UndoRemove restores the last deleted task if its window is still open.
func (s *Store) UndoRemove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo == nil {
		return nil
	}
	if s.undo.timer != nil && !s.undo.timer.Stop() {
		// timer already fired; its callback is about to clear the slot
		s.undo = nil
		return nil
	}
	task := s.undo.task
	s.undo = nil
	s.tasks = append(s.tasks, task)
	return s.save()
}

// DismissUndo drops the pending deletion without restoring it.
func (s *Store) DismissUndo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearUndo()
}

// PendingUndo returns the task waiting in the undo buffer, if any.
func (s *Store) PendingUndo() (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undo == nil {
		return model.Task{}, false
	}
	return s.undo.task, true
}

// UndoExpiresAt reports when the pending deletion becomes permanent.
func (s *Store) UndoExpiresAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undo == nil {
		return time.Time{}, false
	}
	return s.undo.expiresAt, true
}

// ClearCompleted removes every completed task, keeping the order of the
// rest.
func (s *Store) ClearCompleted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.tasks) {
		return nil
	}
	s.tasks = kept
	return s.save()
}

// List returns the tasks in the view, earliest due date first. Tasks with
// the same due date keep insertion order.
func (s *Store) List(filter model.Filter) []model.Task {
	s.mu.Lock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out
}

// All returns a copy of every task in insertion order.
func (s *Store) All() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task{}, s.tasks...)
}

// Get looks up a task by id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Resolve finds the task whose id is id or starts with the given prefix.
// Ambiguous prefixes match nothing.
func (s *Store) Resolve(prefix string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prefix == "" {
		return model.Task{}, false
	}
	if i := s.indexOf(prefix); i >= 0 {
		return s.tasks[i], true
	}
	var found model.Task
	n := 0
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			found = t
			n++
		}
	}
	return found, n == 1
}

// Counts returns the number of pending and completed tasks.
func (s *Store) Counts() (pending, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}
