package model

import (
	"fmt"
	"strings"
)

// Task is a single to-do item as persisted and shown to the user.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DueDate   string `json:"dueDate"` // YYYY-MM-DD, no timezone
	Completed bool   `json:"completed"`
}

// Filter selects one of the two mutually exclusive task views.
type Filter int

const (
	Pending Filter = iota
	Completed
)

func (f Filter) String() string {
	if f == Completed {
		return "completed"
	}
	return "pending"
}

// Match reports whether the task belongs to the view.
func (f Filter) Match(t Task) bool {
	if f == Completed {
		return t.Completed
	}
	return !t.Completed
}

// ParseFilter accepts "pending" or "completed" (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "":
		return Pending, nil
	case "completed":
		return Completed, nil
	}
	return Pending, fmt.Errorf("unknown filter %q", s)
}
