package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/lockin/pkg/util"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.UTC().Format(taskwarriorTimeLayout) + `"`), nil
}

// Task holds the subset of a Taskwarrior export record lockin understands.
type Task struct {
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Due         *CustomTime `json:"due,omitempty"`
	Scheduled   *CustomTime `json:"scheduled,omitempty"`
	Status      string      `json:"status"`
	Project     string      `json:"project,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// DueDate picks due, falling back to scheduled, as a local calendar day.
func (t Task) DueDate() (string, bool) {
	for _, ct := range []*CustomTime{t.Due, t.Scheduled} {
		if ct != nil && !ct.IsZero() {
			return util.DateString(ct.Local()), true
		}
	}
	return "", false
}

// Importable reports whether the task maps onto a lockin task.
func (t Task) Importable() bool {
	if t.Status == DELETED || strings.TrimSpace(t.Description) == "" {
		return false
	}
	_, ok := t.DueDate()
	return ok
}
