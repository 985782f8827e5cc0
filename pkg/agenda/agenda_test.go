package agenda

import (
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/lockin/pkg/model"
)

func TestConvertTask(t *testing.T) {
	now := time.Date(2026, 1, 29, 12, 0, 0, 0, time.Local)
	task := model.Task{ID: "f45a05b3", Title: "Pay rent", DueDate: "2026-01-31"}

	event, err := ConvertTask(task, now)
	if err != nil {
		t.Fatalf("ConvertTask failed: %v", err)
	}
	if event.Summary != "Pay rent" {
		t.Errorf("Expected summary 'Pay rent', got '%s'", event.Summary)
	}
	if event.Start.Date != "2026-01-31" || event.End.Date != "2026-02-01" {
		t.Errorf("Expected all-day event 2026-01-31..2026-02-01, got %s..%s", event.Start.Date, event.End.Date)
	}
	if id, ok := TaskID(event); !ok || id != task.ID {
		t.Errorf("Expected %s %s, got %v", PropertyKey, task.ID, id)
	}
	if !strings.Contains(event.Description, "ID: f45a05b3") {
		t.Errorf("Expected description to contain the id, got: %s", event.Description)
	}
}

func TestConvertTaskPrefixes(t *testing.T) {
	now := time.Date(2026, 1, 29, 12, 0, 0, 0, time.Local)

	overdue, _ := ConvertTask(model.Task{ID: "a", Title: "Late", DueDate: "2026-01-01"}, now)
	if overdue.Summary != "! Late" {
		t.Errorf("Expected '! Late', got '%s'", overdue.Summary)
	}
	done, _ := ConvertTask(model.Task{ID: "b", Title: "Done", DueDate: "2026-01-01", Completed: true}, now)
	if done.Summary != "✓ Done" {
		t.Errorf("Expected '✓ Done', got '%s'", done.Summary)
	}
}

func TestEventsSkipsBadDates(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Title: "Good", DueDate: "2026-01-01"},
		{ID: "b", Title: "Bad", DueDate: "someday"},
	}
	events, errs := Events(tasks, time.Now())
	if len(events) != 1 || len(errs) != 1 {
		t.Fatalf("Expected 1 event and 1 error, got %d and %d", len(events), len(errs))
	}
	b, err := Marshal(events)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"date": "2026-01-01"`) {
		t.Errorf("Expected start date in JSON, got %s", b)
	}
}
