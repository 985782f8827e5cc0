package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/storage"
	"github.com/harrisonrobin/lockin/pkg/store"
)

func newExporter(t *testing.T) *Exporter {
	t.Helper()
	s := store.New(storage.NewMemory(
		model.Task{ID: "a1", Title: "Buy milk", DueDate: "2026-01-30"},
		model.Task{ID: "b2", Title: "Pay rent, twice", DueDate: "2026-01-29", Completed: true},
	))
	e := NewExporter(s)
	e.now = func() time.Time { return time.Date(2026, 1, 31, 9, 0, 0, 0, time.Local) }
	return e
}

func TestExportJSON(t *testing.T) {
	b, err := newExporter(t).Export("json")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "a1" {
		t.Errorf("Expected tasks in stored order, got %+v", tasks)
	}
}

func TestExportCSV(t *testing.T) {
	b, err := newExporter(t).Export("CSV")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "id,title,dueDate,completed" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if lines[2] != `b2,"Pay rent, twice",2026-01-29,true` {
		t.Errorf("Unexpected row %q", lines[2])
	}
}

func TestExportPDF(t *testing.T) {
	b, err := newExporter(t).Export("pdf")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("Expected PDF header, got %q", b[:8])
	}
}

func TestExportGcal(t *testing.T) {
	b, err := newExporter(t).Export("gcal")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(b), `"summary": "! Buy milk"`) {
		t.Errorf("Expected overdue summary, got %s", b)
	}
	if !strings.Contains(string(b), `"lockin_id": "b2"`) {
		t.Errorf("Expected extended property, got %s", b)
	}
}

func TestExportUnknown(t *testing.T) {
	if _, err := newExporter(t).Export("xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
