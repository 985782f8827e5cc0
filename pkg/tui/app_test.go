package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harrisonrobin/lockin/pkg/clock"
	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/storage"
	"github.com/harrisonrobin/lockin/pkg/store"
)

var testNow = time.Date(2026, 1, 28, 9, 0, 0, 0, time.Local)

func newTestApp(t *testing.T, seed ...model.Task) (*App, *store.Store, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(testNow)
	n := 0
	s := store.New(storage.NewMemory(seed...),
		store.WithClock(clk),
		store.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id%d", n)
		}),
	)
	app := NewApp(s, WithNow(func() time.Time { return testNow }))
	return app, s, clk
}

func send(a *App, msgs ...tea.Msg) {
	for _, msg := range msgs {
		a.Update(msg)
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestAddThroughForm(t *testing.T) {
	app, s, _ := newTestApp(t)

	send(app, runes("Buy milk"), tab, tea.KeyMsg{Type: tea.KeyCtrlT}, enter)

	tasks := s.List(model.Pending)
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || tasks[0].DueDate != "2026-01-29" {
		t.Errorf("Unexpected task %+v", tasks[0])
	}
	if app.titleInput.Value() != "" || app.dueInput.Value() != "" {
		t.Error("Expected form to reset after submit")
	}
}

func TestFormIgnoresIncompleteInput(t *testing.T) {
	app, s, _ := newTestApp(t)

	send(app, runes("No date"), enter)
	send(app, tab, runes("2026-13-40"), enter)
	if n := len(s.All()); n != 0 {
		t.Errorf("Expected no tasks, got %d", n)
	}
	if !strings.Contains(app.View(), "No pending tasks. Add one above!") {
		t.Error("Expected empty state message")
	}
}

func TestSundayPreset(t *testing.T) {
	app, _, _ := newTestApp(t)
	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := app.dueInput.Value(); got != "2026-02-01" {
		t.Errorf("Expected 2026-02-01, got %s", got)
	}
}

func TestToggleAndTabs(t *testing.T) {
	app, s, _ := newTestApp(t,
		model.Task{ID: "a", Title: "Buy milk", DueDate: "2026-01-30"},
		model.Task{ID: "b", Title: "Pay rent", DueDate: "2026-01-29"},
	)
	send(app, esc)

	// cursor starts on the earliest due date
	send(app, runes("x"))
	if task, _ := s.Get("b"); !task.Completed {
		t.Fatal("Expected Pay rent to be completed")
	}

	send(app, tab)
	if app.tab != model.Completed {
		t.Fatal("Expected completed tab")
	}
	view := app.View()
	if !strings.Contains(view, "Pay rent") || strings.Contains(view, "Buy milk") {
		t.Errorf("Expected only completed tasks in view, got:\n%s", view)
	}
	if !strings.Contains(view, "1 of 2 tasks completed") {
		t.Errorf("Expected footer stats, got:\n%s", view)
	}

	send(app, runes("C"))
	if n := len(s.All()); n != 1 {
		t.Errorf("Expected clear completed to leave 1 task, got %d", n)
	}
}

func TestInlineEdit(t *testing.T) {
	app, s, _ := newTestApp(t, model.Task{ID: "a", Title: "Buy milk", DueDate: "2026-01-30"})
	send(app, esc, runes("e"))
	if app.editingID != "a" {
		t.Fatal("Expected edit mode")
	}

	send(app, runes(" today"), enter)
	if app.editingID != "" {
		t.Error("Expected edit mode to end after save")
	}
	if task, _ := s.Get("a"); task.Title != "Buy milk today" {
		t.Errorf("Expected updated title, got %q", task.Title)
	}

	send(app, runes("e"), runes("ignored"), esc)
	if app.editingID != "" {
		t.Error("Expected escape to cancel edit")
	}
	if task, _ := s.Get("a"); task.Title != "Buy milk today" {
		t.Errorf("Expected cancelled edit to keep title, got %q", task.Title)
	}
}

func TestEditRejectsBlankTitle(t *testing.T) {
	app, s, _ := newTestApp(t, model.Task{ID: "a", Title: "Hi", DueDate: "2026-01-30"})
	send(app, esc, runes("e"))
	app.editTitle.SetValue("   ")
	send(app, enter)
	if app.editingID != "a" {
		t.Error("Expected to stay in edit mode on blank title")
	}
	if task, _ := s.Get("a"); task.Title != "Hi" {
		t.Errorf("Expected title unchanged, got %q", task.Title)
	}
}

func TestDeleteUndoToast(t *testing.T) {
	app, s, clk := newTestApp(t, model.Task{ID: "a", Title: "Buy milk", DueDate: "2026-01-30"})
	send(app, esc)

	_, cmd := app.Update(runes("d"))
	if cmd == nil {
		t.Error("Expected a refresh tick to be scheduled")
	}
	if _, ok := s.Get("a"); ok {
		t.Fatal("Expected task removed")
	}
	if !strings.Contains(app.View(), "Task deleted (5s)") {
		t.Errorf("Expected undo toast with countdown, got:\n%s", app.View())
	}

	send(app, runes("u"))
	if _, ok := s.Get("a"); !ok {
		t.Fatal("Expected undo to restore the task")
	}

	send(app, runes("d"))
	clk.Advance(store.DefaultUndoWindow)
	_, cmd = app.Update(undoTickMsg{})
	if cmd != nil {
		t.Error("Expected ticking to stop after expiry")
	}
	if strings.Contains(app.View(), "Task deleted") {
		t.Error("Expected toast to disappear after expiry")
	}
	send(app, runes("u"))
	if _, ok := s.Get("a"); ok {
		t.Error("Expected undo after expiry to do nothing")
	}
}

func TestOverdueMarker(t *testing.T) {
	app, _, _ := newTestApp(t,
		model.Task{ID: "a", Title: "Late", DueDate: "2026-01-20"},
		model.Task{ID: "b", Title: "Done late", DueDate: "2026-01-20", Completed: true},
	)
	view := app.View()
	if !strings.Contains(view, "Overdue: Jan 20, 2026") {
		t.Errorf("Expected overdue marker, got:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	app, _, _ := newTestApp(t)
	send(app, esc)
	_, cmd := app.Update(runes("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
