// Package tui is the interactive Lock-In screen. It follows the Bubble Tea
// loop: key input becomes a message, Update calls into the task store, View
// re-reads the store and renders it.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/store"
	"github.com/harrisonrobin/lockin/pkg/util"
)

const undoRefreshInterval = 250 * time.Millisecond

type focusArea int

const (
	focusList focusArea = iota
	focusForm
)

// undoTickMsg redraws the toast until the pending deletion expires.
type undoTickMsg struct{}

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithNow replaces the time source used for quick dates and overdue marks.
func WithNow(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// App is the Bubble Tea model. The store is the only source of task state;
// App holds view state only.
type App struct {
	store *store.Store
	now   func() time.Time

	tab    model.Filter
	cursor int
	focus  focusArea

	// add form
	titleInput textinput.Model
	dueInput   textinput.Model

	// inline edit
	editingID string
	editTitle textinput.Model
	editDue   textinput.Model

	statusMsg string
	err       error
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

// NewApp builds the screen around an already loaded store.
func NewApp(s *store.Store, opts ...AppOption) *App {
	a := &App{
		store:      s,
		now:        time.Now,
		tab:        model.Pending,
		focus:      focusForm,
		titleInput: newInput("What needs to be done?", 200),
		dueInput:   newInput("YYYY-MM-DD", 10),
		editTitle:  newInput("Title", 200),
		editDue:    newInput("YYYY-MM-DD", 10),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.titleInput.Focus()
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-12)
		a.titleInput.Width = w
		a.editTitle.Width = w
		return a, nil

	case undoTickMsg:
		if _, ok := a.store.PendingUndo(); ok {
			return a, scheduleUndoTick()
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch {
		case a.editingID != "":
			return a.updateEdit(msg)
		case a.focus == focusForm:
			return a.updateForm(msg)
		default:
			return a.updateList(msg)
		}
	}

	return a, a.forwardToInputs(msg)
}

func (a *App) forwardToInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if a.editingID != "" {
		a.editTitle, cmd = a.editTitle.Update(msg)
		cmds = append(cmds, cmd)
		a.editDue, cmd = a.editDue.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		a.titleInput, cmd = a.titleInput.Update(msg)
		cmds = append(cmds, cmd)
		a.dueInput, cmd = a.dueInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.blurForm()
		a.focus = focusList
		return a, nil
	case "tab", "shift+tab":
		if a.titleInput.Focused() {
			a.titleInput.Blur()
			return a, a.dueInput.Focus()
		}
		a.dueInput.Blur()
		return a, a.titleInput.Focus()
	case "ctrl+t":
		a.dueInput.SetValue(util.Tomorrow(a.now()))
		return a, nil
	case "ctrl+s":
		a.dueInput.SetValue(util.NextSunday(a.now()))
		return a, nil
	case "enter":
		a.submitForm()
		return a, nil
	}
	return a, a.forwardToInputs(msg)
}

func (a *App) submitForm() {
	title := a.titleInput.Value()
	due := strings.TrimSpace(a.dueInput.Value())
	if strings.TrimSpace(title) == "" || due == "" {
		return
	}
	if _, err := util.ParseDate(due); err != nil {
		a.statusMsg = "Due date must be YYYY-MM-DD"
		return
	}
	task, err := a.store.Add(title, due)
	a.err = err
	if task.ID == "" {
		return
	}
	a.titleInput.Reset()
	a.dueInput.Reset()
	a.dueInput.Blur()
	a.titleInput.Focus()
	a.tab = model.Pending
	a.statusMsg = "Added: " + task.Title
}

func (a *App) blurForm() {
	a.titleInput.Blur()
	a.dueInput.Blur()
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := a.store.List(a.tab)
	a.clampCursor(len(tasks))

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "a", "n":
		a.focus = focusForm
		return a, a.titleInput.Focus()
	case "tab", "left", "right", "h", "l":
		if a.tab == model.Pending {
			a.tab = model.Completed
		} else {
			a.tab = model.Pending
		}
		a.cursor = 0
		return a, nil
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor < len(tasks)-1 {
			a.cursor++
		}
		return a, nil
	case " ", "space", "x":
		if task, ok := a.selected(tasks); ok {
			a.err = a.store.ToggleComplete(task.ID)
			a.clampCursor(len(a.store.List(a.tab)))
		}
		return a, nil
	case "e", "enter":
		if task, ok := a.selected(tasks); ok {
			return a, a.startEdit(task)
		}
		return a, nil
	case "d", "delete", "backspace":
		if task, ok := a.selected(tasks); ok {
			a.err = a.store.Remove(task.ID)
			a.clampCursor(len(a.store.List(a.tab)))
			return a, scheduleUndoTick()
		}
		return a, nil
	case "u", "ctrl+z":
		if _, ok := a.store.PendingUndo(); ok {
			a.err = a.store.UndoRemove()
			a.statusMsg = "Task restored"
		}
		return a, nil
	case "ctrl+d":
		a.store.DismissUndo()
		return a, nil
	case "C":
		if a.tab == model.Completed {
			a.err = a.store.ClearCompleted()
			a.cursor = 0
		}
		return a, nil
	}
	return a, nil
}

func (a *App) selected(tasks []model.Task) (model.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[a.cursor], true
}

func (a *App) clampCursor(n int) {
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) startEdit(task model.Task) tea.Cmd {
	a.editingID = task.ID
	a.editTitle.SetValue(task.Title)
	a.editTitle.CursorEnd()
	a.editDue.SetValue(task.DueDate)
	a.editDue.CursorEnd()
	a.editDue.Blur()
	return a.editTitle.Focus()
}

func (a *App) cancelEdit() {
	a.editingID = ""
	a.editTitle.Blur()
	a.editDue.Blur()
}

func (a *App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.cancelEdit()
		return a, nil
	case "tab", "shift+tab":
		if a.editTitle.Focused() {
			a.editTitle.Blur()
			return a, a.editDue.Focus()
		}
		a.editDue.Blur()
		return a, a.editTitle.Focus()
	case "enter":
		title := a.editTitle.Value()
		due := strings.TrimSpace(a.editDue.Value())
		if strings.TrimSpace(title) == "" || due == "" {
			return a, nil
		}
		if _, err := util.ParseDate(due); err != nil {
			a.statusMsg = "Due date must be YYYY-MM-DD"
			return a, nil
		}
		a.err = a.store.Update(a.editingID, title, due)
		a.cancelEdit()
		return a, nil
	}
	return a, a.forwardToInputs(msg)
}

func scheduleUndoTick() tea.Cmd {
	return tea.Tick(undoRefreshInterval, func(time.Time) tea.Msg { return undoTickMsg{} })
}
