package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/util"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("15")).Padding(0, 2)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 2)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	presetOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33")).Padding(0, 1)
	presetOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")).Padding(0, 1)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	toastStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View renders the whole screen from the store's current state.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lock-In"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Stay focused. Get it done."))
	b.WriteString("\n\n")

	b.WriteString(a.renderForm())
	b.WriteString("\n\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.renderTasks())

	pending, completed := a.store.Counts()
	if total := pending + completed; total > 0 {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(fmt.Sprintf("%d of %d tasks completed", completed, total)))
		b.WriteString("\n")
	}

	if _, ok := a.store.PendingUndo(); ok {
		msg := "Task deleted"
		if until, ok := a.store.UndoExpiresAt(); ok {
			left := (until.Sub(a.now()) + time.Second - 1) / time.Second
			msg = fmt.Sprintf("Task deleted (%ds)", max(left, 0))
		}
		b.WriteString("\n")
		b.WriteString(toastStyle.Render(msg + "   [u] Undo   [ctrl+d] Dismiss"))
		b.WriteString("\n")
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + a.err.Error()))
	} else if a.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(a.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(a.helpLine()))
	return b.String()
}

func (a *App) renderForm() string {
	var b strings.Builder
	b.WriteString(a.titleInput.View())
	if a.focus == focusForm {
		b.WriteString("\n")
		b.WriteString("Due date  ")
		b.WriteString(a.dueInput.View())
		b.WriteString("\n")

		due := strings.TrimSpace(a.dueInput.Value())
		now := a.now()
		b.WriteString(preset("ctrl+t Tomorrow", due == util.Tomorrow(now)))
		b.WriteString(" ")
		b.WriteString(preset("ctrl+s Sunday", due == util.NextSunday(now)))
	}
	return boxStyle.Render(b.String())
}

func preset(label string, on bool) string {
	if on {
		return presetOnStyle.Render(label)
	}
	return presetOffStyle.Render(label)
}

func (a *App) renderTabs() string {
	pending, completed := a.store.Counts()
	label := func(name string, n int) string {
		if n > 0 {
			return fmt.Sprintf("%s %d", name, n)
		}
		return name
	}
	p, c := tabStyle, tabStyle
	if a.tab == model.Pending {
		p = activeTabStyle
	} else {
		c = activeTabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		p.Render(label("Pending", pending)),
		c.Render(label("Completed", completed)),
	)
}

func (a *App) renderTasks() string {
	tasks := a.store.List(a.tab)
	if len(tasks) == 0 {
		if a.tab == model.Pending {
			return subtleStyle.Render("No pending tasks. Add one above!") + "\n"
		}
		return subtleStyle.Render("No completed tasks yet.") + "\n"
	}

	now := a.now()
	var b strings.Builder
	for i, t := range tasks {
		pointer := "  "
		if a.focus == focusList && i == a.cursor {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		if t.ID == a.editingID {
			b.WriteString(fmt.Sprintf("%s%s %s\n", pointer, check, a.editTitle.View()))
			b.WriteString(fmt.Sprintf("      %s\n", a.editDue.View()))
			b.WriteString(subtleStyle.Render("      Press Enter to save, Escape to cancel"))
			b.WriteString("\n")
			continue
		}

		title := t.Title
		due := util.FormatDate(t.DueDate)
		if t.Completed {
			title = doneStyle.Render(title)
			due = subtleStyle.Render(due)
		} else if util.IsOverdue(t.DueDate, now) {
			due = overdueStyle.Render("Overdue: " + due)
		} else {
			due = subtleStyle.Render(due)
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", pointer, check, title, due))
	}

	if a.tab == model.Completed {
		b.WriteString(subtleStyle.Render("  [C] Clear all completed"))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) helpLine() string {
	switch {
	case a.editingID != "":
		return "enter save · esc cancel · tab switch field"
	case a.focus == focusForm:
		return "enter add · tab next field · esc to list · ctrl+c quit"
	default:
		return "a add · space toggle · e edit · d delete · u undo · tab view · q quit"
	}
}
