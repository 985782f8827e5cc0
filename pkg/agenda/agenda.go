package agenda

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/util"
)

// PropertyKey is the private extended property holding the task id.
const PropertyKey = "lockin_id"

// ConvertTask builds an all-day Google Calendar event for the task's due
// date. The event is ready for Events.insert; nothing is sent anywhere.
func ConvertTask(task model.Task, now time.Time) (*calendar.Event, error) {
	if task.ID == "" {
		return nil, fmt.Errorf("could not convert task without id")
	}
	end, err := util.NextDay(task.DueDate)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", task.ID, err)
	}

	prefix := ""
	status := "pending"
	if task.Completed {
		prefix = "✓"
		status = "completed"
	} else if util.IsOverdue(task.DueDate, now) {
		prefix = "!"
		status = "overdue"
	}

	summary := task.Title
	if prefix != "" {
		summary = fmt.Sprintf("%s %s", prefix, task.Title)
	}

	var desc strings.Builder
	desc.WriteString(fmt.Sprintf("Status: %s\n", status))
	desc.WriteString(fmt.Sprintf("Due: %s\n", util.FormatDate(task.DueDate)))
	desc.WriteString(fmt.Sprintf("ID: %s\n", task.ID))

	return &calendar.Event{
		Summary:      summary,
		Description:  desc.String(),
		Start:        &calendar.EventDateTime{Date: task.DueDate},
		End:          &calendar.EventDateTime{Date: end},
		Transparency: "transparent",
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{PropertyKey: task.ID},
		},
	}, nil
}

// Events converts every task with a usable due date. Tasks that cannot be
// converted are skipped and reported in the returned error list.
func Events(tasks []model.Task, now time.Time) ([]*calendar.Event, []error) {
	events := make([]*calendar.Event, 0, len(tasks))
	var errs []error
	for _, t := range tasks {
		ev, err := ConvertTask(t, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, ev)
	}
	return events, errs
}

// Marshal renders the events as an indented JSON array.
func Marshal(events []*calendar.Event) ([]byte, error) {
	return json.MarshalIndent(events, "", "  ")
}

// TaskID returns the task id stored on an event, if any.
func TaskID(ev *calendar.Event) (string, bool) {
	if ev == nil || ev.ExtendedProperties == nil {
		return "", false
	}
	id, ok := ev.ExtendedProperties.Private[PropertyKey]
	return id, ok && id != ""
}
