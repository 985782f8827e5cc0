package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/store"
	"github.com/harrisonrobin/lockin/pkg/util"
)

// now is swapped in tests.
var now = time.Now

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Bool("tomorrow", false, "Due tomorrow")
	cmd.Flags().Bool("sunday", false, "Due on the coming Sunday")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pending (or completed) tasks by due date",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}
	cmd.Flags().String("show", "pending", "View to list: pending or completed")
	cmd.Flags().Bool("completed", false, "Shorthand for --show completed")
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE:  runDone,
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title or due date",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE:    runRemove,
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed tasks",
		Args:  cobra.NoArgs,
		RunE:  runClear,
	}
}

func dueFromFlags(cmd *cobra.Command) (string, error) {
	due, _ := cmd.Flags().GetString("due")
	tomorrow, _ := cmd.Flags().GetBool("tomorrow")
	sunday, _ := cmd.Flags().GetBool("sunday")

	switch {
	case tomorrow:
		return util.Tomorrow(now()), nil
	case sunday:
		return util.NextSunday(now()), nil
	case due != "":
		if _, err := util.ParseDate(due); err != nil {
			return "", err
		}
		return due, nil
	}
	return "", fmt.Errorf("a due date is required (--due, --tomorrow or --sunday)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	due, err := dueFromFlags(cmd)
	if err != nil {
		return err
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := s.Add(title, due)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (due %s)\n", shortID(task.ID), task.Title, util.FormatDate(task.DueDate))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	show, _ := cmd.Flags().GetString("show")
	completed, _ := cmd.Flags().GetBool("completed")
	asJSON, _ := cmd.Flags().GetBool("json")

	filter, err := model.ParseFilter(show)
	if err != nil {
		return err
	}
	if completed {
		filter = model.Completed
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	tasks := s.List(filter)
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	printTasks(out, tasks, filter)

	pending, done := s.Counts()
	if total := pending + done; total > 0 {
		fmt.Fprintf(out, "\n%d of %d tasks completed\n", done, total)
	}
	return nil
}

func printTasks(out io.Writer, tasks []model.Task, filter model.Filter) {
	if len(tasks) == 0 {
		if filter == model.Pending {
			fmt.Fprintln(out, "No pending tasks. Add one with `lockin add`!")
		} else {
			fmt.Fprintln(out, "No completed tasks yet.")
		}
		return
	}
	today := now()
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		due := util.FormatDate(t.DueDate)
		if !t.Completed && util.IsOverdue(t.DueDate, today) {
			due = "Overdue: " + due
		}
		fmt.Fprintf(out, "%s %s  %s  (%s)\n", check, shortID(t.ID), t.Title, due)
	}
}

// shortID trims uuids for display; Resolve accepts the prefix back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func resolve(s *store.Store, arg string) (model.Task, error) {
	task, ok := s.Resolve(arg)
	if !ok {
		return model.Task{}, fmt.Errorf("no single task matches %q", arg)
	}
	return task, nil
}

func runDone(cmd *cobra.Command, args []string) error {
	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := resolve(s, args[0])
	if err != nil {
		return err
	}
	if err := s.ToggleComplete(task.ID); err != nil {
		return err
	}
	state := "completed"
	if task.Completed {
		state = "pending"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n", task.Title, state)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	due, _ := cmd.Flags().GetString("due")
	if title == "" && due == "" {
		return fmt.Errorf("nothing to change: pass --title and/or --due")
	}
	if due != "" {
		if _, err := util.ParseDate(due); err != nil {
			return err
		}
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := resolve(s, args[0])
	if err != nil {
		return err
	}
	if title == "" {
		title = task.Title
	}
	if due == "" {
		due = task.DueDate
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title must not be blank")
	}
	if err := s.Update(task.ID, title, due); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s (due %s)\n", shortID(task.ID), title, util.FormatDate(due))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := resolve(s, args[0])
	if err != nil {
		return err
	}
	if err := s.Remove(task.ID); err != nil {
		return err
	}
	// nothing can undo once the process exits
	s.DismissUndo()
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", task.Title)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	_, before := s.Counts()
	if err := s.ClearCompleted(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed task(s)\n", before)
	return nil
}
