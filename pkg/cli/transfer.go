package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/lockin/pkg/export"
	"github.com/harrisonrobin/lockin/pkg/model"
	"github.com/harrisonrobin/lockin/pkg/orgmode"
	"github.com/harrisonrobin/lockin/pkg/store"
	"github.com/harrisonrobin/lockin/pkg/taskwarrior"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as json, csv, pdf or Google Calendar events (gcal)",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	cmd.Flags().StringP("format", "f", "json", "Format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks from Taskwarrior JSON or an Org-mode file",
		Long: `Import tasks from another tool. Imported tasks get new ids.

With --from taskwarrior and no file, runs "task export" directly.
Use "-" to read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}
	cmd.Flags().String("from", "taskwarrior", "Source: taskwarrior, org")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	b, err := export.NewExporter(s).Export(format)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.WriteFile(output, b, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	var incoming []model.Task
	var err error
	switch strings.ToLower(from) {
	case "taskwarrior", "tw":
		incoming, err = readTaskwarrior(cmd.InOrStdin(), path)
	case "org", "orgmode":
		incoming, err = readOrg(cmd.InOrStdin(), path)
	default:
		return fmt.Errorf("unknown import source %s", from)
	}
	if err != nil {
		return err
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := importTasks(s, incoming)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s)\n", n)
	return nil
}

func openInput(stdin io.Reader, path string) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func readTaskwarrior(stdin io.Reader, path string) ([]model.Task, error) {
	client := taskwarrior.NewClient()
	var twTasks []taskwarrior.Task
	var err error
	if path == "" {
		twTasks, err = client.GetTasks(nil)
	} else {
		r, closeFn, openErr := openInput(stdin, path)
		if openErr != nil {
			return nil, openErr
		}
		defer closeFn()
		twTasks, err = client.ParseTasks(r)
	}
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	for _, tw := range twTasks {
		if !tw.Importable() {
			log.Printf("Skipping taskwarrior task %s: deleted or undated", tw.UUID)
			continue
		}
		due, _ := tw.DueDate()
		tasks = append(tasks, model.Task{
			Title:     tw.Description,
			DueDate:   due,
			Completed: tw.Status == taskwarrior.COMPLETED,
		})
	}
	return tasks, nil
}

func readOrg(stdin io.Reader, path string) ([]model.Task, error) {
	if path == "" {
		return nil, fmt.Errorf("an org file is required")
	}
	if path == "-" {
		return orgmode.Parse(stdin)
	}
	return orgmode.ParseFile(path)
}

// importTasks adds each task through the store so it gets a fresh id.
func importTasks(s *store.Store, tasks []model.Task) (int, error) {
	n := 0
	for _, t := range tasks {
		added, err := s.Add(t.Title, t.DueDate)
		if err != nil {
			return n, err
		}
		if added.ID == "" {
			continue
		}
		if t.Completed {
			if err := s.ToggleComplete(added.ID); err != nil {
				return n, err
			}
		}
		n++
	}
	return n, nil
}
