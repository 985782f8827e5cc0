package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/lockin/pkg/config"
	"github.com/harrisonrobin/lockin/pkg/store"
	"github.com/harrisonrobin/lockin/pkg/tui"
)

// NewRootCmd builds the lockin command tree. Without a subcommand it opens
// the interactive screen.
func NewRootCmd(version string) *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:   "lockin",
		Short: "Lock-In - stay focused, get it done",
		Long: `Lock-In is a personal task tracker.

Run it without arguments for the interactive screen, or use the
subcommands to script it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				return os.Setenv(config.EnvDir, dir)
			}
			return nil
		},
		RunE: runTUI,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "Config and data directory (default ~/.config/lockin)")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newClearCmd(),
		newExportCmd(),
		newImportCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// openStore loads config and the configured backend. The returned close
// function must be called when done.
func openStore() (*store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	undo, err := cfg.Undo()
	if err != nil {
		return nil, nil, err
	}
	backend, closeBackend, err := cfg.OpenBackend()
	if err != nil {
		return nil, nil, err
	}
	s := store.New(backend, store.WithUndoWindow(undo))
	return s, func() {
		if err := closeBackend(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	logFile, err := tea.LogToFile(filepath.Join(dir, "lockin.log"), "lockin")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	log.Printf("Session opened · %d tasks loaded", len(s.All()))
	p := tea.NewProgram(tui.NewApp(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
