package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/lockin/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	setBackend := &cobra.Command{
		Use:       "set-backend <file|sqlite>",
		Short:     "Choose where tasks are stored",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{config.BackendFile, config.BackendSQLite},
		RunE:      runConfigSetBackend,
	}
	setUndo := &cobra.Command{
		Use:   "set-undo <duration>",
		Short: "Set how long a deleted task can be restored (e.g. 5s)",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigSetUndo,
	}
	cmd.AddCommand(show, setBackend, setUndo)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	data, err := cfg.StoragePath()
	if err != nil {
		return err
	}
	undo, _ := cfg.Undo()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n", path)
	fmt.Fprintf(out, "Backend:     %s\n", cfg.Backend)
	fmt.Fprintf(out, "Data:        %s\n", data)
	fmt.Fprintf(out, "Undo window: %s\n", undo)
	return nil
}

func runConfigSetBackend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Backend = args[0]
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backend set to: %s\n", cfg.Backend)
	return nil
}

func runConfigSetUndo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.UndoWindow = args[0]
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Undo window set to: %s\n", cfg.UndoWindow)
	return nil
}
