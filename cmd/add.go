package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/registry"
)

var (
	addName        string
	addDescription string
)

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add an entry without opening the TUI",
	Long:  `Adds an application entry for the given file path. The entry name defaults to the file name without its extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "entry name (default: file name)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "entry description")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	e, err := entry.FromFile(args[0])
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}
	if addName != "" || addDescription != "" {
		fields := entry.Fields{
			Name:        e.Name(),
			Path:        e.Path(),
			Description: addDescription,
			Kind:        e.Kind(),
		}
		if addName != "" {
			fields.Name = addName
		}
		if e, err = e.With(fields); err != nil {
			return fmt.Errorf("creating entry: %w", err)
		}
	}

	result, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}

	reg := registry.New(store, result.Entries)
	added, warning, err := reg.Add(e)
	if err != nil {
		return fmt.Errorf("adding entry: %w", err)
	}

	if warning == registry.WarnTargetMissing {
		cmd.Printf("Added %q (warning: target does not exist)\n", added.Name())
	} else {
		cmd.Printf("Added %q -> %s\n", added.Name(), added.Path())
	}
	return nil
}
