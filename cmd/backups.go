package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup generations of the entry document",
	RunE:  runBackups,
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	backups, err := store.ListBackups()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}

	if len(backups) == 0 {
		cmd.Println("No backups yet.")
		return nil
	}

	for _, b := range backups {
		cmd.Printf("#%-2d  %s  %6d bytes  %s\n",
			b.Generation, b.ModTime.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}
