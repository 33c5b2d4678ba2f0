package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukikurage/kanbanflow/internal/models"
)

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Delete blobs no task or member refers to",
	Long: `Sweep the attachments, voice_notes and avatars blob collections and delete
every blob that no stored task or member references. Run it while no server
is writing to the same store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.board.CollectOrphanedBlobs(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range models.AllBlobCollections {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d removed\n", c, removed[c])
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all tasks and members and reseed the default board",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.board.ResetBoard(cmd.Context()); err != nil {
			return err
		}
		snap := a.board.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Board reset: %d members, %d tasks\n", len(snap.Members()), len(snap.Tasks()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gcCmd, resetCmd)
}
