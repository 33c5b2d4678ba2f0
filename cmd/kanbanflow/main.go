package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kanbanflow",
	Short: "Local-first kanban board",
	Long: `KanbanFlow keeps a team's kanban board in a local database.

Tasks, members and board settings are stored as records; attachments,
voice notes and avatar images are stored as blobs in the database or in
redis, depending on blob_backend.

Settings come from an optional config file and KANBANFLOW_* environment
variables, for example KANBANFLOW_DB_DRIVER=postgres. Without a command,
kanbanflow runs serve.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (yaml, json or toml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
