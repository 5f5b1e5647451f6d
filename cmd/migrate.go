package main

import (
	"fmt"

	"todo_list/internal/repository/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Open the configured store, create missing tables and indexes for users and todos, and exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		gdb, err := openStore(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close(gdb) //nolint: errcheck

		fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
