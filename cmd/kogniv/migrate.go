// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kogniv/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data from the legacy key scheme into the current one",
	Long: `Migrate copies workspace data stored under the legacy key scheme
(workspace_<id>_categories and friends) into the current keys. Existing
current-scheme data is never overwritten. Running twice is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(loadConfig().Storage, log)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.MigrateOldData(); err != nil {
			return err
		}
		fmt.Println("Migration complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
