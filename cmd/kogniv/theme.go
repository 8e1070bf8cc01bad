// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kogniv/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "List color presets or set a workspace's theme",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available color presets",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-9s  %s\n", "ID", "Label", "Primary", "Accent")
		for _, p := range theme.Presets() {
			fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-9s  %s\n", p.ID, p.Label, p.Primary, p.Accent)
		}
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <preset>",
	Short: "Set the active color preset for a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !theme.Valid(args[0]) {
			return fmt.Errorf("unknown preset %q: run 'kogniv theme list'", args[0])
		}
		wsID, _ := cmd.Flags().GetString("workspace")

		svc, store, err := openWorkspace(loadConfig(), wsID)
		if err != nil {
			return err
		}
		defer store.Close()

		return svc.SetTheme(args[0])
	},
}

var themeDarkCmd = &cobra.Command{
	Use:   "dark <on|off>",
	Short: "Toggle the dark mode preference (applies across workspaces)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}

		svc, store, err := openService(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		return svc.SetDarkMode(enabled)
	},
}

func init() {
	themeSetCmd.Flags().StringP("workspace", "w", "", "workspace id")

	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeDarkCmd)

	rootCmd.AddCommand(themeCmd)
}
