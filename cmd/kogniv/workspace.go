// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kogniv/internal/util"
	"github.com/pdiddy/kogniv/internal/workspace"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces (list, create, rename, delete, star)",
	Long: `Workspace manages the workspace index. Each workspace has its own
cards, categories, and color theme, stored independently so one
workspace never affects another.`,
}

// --- list subcommand ---

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces for the dashboard",
	RunE:  runWorkspaceList,
}

func runWorkspaceList(cmd *cobra.Command, args []string) error {
	sortMode, _ := cmd.Flags().GetString("sort")
	switch sortMode {
	case workspace.SortRecent, workspace.SortStarred, workspace.SortName:
	default:
		return fmt.Errorf("unsupported sort %q: use recent, starred, or name", sortMode)
	}

	svc, store, err := openService(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	list := svc.List(sortMode)
	if len(list) == 0 {
		fmt.Println("No workspaces yet. Create one with: kogniv workspace create")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-6s  %-5s  %s\n",
		"ID", "Name", "Cards", "Star", "Modified")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))
	for _, ws := range list {
		star := ""
		if ws.Starred {
			star = "*"
		}
		name := ws.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-6d  %-5s  %s\n",
			ws.ID, name, ws.CardCount, star, util.RelativeTime(ws.LastModified, time.Now()))
	}
	return nil
}

// --- create subcommand ---

var workspaceCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a blank workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWorkspaceCreate,
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) error {
	svc, store, err := openService(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := svc.CreateBlank()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := svc.Rename(args[0]); err != nil {
			return err
		}
	}

	fmt.Printf("Created workspace %s\n", id)
	return nil
}

// --- rename subcommand ---

var workspaceRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, store, err := openWorkspace(loadConfig(), args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		return svc.Rename(args[1])
	},
}

// --- delete subcommand ---

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workspace and its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, store, err := openService(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := svc.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted workspace %s\n", args[0])
		return nil
	},
}

// --- star subcommand ---

var workspaceStarCmd = &cobra.Command{
	Use:   "star <id>",
	Short: "Pin a workspace to the top of the dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unstar, _ := cmd.Flags().GetBool("unstar")

		svc, store, err := openService(loadConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		return svc.Star(args[0], !unstar)
	},
}

func init() {
	workspaceListCmd.Flags().String("sort", workspace.SortRecent, "sort order: recent, starred, or name")
	workspaceStarCmd.Flags().Bool("unstar", false, "remove the pin instead")

	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceRenameCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
	workspaceCmd.AddCommand(workspaceStarCmd)

	rootCmd.AddCommand(workspaceCmd)
}
