// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kogniv/internal/state"
	"github.com/pdiddy/kogniv/internal/theme"
	"github.com/pdiddy/kogniv/internal/workspace"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage cards in a workspace (list, show, add, edit, remove)",
	Long: `Cards operates on the cards of one workspace. List applies the same
category and search filters the editor uses: category first, then a
case-insensitive substring match over title, hint, and content.`,
}

// --- list subcommand ---

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards, optionally filtered by category and search query",
	RunE:  runCardsList,
}

func runCardsList(cmd *cobra.Command, args []string) error {
	wsID, _ := cmd.Flags().GetString("workspace")
	category, _ := cmd.Flags().GetString("category")
	query, _ := cmd.Flags().GetString("query")

	svc, store, err := openWorkspace(loadConfig(), wsID)
	if err != nil {
		return err
	}
	defer store.Close()

	st := svc.State()
	patch := state.Patch{SearchQuery: state.Str(query)}
	if category != "" {
		patch.CurrentCategory = state.Str(category)
	}
	st.Set(patch)

	cards := st.FilteredCards()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	if len(cards) == 0 {
		fmt.Println("No cards match.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-40s  %-20s  %s\n", "ID", "Title", "Category", "Hint")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))
	for _, c := range cards {
		title := c.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		hint := c.Hint
		if len(hint) > 40 {
			hint = hint[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-40s  %-20s  %s\n", c.ID, title, c.Category, hint)
	}
	fmt.Fprintf(os.Stdout, "\n%d cards\n", len(cards))
	return nil
}

// --- show subcommand ---

var cardsShowCmd = &cobra.Command{
	Use:   "show <card-id>",
	Short: "Print one card in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wsID, _ := cmd.Flags().GetString("workspace")

		svc, store, err := openWorkspace(loadConfig(), wsID)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, c := range svc.State().Get().Cards {
			if c.ID != args[0] {
				continue
			}
			fmt.Printf("Title:    %s\n", c.Title)
			fmt.Printf("Category: %s (%s)\n", c.Category, theme.TagColor(c.Category))
			fmt.Printf("Created:  %s\n", c.Created.Format("Jan 2, 2006 15:04"))
			fmt.Printf("\n%s\n", c.Content)
			return nil
		}
		return fmt.Errorf("card %s not found", args[0])
	},
}

// --- add subcommand ---

var cardsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a card to a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardsAdd,
}

func runCardsAdd(cmd *cobra.Command, args []string) error {
	wsID, _ := cmd.Flags().GetString("workspace")
	category, _ := cmd.Flags().GetString("category")
	content, _ := cmd.Flags().GetString("content")
	contentFile, _ := cmd.Flags().GetString("content-file")

	if contentFile != "" {
		data, err := os.ReadFile(contentFile)
		if err != nil {
			return err
		}
		content = string(data)
	}

	svc, store, err := openWorkspace(loadConfig(), wsID)
	if err != nil {
		return err
	}
	defer store.Close()

	card, err := svc.AddCard(args[0], content, category)
	if err != nil {
		return err
	}
	fmt.Printf("Added card %s\n", card.ID)
	return nil
}

// --- edit subcommand ---

var cardsEditCmd = &cobra.Command{
	Use:   "edit <card-id>",
	Short: "Update a card's title, content, or category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardsEdit,
}

func runCardsEdit(cmd *cobra.Command, args []string) error {
	wsID, _ := cmd.Flags().GetString("workspace")

	var patch workspace.CardPatch
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("content") {
		v, _ := cmd.Flags().GetString("content")
		patch.Content = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		patch.Category = &v
	}

	svc, store, err := openWorkspace(loadConfig(), wsID)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := svc.UpdateCard(args[0], patch); err != nil {
		return err
	}
	return nil
}

// --- remove subcommand ---

var cardsRemoveCmd = &cobra.Command{
	Use:   "remove <card-id>",
	Short: "Delete a card from a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wsID, _ := cmd.Flags().GetString("workspace")

		svc, store, err := openWorkspace(loadConfig(), wsID)
		if err != nil {
			return err
		}
		defer store.Close()

		return svc.DeleteCard(args[0])
	},
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	cardsCmd.PersistentFlags().StringP("workspace", "w", "", "workspace id")

	cardsListCmd.Flags().String("category", "", "filter by category (default: all)")
	cardsListCmd.Flags().String("query", "", "case-insensitive search over title, hint, and content")
	cardsListCmd.Flags().Bool("json", false, "output cards as JSON")

	cardsAddCmd.Flags().String("category", "General", "card category")
	cardsAddCmd.Flags().String("content", "", "card body")
	cardsAddCmd.Flags().String("content-file", "", "read the card body from a file")

	cardsEditCmd.Flags().String("title", "", "new title")
	cardsEditCmd.Flags().String("content", "", "new body")
	cardsEditCmd.Flags().String("category", "", "new category")

	cardsCmd.AddCommand(cardsListCmd)
	cardsCmd.AddCommand(cardsShowCmd)
	cardsCmd.AddCommand(cardsAddCmd)
	cardsCmd.AddCommand(cardsEditCmd)
	cardsCmd.AddCommand(cardsRemoveCmd)

	rootCmd.AddCommand(cardsCmd)
}
