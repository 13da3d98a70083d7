package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Legacy item store commands",
	}

	cmd.AddCommand(newItemsListCmd())
	cmd.AddCommand(newItemsGetCmd())
	cmd.AddCommand(newItemsRandomCmd())
	cmd.AddCommand(newItemsRotateCmd())

	return cmd
}

func newItemsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all items",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ItemList
			if err := client.Get("/api/dbs2/items", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newItemsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Item
			if err := client.Get("/api/dbs2/items/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newItemsRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random item",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Item
			if err := client.Get("/api/dbs2/items/random", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newItemsRotateCmd() *cobra.Command {
	var oldWord, newWord string

	cmd := &cobra.Command{
		Use:   "rotate-password",
		Short: "Rotate a password in the legacy store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if oldWord == "" || newWord == "" {
				return fmt.Errorf("--old and --new are required")
			}

			req := map[string]string{"old": oldWord, "new": newWord}
			var result map[string]any
			if err := client.Post("/api/dbs2/items/passwords/rotate", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&oldWord, "old", "", "Password being replaced (required)")
	cmd.Flags().StringVar(&newWord, "new", "", "Replacement password (required)")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}
