package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player state commands",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerCryptoCmd())
	cmd.AddCommand(newPlayerScoreCmd())
	cmd.AddCommand(newPlayerInventoryCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current player's state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get("/api/dbs2/player", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerCryptoCmd() *cobra.Command {
	var set int64
	var add int64
	var setChanged, addChanged bool

	cmd := &cobra.Command{
		Use:   "crypto",
		Short: "Show or change the satoshi balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			setChanged = cmd.Flags().Changed("set")
			addChanged = cmd.Flags().Changed("add")

			var result map[string]any

			switch {
			case setChanged && addChanged:
				return fmt.Errorf("--set and --add are mutually exclusive")
			case setChanged:
				if err := client.Put("/api/dbs2/crypto", map[string]int64{"crypto": set}, &result); err != nil {
					return err
				}
			case addChanged:
				if err := client.Put("/api/dbs2/crypto", map[string]int64{"add": add}, &result); err != nil {
					return err
				}
			default:
				if err := client.Get("/api/dbs2/crypto", &result); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&set, "set", 0, "Set the balance to this value")
	cmd.Flags().Int64Var(&add, "add", 0, "Add this amount to the balance")

	return cmd
}

func newPlayerScoreCmd() *cobra.Command {
	var game string
	var score float64

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Submit a minigame score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if game == "" {
				return fmt.Errorf("--game is required")
			}

			req := map[string]any{"game": game, "score": score}
			var result map[string]any
			if err := client.Put("/api/dbs2/scores", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Minigame name (required)")
	cmd.Flags().Float64Var(&score, "score", 0, "Score to submit")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func newPlayerInventoryCmd() *cobra.Command {
	var addName, foundAt string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show or add to the player's inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]any

			if addName != "" {
				req := map[string]string{"name": addName, "found_at": foundAt}
				if err := client.Post("/api/dbs2/inventory", req, &result); err != nil {
					return err
				}
			} else {
				if err := client.Get("/api/dbs2/inventory", &result); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&addName, "add", "", "Add an item with this name")
	cmd.Flags().StringVar(&foundAt, "found-at", "", "Where the item was found")

	return cmd
}
