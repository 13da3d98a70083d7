package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet and conversion commands",
	}

	cmd.AddCommand(newWalletShowCmd())
	cmd.AddCommand(newWalletConvertCmd())
	cmd.AddCommand(newWalletBoostCmd())

	return cmd
}

func newWalletShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show all coin balances with USD values",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Wallet
			if err := client.Get("/api/dbs2/wallet", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newWalletConvertCmd() *cobra.Command {
	var from, to string
	var amount float64

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between coins at market rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}

			req := map[string]any{"from": from, "to": to, "amount": amount}
			var result map[string]any
			if err := client.Post("/api/dbs2/wallet/convert", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source coin (required)")
	cmd.Flags().StringVar(&to, "to", "", "Target coin (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to convert (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newWalletBoostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boost",
		Short: "Show the current bitcoin boost multiplier",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]any
			if err := client.Get("/api/dbs2/bitcoin-boost", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
