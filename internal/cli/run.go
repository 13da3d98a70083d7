package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ash trail run commands",
	}

	cmd.AddCommand(newRunListCmd())
	cmd.AddCommand(newRunGetCmd())
	cmd.AddCommand(newRunSubmitCmd())

	return cmd
}

func newRunListCmd() *cobra.Command {
	var book string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs for a book",
		RunE: func(cmd *cobra.Command, args []string) error {
			if book == "" {
				return fmt.Errorf("--book is required")
			}

			path := fmt.Sprintf("/api/dbs2/ashtrail/runs?book=%s&limit=%d", url.QueryEscape(book), limit)
			var result RunList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&book, "book", "", "Book id (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs")
	_ = cmd.MarkFlagRequired("book")

	return cmd
}

func newRunGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <run-id>",
		Short: "Show a run with its full trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RunDetail
			if err := client.Get("/api/dbs2/ashtrail/runs/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRunSubmitCmd() *cobra.Command {
	var book, guestName string
	var score float64

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a run (trace omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if book == "" {
				return fmt.Errorf("--book is required")
			}

			req := map[string]any{"book_id": book, "score": score}
			if guestName != "" {
				req["guest_name"] = guestName
			}

			var result RunDetail
			if err := client.Post("/api/dbs2/ashtrail/runs", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&book, "book", "", "Book id (required)")
	cmd.Flags().Float64Var(&score, "score", 0, "Run score")
	cmd.Flags().StringVar(&guestName, "guest-name", "", "Guest display name when no user key is set")
	_ = cmd.MarkFlagRequired("book")

	return cmd
}
