package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var game, book string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if book != "" {
				path := fmt.Sprintf("/api/dbs2/ashtrail/leaderboard?book=%s&limit=%d", url.QueryEscape(book), limit)
				var result BookLeaderboard
				if err := client.Get(path, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			path := fmt.Sprintf("/api/dbs2/leaderboard?limit=%d", limit)
			if game != "" {
				path += "&game=" + url.QueryEscape(game)
				var result map[string]any
				if err := client.Get(path, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Rank by a minigame's score instead of satoshis")
	cmd.Flags().StringVar(&book, "book", "", "Show the ash trail leaderboard for a book")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries")

	return cmd
}
