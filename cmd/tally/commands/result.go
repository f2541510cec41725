// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/service"
)

// result: tabulate the stored ballots and print every round.
func resultCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Print the current instant-runoff result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			registered, err := service.NewBallotService(st, slog.Default()).Count(cmd.Context())
			if err != nil {
				return err
			}
			result, err := service.NewRankingService(st, slog.Default()).Result(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered: %s\n", humanize.Comma(int64(registered)))
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	return cmd
}

func printResult(w io.Writer, result models.PollResult) {
	fmt.Fprintf(w, "Ballots: %s\n", humanize.Comma(int64(result.BallotCount)))

	for _, round := range result.Rounds {
		fmt.Fprintf(w, "%s round\n", humanize.Ordinal(round.Round))
		for _, tally := range round.Tallies {
			fmt.Fprintf(w, "  %-24s %s\n", tally.ItemID, humanize.Comma(int64(tally.Votes)))
		}
		if len(round.Eliminated) > 0 {
			fmt.Fprintf(w, "  eliminated: %s\n", strings.Join(round.Eliminated, ", "))
		}
	}

	switch result.Outcome {
	case models.OutcomeWinner:
		fmt.Fprintf(w, "Winner: %s (%s)\n", result.Winner.Title, result.Winner.ID)
	case models.OutcomeTied:
		titles := make([]string, len(result.Tied))
		for i, item := range result.Tied {
			titles[i] = item.Title
		}
		fmt.Fprintf(w, "Tied: %s\n", strings.Join(titles, ", "))
	default:
		fmt.Fprintln(w, "No winner")
	}
}
