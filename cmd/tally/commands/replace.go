// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ltungv/poll/service"
)

// replace <ballot-uuid> [item-id...]: overwrite a ballot's ranking.
// With no item IDs the ballot's ranking is cleared.
func replaceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <ballot-uuid> [item-id...]",
		Short: "Replace a ballot's ranking",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			ballot, err := service.NewBallotService(st, slog.Default()).Find(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ballot %s: %w", args[0], err)
			}

			itemIDs := args[1:]
			if err := service.NewRankingService(st, slog.Default()).ReplaceRankings(cmd.Context(), ballot.ID, itemIDs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ranked %d items for %s\n", len(itemIDs), ballot.UUID)
			return nil
		},
	}
	return cmd
}
