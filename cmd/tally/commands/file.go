// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ltungv/poll/irv"
	"github.com/ltungv/poll/service"
)

// file <ballots.json>: tabulate ballots from a file without a database.
// The file holds one array of item keys per ballot, most preferred first.
func fileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <ballots.json>",
		Short: "Tabulate ballots from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var ballots [][]string
			if err := json.Unmarshal(data, &ballots); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			result := service.Explain(irv.Tabulate(ballots), nil)
			result.BallotCount = len(ballots)
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	return cmd
}
