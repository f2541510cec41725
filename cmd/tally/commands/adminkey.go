// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ltungv/poll/auth"
)

func adminKeyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin-key",
		Short: "Print the admin key for item administration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			salt := opts.adminSalt
			if salt == "" {
				salt = os.Getenv("ADMIN_KEY_SALT")
			}
			if salt == "" {
				return errors.New("ADMIN_KEY_SALT required")
			}
			fmt.Fprintln(cmd.OutOrStdout(), auth.GenerateAdminKey(auth.AdminScope, salt))
			return nil
		},
	}
	return cmd
}
