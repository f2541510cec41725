// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ltungv/poll/backend"
	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/store"
)

// options are the persistent flags shared by every subcommand
type options struct {
	envFile      string
	databaseType string
	databaseURL  string
	adminSalt    string
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tally",
		Short:         "Operator CLI for the ranked-choice poll",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cliparse.LoadEnv(opts.envFile)
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVarP(&opts.databaseType, "type", "t", "", "database type (sqlite, postgres, gorm, memory)")
	root.PersistentFlags().StringVarP(&opts.databaseURL, "database-url", "d", "", "database URL")
	root.PersistentFlags().StringVar(&opts.adminSalt, "admin-salt", "", "admin key salt")

	root.AddCommand(resultCmd(opts), fileCmd(), replaceCmd(opts), adminKeyCmd(opts))
	return root
}

// config resolves flags and environment through the server's parser
func (o *options) config() (cliparse.Config, error) {
	var args []string
	if o.databaseType != "" {
		args = append(args, "-t", o.databaseType)
	}
	if o.databaseURL != "" {
		args = append(args, "-d", o.databaseURL)
	}
	if o.adminSalt != "" {
		args = append(args, "-admin-salt", o.adminSalt)
	}
	return cliparse.ParseFlags(args)
}

func (o *options) connect(ctx context.Context) (store.Store, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return backend.Connect(ctx, cfg, slog.Default())
}
