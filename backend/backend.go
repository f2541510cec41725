// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/db"
	"github.com/ltungv/poll/store"
	"github.com/ltungv/poll/store/gormstore"
	"github.com/ltungv/poll/store/memstore"
	"github.com/ltungv/poll/store/sqlstore"
)

// Connect opens the store selected by cfg.DatabaseType
func Connect(ctx context.Context, cfg cliparse.Config, logger *slog.Logger) (store.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DatabaseType {
	case cliparse.DatabaseSQLite, cliparse.DatabasePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(conn, logger), nil

	case cliparse.DatabaseGorm:
		gdb, err := db.OpenGorm(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return gormstore.New(gdb, logger), nil

	case cliparse.DatabaseMemory:
		return memstore.New(nil), nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}
