// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend picks the ballot store for a configuration.

	st, err := backend.Connect(ctx, cfg, slog.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

  - sqlite: database/sql with modernc.org/sqlite (store/sqlstore)
  - postgres: database/sql with lib/pq (store/sqlstore)
  - gorm: gorm with the pgx PostgreSQL driver (store/gormstore)
  - memory: process-local maps (store/memstore), nothing persists
*/
package backend
