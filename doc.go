// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the poll API server.

The poll is a single ranked-choice ballot over a shared list of items. Voters
order the items they care about and the current winner is decided by
instant-runoff voting (package irv).

# Starting the Server

The server reads a .env file, environment variables and CLI flags:

	ADMIN_KEY_SALT=secret DATABASE_URL=file:poll.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string (not needed for -t memory)
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, gorm or memory (default: sqlite)

# Architecture

  - irv: Instant-runoff tabulation, independent of storage
  - store: Repository interfaces with sqlstore, gormstore and memstore backends
  - service: Tabulation over a snapshot, ranking replacement, ballots, items
  - handlers: HTTP request handlers (ballots, items, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Admin keys and ID generation
  - db: Connections and schema creation
  - backend: Store selection from configuration
  - cliparse: Configuration parsing
  - cmd/tally: Operator CLI

See package documentation for each component.
*/
package main
