// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open selects the driver from the database type, pings, and creates the schema:

	conn, err := db.Open(ctx, db.TypeSQLite, "file:poll.db")
	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")

SQLite URLs get foreign key enforcement added (_pragma=foreign_keys(1)) and the
pool is limited to one connection.

OpenGorm does the same for gorm over PostgreSQL (pgx driver):

	gdb, err := db.OpenGorm(ctx, "postgres://...")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on PostgreSQL and SQLite.

# Tables

  - items: Candidate options; done marks retired items
  - ballots: One row per voter, keyed by the voter's UUID
  - rankings: Ordered (ballot, item, ord) rows, ord starting at 0

# Relationships

	ballots 1──* rankings *──1 items

Foreign keys use ON DELETE CASCADE. A ballot ranks each item at most once
and each position at most once.
*/
package db
