// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package commands defines the tally CLI.
//
// Commands
//
//   - result      Print the current result with per-round tallies
//   - file        Tabulate a JSON file of ballots, no database needed
//   - replace     Replace a ballot's ranking
//   - admin-key   Print the admin key derived from ADMIN_KEY_SALT
//
// # Configuration
//
// Commands that touch the database read the same settings as the server
// (DATABASE_TYPE, DATABASE_URL, ADMIN_KEY_SALT), from a .env file, the
// environment, or the -t, -d and --admin-salt flags.
package commands
