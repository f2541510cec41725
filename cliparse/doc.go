// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads .env files into the environment, then ParseFlags returns a
Config struct with all settings:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (required unless DatabaseType is memory)
  - DatabaseType: sqlite, postgres, gorm or memory (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-salt   Admin key salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over .env files.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for a non-memory database
  - DATABASE_TYPE is not one of the known types
  - ADMIN_KEY_SALT is missing
*/
package cliparse
