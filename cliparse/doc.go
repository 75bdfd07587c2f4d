// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - IPHashSalt: Secret for vote ledger IP hashing (required)

# CLI Flags

	-p       Server port
	-d       Database URL
	-t       Database type
	-ip-salt IP hash salt

# Environment Variables

Flags fall back to environment variables: PORT, DATABASE_URL,
DATABASE_TYPE, IP_HASH_SALT. Secrets should be provided via environment
in production; the CLI flags exist for development.
*/
package cliparse
