// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Saasan poll API server.

Saasan is a civic engagement platform; this service owns its polls: poll
creation, atomic vote recording with denormalized tallies, and the vote
ledger that backs them.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=votes.db IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 4318 -d "postgres://..." -t postgres -ip-salt "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - IP_HASH_SALT (-ip-salt): Secret for salted IP hashing in the vote ledger

Optional settings:

  - PORT (-p): Server port (default: 4318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: Vote coordinator and poll store (transactional core)
  - handlers: HTTP request handlers (polls, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request IDs, logging, CORS, JSON envelopes
  - models: Request/response types
  - auth: ID generation and IP hashing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
