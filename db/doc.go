// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL is portable across SQLite and PostgreSQL.

# Tables

  - poll: Poll metadata, voting window, denormalized vote_count
  - poll_option: Voting options per poll with per-option vote_count
  - vote: Append-only vote ledger, one row per (poll, voter)

# Constraints

The schema enforces the voting rules directly:

  - vote UNIQUE (poll_id, voter_id): one vote per voter per poll
  - poll_option UNIQUE (poll_id, position): stable option ordering
  - CHECK (vote_count >= 0) on both counter columns
  - poll.status CHECK: active or inactive
*/
package db
