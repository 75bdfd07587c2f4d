// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Saasan poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every application route is wrapped with request ID assignment and
request logging.

# Endpoints

Health:

	GET /health

Poll management:

	POST /poll                  - Create poll with options
	GET  /poll                  - List polls
	GET  /poll/{pollId}         - Get poll with tallies
	POST /poll/{pollId}/recount - Rebuild counters from ledger

Voting:

	POST /poll/vote - Cast a vote (X-Voter-ID header required)
*/
package router
