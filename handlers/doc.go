// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Saasan poll API.

# Handler Types

Each handler is a struct holding the vote coordinator and config:

  - PollHandler: Poll lifecycle (create, fetch, list, recount)
  - VoteHandler: Vote recording

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(svc, cfg)
	voteHandler := handlers.NewVoteHandler(svc, cfg)

# Endpoints

	POST /poll                  → CreatePoll
	GET  /poll                  → ListPolls
	GET  /poll/{pollId}         → GetPoll
	POST /poll/{pollId}/recount → RecountPoll
	POST /poll/vote             → CastVote

# Voter Identity

CastVote reads the voter from request headers set by the upstream
gateway: X-Voter-ID carries the authenticated voter, X-Voter-Verified
marks voters who passed identity verification. Requests without
X-Voter-ID are rejected with 401.

# Error Codes

Error responses carry a symbolic code alongside the HTTP status:

	401 voter401        - missing voter identity
	403 voter403        - poll requires a verified voter
	404 poll404         - unknown poll
	404 pollOption404   - option not on this poll
	409 pollClosed409   - poll inactive or outside its window
	409 vote409         - voter already voted on this poll
	505 vote505         - vote transaction failed (retryable)
*/
package handlers
