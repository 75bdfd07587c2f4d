// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, options, startDate, endDate
  - CastVoteRequest: pollId, optionId

# Response Envelope

Success responses wrap data in a standard envelope:

	{
	  "success": true,
	  "message": "Vote recorded (1,204 total)",
	  "data": { ... },
	  "timestamp": "2025-06-01T12:00:00Z"
	}

Error responses use ErrorBody with a request ID and symbolic code:

	{
	  "requestId": "…",
	  "statusCode": 409,
	  "errorCode": "vote409",
	  "message": "Voter has already voted on this poll"
	}

# Domain Types

  - Poll: poll metadata, status, voting window, aggregate vote_count
  - PollOption: option text, position, vote_count, computed percentage
  - PollWithOptions: poll plus its ordered options
  - PollSummary: list view with option count
  - Vote: ledger entry; voter ID and IP hash never serialize to JSON
*/
package models
