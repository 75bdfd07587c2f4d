// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the transactional core of the poll service.

# Vote Coordinator

The Coordinator wraps a *sql.DB and records votes atomically:

	svc := voting.NewCoordinator(db)
	poll, err := svc.CastVote(ctx, voting.VoteRequest{
		PollID:   pollID,
		OptionID: optionID,
		VoterID:  voterID,
	})

A vote is one transaction touching three tables: a ledger insert, the
option counter, and the poll aggregate counter. All three land or none
do, so the invariant

	poll.vote_count == SUM(poll_option.vote_count) == COUNT(vote rows)

holds after every commit.

# Vote Eligibility

Before the transaction opens, CastVote rejects:

  - unknown polls (ErrPollNotFound)
  - options that do not belong to the poll (ErrOptionNotFound)
  - inactive polls or polls outside their voting window (ErrPollClosed)
  - unverified voters on polls that require verification (ErrVerificationRequired)

Double voting is decided inside the transaction by the ledger's
UNIQUE (poll_id, voter_id) constraint and surfaces as ErrAlreadyVoted.
The constraint, not an application-level check, is the arbiter, so
racing requests from the same voter cannot both win.

# Poll Store

CreatePoll inserts a poll and its options in one transaction; a poll is
never visible with fewer than two options. GetPollByID and ListPolls are
read paths; GetPollByID computes option percentages from the counters.

# Recount

RecountPoll rebuilds both counter levels from the vote ledger inside one
transaction. It is an audit/repair path: on a healthy database it is a
no-op, after counter drift it restores the invariant.
*/
package voting
