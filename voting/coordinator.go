// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saasan-app/saasan-poll/models"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option does not belong to poll")
	ErrPollClosed     = errors.New("poll is not open for voting")
	ErrAlreadyVoted   = errors.New("voter has already voted on this poll")
	// ErrVerificationRequired is returned for polls that only accept votes
	// from identity-verified voters.
	ErrVerificationRequired = errors.New("poll requires a verified voter")
	// ErrVoteRecordingFailed means the request was valid but the write set
	// could not be committed. Nothing was persisted; the caller may retry.
	ErrVoteRecordingFailed = errors.New("vote recording failed")
	ErrInvalidPoll         = errors.New("invalid poll definition")
)

// Coordinator owns every mutation of the vote counters. No other code path
// increments poll.vote_count or poll_option.vote_count, which is what keeps
// the aggregate == sum(options) invariant enforceable.
type Coordinator struct {
	db *sql.DB
}

func NewCoordinator(db *sql.DB) *Coordinator {
	return &Coordinator{db: db}
}

// VoteRequest carries one validated-upstream vote attempt. VoterID comes from
// the authenticated caller; Verified is asserted by the upstream gateway.
type VoteRequest struct {
	PollID   string
	OptionID string
	VoterID  string
	Verified bool
	IPHash   string
}

// CastVote records a single vote: one ledger entry plus both counter
// increments, committed as a unit. Validation happens before any write;
// after validation the only per-request failure is the (poll, voter)
// uniqueness constraint, surfaced as ErrAlreadyVoted.
//
// Returns the poll re-read with its options, reflecting the committed state.
func (c *Coordinator) CastVote(ctx context.Context, req VoteRequest) (*models.PollWithOptions, error) {
	var poll models.Poll
	err := c.db.QueryRowContext(ctx, `
		SELECT id, status, requires_verification, starts_at, ends_at
		FROM poll WHERE id = $1
	`, req.PollID).Scan(&poll.ID, &poll.Status, &poll.RequiresVerification, &poll.StartsAt, &poll.EndsAt)

	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	now := time.Now()
	if poll.Status != models.StatusActive || now.Before(poll.StartsAt) || now.After(poll.EndsAt) {
		return nil, ErrPollClosed
	}
	if poll.RequiresVerification && !req.Verified {
		return nil, ErrVerificationRequired
	}

	var belongs bool
	err = c.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM poll_option
			WHERE id = $1 AND poll_id = $2
		)
	`, req.OptionID, req.PollID).Scan(&belongs)
	if err != nil {
		return nil, fmt.Errorf("failed to query option: %w", err)
	}
	if !belongs {
		return nil, ErrOptionNotFound
	}

	// All three writes below must land together or not at all. The scope is
	// held only for these statements; it never spans calls to other systems.
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err, "poll_id", req.PollID)
		return nil, ErrVoteRecordingFailed
	}
	defer tx.Rollback()

	voteID := uuid.NewString()

	var ipHash sql.NullString
	if req.IPHash != "" {
		ipHash = sql.NullString{String: req.IPHash, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, poll_id, option_id, voter_id, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, req.PollID, req.OptionID, req.VoterID, ipHash, now)

	if err != nil {
		// The UNIQUE (poll_id, voter_id) constraint is the arbiter of
		// double-voting, so concurrent duplicates lose here, not in a
		// racy pre-check.
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		slog.Error("failed to insert vote", "error", err, "poll_id", req.PollID)
		return nil, ErrVoteRecordingFailed
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE poll_option
		SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, req.OptionID, req.PollID)
	if err != nil {
		slog.Error("failed to increment option counter", "error", err, "option_id", req.OptionID)
		return nil, ErrVoteRecordingFailed
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		slog.Error("option counter update affected wrong row count", "error", err, "option_id", req.OptionID)
		return nil, ErrVoteRecordingFailed
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll
		SET vote_count = vote_count + 1
		WHERE id = $1
	`, req.PollID)
	if err != nil {
		slog.Error("failed to increment poll counter", "error", err, "poll_id", req.PollID)
		return nil, ErrVoteRecordingFailed
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote", "error", err, "poll_id", req.PollID)
		return nil, ErrVoteRecordingFailed
	}

	slog.Info("vote recorded",
		"vote_id", voteID,
		"poll_id", req.PollID,
		"option_id", req.OptionID,
	)

	return c.GetPollByID(ctx, req.PollID)
}

// isUniqueViolation matches unique-constraint failures from both supported
// drivers (lib/pq and modernc sqlite) by message, neither exports a portable
// error type for this.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
