// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/saasan-app/saasan-poll/auth"
	"github.com/saasan-app/saasan-poll/models"
)

// CreatePollParams describes a poll plus its full option set. Options are
// attached in order at creation time; polls are never provisioned half-built.
type CreatePollParams struct {
	Title                string
	Description          string
	OptionTexts          []string
	Category             string
	Status               string
	StartsAt             time.Time
	EndsAt               time.Time
	RequiresVerification bool
}

// CreatePoll creates the poll and all its options in a single transaction,
// so a crash can never leave an orphan poll without options.
func (c *Coordinator) CreatePoll(ctx context.Context, params CreatePollParams) (*models.PollWithOptions, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPoll)
	}
	if len(params.OptionTexts) < 2 {
		return nil, fmt.Errorf("%w: at least 2 options required", ErrInvalidPoll)
	}
	for _, text := range params.OptionTexts {
		if text == "" {
			return nil, fmt.Errorf("%w: option text cannot be empty", ErrInvalidPoll)
		}
	}
	if !params.EndsAt.After(params.StartsAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidPoll)
	}

	status := params.Status
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, fmt.Errorf("%w: status must be active or inactive", ErrInvalidPoll)
	}

	pollID, err := auth.GenerateID(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate poll ID: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, title, description, status, category, requires_verification,
		                  starts_at, ends_at, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
	`, pollID, params.Title, params.Description, status, params.Category,
		params.RequiresVerification, params.StartsAt, params.EndsAt, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, text := range params.OptionTexts {
		optionID, err := auth.GenerateID(12)
		if err != nil {
			return nil, fmt.Errorf("failed to generate option ID: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (id, poll_id, position, text, vote_count)
			VALUES ($1, $2, $3, $4, 0)
		`, optionID, pollID, i, text)
		if err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit poll creation: %w", err)
	}

	slog.Info("poll created", "poll_id", pollID, "options", len(params.OptionTexts))

	return c.GetPollByID(ctx, pollID)
}

// GetPollByID loads a poll with its options in display order. Option
// percentages are computed here from the counters, never stored.
func (c *Coordinator) GetPollByID(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	var poll models.Poll
	var category sql.NullString
	err := c.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, category, requires_verification,
		       starts_at, ends_at, vote_count, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.Status, &category,
		&poll.RequiresVerification, &poll.StartsAt, &poll.EndsAt,
		&poll.VoteCount, &poll.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if category.Valid {
		poll.Category = category.String
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, poll_id, position, text, vote_count
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Position, &opt.Text, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opt.Percentage = percentage(opt.VoteCount, poll.VoteCount)
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return &models.PollWithOptions{Poll: poll, Options: options}, nil
}

// ListPolls returns summaries of all polls, newest first.
func (c *Coordinator) ListPolls(ctx context.Context) ([]models.PollSummary, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.status, p.starts_at, p.ends_at, p.vote_count,
		       (SELECT COUNT(*) FROM poll_option o WHERE o.poll_id = p.id)
		FROM poll p
		ORDER BY p.created_at DESC, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var s models.PollSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Status, &s.StartsAt, &s.EndsAt,
			&s.VoteCount, &s.OptionCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	return polls, nil
}

// RecountPoll rebuilds both counter levels from the vote ledger in one
// transaction. The ledger is the source of truth; the counters are a cache
// maintained on every write, and this is the audit/repair path for the rare
// case they are suspected to have drifted.
func (c *Coordinator) RecountPoll(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	var exists bool
	err := c.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)
	`, pollID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if !exists {
		return nil, ErrPollNotFound
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE poll_option
		SET vote_count = (SELECT COUNT(*) FROM vote WHERE vote.option_id = poll_option.id)
		WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to recount options: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE poll
		SET vote_count = (SELECT COUNT(*) FROM vote WHERE vote.poll_id = poll.id)
		WHERE id = $1
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to recount poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recount: %w", err)
	}

	slog.Info("poll recounted", "poll_id", pollID)

	return c.GetPollByID(ctx, pollID)
}

// percentage computes an option's share of the aggregate, rounded to one
// decimal place. Zero aggregate means zero share everywhere.
func percentage(optionVotes, totalVotes int) float64 {
	if totalVotes == 0 {
		return 0
	}
	return math.Round(float64(optionVotes)/float64(totalVotes)*1000) / 10
}
