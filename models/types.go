// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Symbolic error codes carried in error responses. Stable across releases;
// clients branch on these, not on messages.
const (
	CodeBadRequest           = "request400"
	CodeVoterRequired        = "voter401"
	CodeVerificationRequired = "voter403"
	CodePollNotFound         = "poll404"
	CodeOptionNotFound       = "pollOption404"
	CodePollClosed           = "pollClosed409"
	CodeAlreadyVoted         = "vote409"
	CodeVoteFailed           = "vote505"
	CodeInternal             = "server500"
)

// Request types

type CreatePollRequest struct {
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Options              []string  `json:"options"`
	Category             string    `json:"category"`
	Status               string    `json:"status"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	RequiresVerification bool      `json:"requiresVerification"`
}

type CastVoteRequest struct {
	PollID   string `json:"pollId"`
	OptionID string `json:"optionId"`
}

// Response envelope

// Envelope is the success wrapper used across the whole backend.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorBody is the error wrapper. RequestID lets a user-reported failure be
// correlated with server-side logs.
type ErrorBody struct {
	RequestID  string `json:"requestId"`
	StatusCode int    `json:"statusCode"`
	ErrorCode  string `json:"errorCode"`
	Message    string `json:"message"`
	Additional any    `json:"additional,omitempty"`
}

// Domain types

type Poll struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Status               string    `json:"status"`
	Category             string    `json:"category,omitempty"`
	RequiresVerification bool      `json:"requires_verification"`
	StartsAt             time.Time `json:"starts_at"`
	EndsAt               time.Time `json:"ends_at"`
	VoteCount            int       `json:"vote_count"`
	CreatedAt            time.Time `json:"created_at"`
}

type PollOption struct {
	ID        string `json:"id"`
	PollID    string `json:"poll_id"`
	Position  int    `json:"position"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
	// Derived at read time from the counters; never stored.
	Percentage float64 `json:"percentage"`
}

type PollWithOptions struct {
	Poll    Poll         `json:"poll"`
	Options []PollOption `json:"options"`
}

type PollSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	VoteCount   int       `json:"vote_count"`
	OptionCount int       `json:"option_count"`
}

// Vote is one ledger entry: the durable record of a cast vote. Immutable
// after insert.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	VoterID   string    `json:"-"` // Never expose in JSON
	IPHash    *string   `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}
