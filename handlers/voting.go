// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/saasan-app/saasan-poll/auth"
	"github.com/saasan-app/saasan-poll/cliparse"
	"github.com/saasan-app/saasan-poll/middleware"
	"github.com/saasan-app/saasan-poll/models"
	"github.com/saasan-app/saasan-poll/voting"
)

type VoteHandler struct {
	svc *voting.Coordinator
	cfg cliparse.Config
}

func NewVoteHandler(svc *voting.Coordinator, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{svc: svc, cfg: cfg}
}

// CastVote handles POST /poll/vote
//
// Voter identity arrives in the X-Voter-ID header, set by the upstream
// gateway after authentication. X-Voter-Verified marks voters who passed
// identity verification; it gates polls flagged requires_verification.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get("X-Voter-ID")
	if voterID == "" {
		middleware.ErrorResponse(w, r, http.StatusUnauthorized, models.CodeVoterRequired, "X-Voter-ID header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON")
		return
	}

	if req.PollID == "" {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "pollId is required")
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "optionId is required")
		return
	}

	// IP is stored only as a salted hash, for audit and fraud review.
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	poll, err := h.svc.CastVote(r.Context(), voting.VoteRequest{
		PollID:   req.PollID,
		OptionID: req.OptionID,
		VoterID:  voterID,
		Verified: r.Header.Get("X-Voter-Verified") == "true",
		IPHash:   ipHash,
	})

	switch {
	case errors.Is(err, voting.ErrPollNotFound):
		middleware.ErrorResponse(w, r, http.StatusNotFound, models.CodePollNotFound, "Poll not found")
		return
	case errors.Is(err, voting.ErrOptionNotFound):
		middleware.ErrorResponse(w, r, http.StatusNotFound, models.CodeOptionNotFound, "Option not found on this poll")
		return
	case errors.Is(err, voting.ErrPollClosed):
		middleware.ErrorResponse(w, r, http.StatusConflict, models.CodePollClosed, "Poll is not open for voting")
		return
	case errors.Is(err, voting.ErrVerificationRequired):
		middleware.ErrorResponse(w, r, http.StatusForbidden, models.CodeVerificationRequired, "Poll requires a verified voter")
		return
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.ErrorResponse(w, r, http.StatusConflict, models.CodeAlreadyVoted, "Voter has already voted on this poll")
		return
	case err != nil:
		// Valid request, commit failed, nothing persisted. Retryable.
		slog.Error("vote recording failed", "error", err, "poll_id", req.PollID)
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, models.CodeVoteFailed, "Failed to record vote")
		return
	}

	message := fmt.Sprintf("Vote recorded (%s total)", humanize.Comma(int64(poll.Poll.VoteCount)))
	middleware.Respond(w, http.StatusOK, message, poll)
}
