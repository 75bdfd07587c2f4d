// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/saasan-app/saasan-poll/cliparse"
	"github.com/saasan-app/saasan-poll/middleware"
	"github.com/saasan-app/saasan-poll/models"
	"github.com/saasan-app/saasan-poll/voting"
)

type PollHandler struct {
	svc *voting.Coordinator
	cfg cliparse.Config
}

func NewPollHandler(svc *voting.Coordinator, cfg cliparse.Config) *PollHandler {
	return &PollHandler{svc: svc, cfg: cfg}
}

// CreatePoll handles POST /poll
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "title is required")
		return
	}
	if len(req.Options) < 2 {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "at least 2 options are required")
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "startDate and endDate are required")
		return
	}

	poll, err := h.svc.CreatePoll(r.Context(), voting.CreatePollParams{
		Title:                req.Title,
		Description:          req.Description,
		OptionTexts:          req.Options,
		Category:             req.Category,
		Status:               req.Status,
		StartsAt:             req.StartDate,
		EndsAt:               req.EndDate,
		RequiresVerification: req.RequiresVerification,
	})

	if errors.Is(err, voting.ErrInvalidPoll) {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, models.CodeInternal, "Failed to create poll")
		return
	}

	middleware.Respond(w, http.StatusCreated, "Poll created", poll)
}

// GetPoll handles GET /poll/:pollId
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "pollId is required")
		return
	}

	poll, err := h.svc.GetPollByID(r.Context(), pollID)
	if errors.Is(err, voting.ErrPollNotFound) {
		middleware.ErrorResponse(w, r, http.StatusNotFound, models.CodePollNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to get poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, models.CodeInternal, "Database error")
		return
	}

	message := fmt.Sprintf("Poll fetched (%s votes)", humanize.Comma(int64(poll.Poll.VoteCount)))
	middleware.Respond(w, http.StatusOK, message, poll)
}

// ListPolls handles GET /poll
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.svc.ListPolls(r.Context())
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, models.CodeInternal, "Database error")
		return
	}

	middleware.Respond(w, http.StatusOK, "Polls fetched", polls)
}

// RecountPoll handles POST /poll/:pollId/recount
// Ops endpoint: rebuilds counters from the vote ledger.
func (h *PollHandler) RecountPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, r, http.StatusBadRequest, models.CodeBadRequest, "pollId is required")
		return
	}

	poll, err := h.svc.RecountPoll(r.Context(), pollID)
	if errors.Is(err, voting.ErrPollNotFound) {
		middleware.ErrorResponse(w, r, http.StatusNotFound, models.CodePollNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to recount poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, models.CodeInternal, "Failed to recount poll")
		return
	}

	middleware.Respond(w, http.StatusOK, "Poll counters rebuilt from ledger", poll)
}
