// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/saasan-app/saasan-poll/cliparse"
	"github.com/saasan-app/saasan-poll/handlers"
	"github.com/saasan-app/saasan-poll/middleware"
	"github.com/saasan-app/saasan-poll/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	svc := voting.NewCoordinator(db)
	pollHandler := handlers.NewPollHandler(svc, cfg)
	voteHandler := handlers.NewVoteHandler(svc, cfg)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithRequestID(middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	mux.HandleFunc("POST /poll", wrap(pollHandler.CreatePoll))
	mux.HandleFunc("GET /poll", wrap(pollHandler.ListPolls))
	mux.HandleFunc("GET /poll/{pollId}", wrap(pollHandler.GetPoll))
	mux.HandleFunc("POST /poll/{pollId}/recount", wrap(pollHandler.RecountPoll))

	// Voting
	mux.HandleFunc("POST /poll/vote", wrap(voteHandler.CastVote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("saasan-poll API v1"))
	})

	return mux
}
