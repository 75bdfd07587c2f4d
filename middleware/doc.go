// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

Wrap handlers to assign each request a UUID:

	mux.HandleFunc("POST /poll/vote", middleware.WithRequestID(handler))

The ID is stored in the request context, echoed in the X-Request-ID
response header, and included in error envelopes so user reports can be
matched with server logs.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /poll", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
both tagged with the request ID.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Voter-ID, X-Voter-Verified.

# JSON Helpers

Write enveloped responses:

	middleware.Respond(w, http.StatusOK, "Polls fetched", polls)
	middleware.ErrorResponse(w, r, http.StatusNotFound, models.CodePollNotFound, "Poll not found")

Parse request bodies:

	var req models.CastVoteRequest
	err := middleware.ParseJSONBody(r, &req)

# Client IP

GetClientIP resolves the caller's address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr.
*/
package middleware
