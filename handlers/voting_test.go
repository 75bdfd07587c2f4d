// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saasan-app/saasan-poll/models"
	"github.com/saasan-app/saasan-poll/testutil"
)

func TestCastVote(t *testing.T) {
	conn, _, _, voteHandler := newTestHandlers(t)

	pollID := testutil.CreateTestPoll(t, conn, models.StatusActive, -time.Hour, time.Hour)
	optA := testutil.AddTestOption(t, conn, pollID, 0, "Option A")
	optB := testutil.AddTestOption(t, conn, pollID, 1, "Option B")

	closedPoll := testutil.CreateTestPoll(t, conn, models.StatusInactive, -time.Hour, time.Hour)
	closedOpt := testutil.AddTestOption(t, conn, closedPoll, 0, "Closed A")

	verifiedPoll := testutil.CreateTestPoll(t, conn, models.StatusActive, -time.Hour, time.Hour)
	verifiedOpt := testutil.AddTestOption(t, conn, verifiedPoll, 0, "Verified A")
	testutil.SetPollRequiresVerification(t, conn, verifiedPoll)

	tests := []struct {
		name           string
		requestBody    interface{}
		headers        map[string]string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid vote",
			requestBody:    models.CastVoteRequest{PollID: pollID, OptionID: optA},
			headers:        map[string]string{"X-Voter-ID": "voter-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing voter header",
			requestBody:    models.CastVoteRequest{PollID: pollID, OptionID: optA},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   models.CodeVoterRequired,
		},
		{
			name:           "missing pollId",
			requestBody:    models.CastVoteRequest{OptionID: optA},
			headers:        map[string]string{"X-Voter-ID": "voter-2"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeBadRequest,
		},
		{
			name:           "missing optionId",
			requestBody:    models.CastVoteRequest{PollID: pollID},
			headers:        map[string]string{"X-Voter-ID": "voter-2"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeBadRequest,
		},
		{
			name:           "unknown poll",
			requestBody:    models.CastVoteRequest{PollID: "nonexistent", OptionID: optA},
			headers:        map[string]string{"X-Voter-ID": "voter-2"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   models.CodePollNotFound,
		},
		{
			name:           "option from another poll",
			requestBody:    models.CastVoteRequest{PollID: pollID, OptionID: closedOpt},
			headers:        map[string]string{"X-Voter-ID": "voter-2"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   models.CodeOptionNotFound,
		},
		{
			name:           "inactive poll",
			requestBody:    models.CastVoteRequest{PollID: closedPoll, OptionID: closedOpt},
			headers:        map[string]string{"X-Voter-ID": "voter-2"},
			expectedStatus: http.StatusConflict,
			expectedCode:   models.CodePollClosed,
		},
		{
			name:           "unverified voter on verified poll",
			requestBody:    models.CastVoteRequest{PollID: verifiedPoll, OptionID: verifiedOpt},
			headers:        map[string]string{"X-Voter-ID": "voter-2"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   models.CodeVerificationRequired,
		},
		{
			name:        "verified voter on verified poll",
			requestBody: models.CastVoteRequest{PollID: verifiedPoll, OptionID: verifiedOpt},
			headers: map[string]string{
				"X-Voter-ID":       "voter-2",
				"X-Voter-Verified": "true",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "duplicate vote",
			requestBody:    models.CastVoteRequest{PollID: pollID, OptionID: optB},
			headers:        map[string]string{"X-Voter-ID": "voter-1"},
			expectedStatus: http.StatusConflict,
			expectedCode:   models.CodeAlreadyVoted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/poll/vote", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()

			voteHandler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedCode != "" {
				body := testutil.DecodeError(t, w)
				if body.ErrorCode != tt.expectedCode {
					t.Errorf("Expected code %s, got %s", tt.expectedCode, body.ErrorCode)
				}
				if body.StatusCode != tt.expectedStatus {
					t.Errorf("Expected body status %d, got %d", tt.expectedStatus, body.StatusCode)
				}
			}
		})
	}

	// The one successful vote on the open poll is all that landed there
	aggregate, optionSum := testutil.PollCounters(t, conn, pollID)
	if aggregate != 1 || optionSum != 1 {
		t.Errorf("Expected counters at 1, got aggregate=%d optionSum=%d", aggregate, optionSum)
	}
}

func TestCastVoteResponseCounters(t *testing.T) {
	conn, _, _, voteHandler := newTestHandlers(t)

	pollID := testutil.CreateTestPoll(t, conn, models.StatusActive, -time.Hour, time.Hour)
	optA := testutil.AddTestOption(t, conn, pollID, 0, "Option A")
	optB := testutil.AddTestOption(t, conn, pollID, 1, "Option B")
	_ = optB

	req := testutil.MakeRequest("POST", "/poll/vote",
		models.CastVoteRequest{PollID: pollID, OptionID: optA},
		map[string]string{"X-Voter-ID": "voter-1"})
	w := httptest.NewRecorder()

	voteHandler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var poll models.PollWithOptions
	testutil.DecodeData(t, w, &poll)

	if poll.Poll.VoteCount != 1 {
		t.Errorf("Expected aggregate 1 in response, got %d", poll.Poll.VoteCount)
	}
	for _, opt := range poll.Options {
		switch opt.ID {
		case optA:
			if opt.VoteCount != 1 {
				t.Errorf("Expected option A at 1, got %d", opt.VoteCount)
			}
			if opt.Percentage != 100 {
				t.Errorf("Expected option A at 100%%, got %f", opt.Percentage)
			}
		default:
			if opt.VoteCount != 0 {
				t.Errorf("Expected other options at 0, got %d", opt.VoteCount)
			}
		}
	}

	// Ledger entry carries the hashed IP, never the raw address
	var ipHash string
	err := conn.QueryRow(`SELECT ip_hash FROM vote WHERE poll_id = $1 AND voter_id = 'voter-1'`, pollID).Scan(&ipHash)
	if err != nil {
		t.Fatalf("Failed to read ledger entry: %v", err)
	}
	if ipHash == "" {
		t.Error("Expected non-empty ip hash on ledger entry")
	}
}

func TestCastVoteInvalidJSON(t *testing.T) {
	_, _, _, voteHandler := newTestHandlers(t)

	req := httptest.NewRequest("POST", "/poll/vote", nil)
	req.Header.Set("X-Voter-ID", "voter-1")
	w := httptest.NewRecorder()

	voteHandler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
