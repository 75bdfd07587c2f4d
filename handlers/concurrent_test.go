// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saasan-app/saasan-poll/models"
	"github.com/saasan-app/saasan-poll/testutil"
)

// TestConcurrentVoteRequests drives simultaneous HTTP votes from distinct
// voters and checks that every one lands without losing a counter update.
func TestConcurrentVoteRequests(t *testing.T) {
	conn, _, _, voteHandler := newTestHandlers(t)

	pollID := testutil.CreateTestPoll(t, conn, models.StatusActive, -time.Hour, time.Hour)
	optA := testutil.AddTestOption(t, conn, pollID, 0, "Option A")
	optB := testutil.AddTestOption(t, conn, pollID, 1, "Option B")

	numVoters := 10

	var okCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opt := optA
			if idx%2 == 1 {
				opt = optB
			}
			req := testutil.MakeRequest("POST", "/poll/vote",
				models.CastVoteRequest{PollID: pollID, OptionID: opt},
				map[string]string{"X-Voter-ID": fmt.Sprintf("http-voter-%d", idx)})
			w := httptest.NewRecorder()

			voteHandler.CastVote(w, req)

			if w.Code == http.StatusOK {
				okCount.Add(1)
			} else {
				t.Errorf("Vote %d failed with status %d: %s", idx, w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if int(okCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, okCount.Load())
	}

	aggregate, optionSum := testutil.PollCounters(t, conn, pollID)
	if aggregate != numVoters || optionSum != numVoters {
		t.Errorf("Counters drifted: aggregate=%d optionSum=%d want %d", aggregate, optionSum, numVoters)
	}
	if n := testutil.CountRows(t, conn, `SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID); n != numVoters {
		t.Errorf("Expected %d ledger entries, got %d", numVoters, n)
	}
}

// TestConcurrentDuplicateVoteRequests races the same voter against
// themselves over HTTP; exactly one request may win.
func TestConcurrentDuplicateVoteRequests(t *testing.T) {
	conn, _, _, voteHandler := newTestHandlers(t)

	pollID := testutil.CreateTestPoll(t, conn, models.StatusActive, -time.Hour, time.Hour)
	optA := testutil.AddTestOption(t, conn, pollID, 0, "Option A")

	attempts := 6

	var okCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/poll/vote",
				models.CastVoteRequest{PollID: pollID, OptionID: optA},
				map[string]string{"X-Voter-ID": "persistent-voter"})
			w := httptest.NewRecorder()

			voteHandler.CastVote(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}

	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 winning request, got %d", okCount.Load())
	}
	if conflictCount.Load() != int32(attempts-1) {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflictCount.Load())
	}

	aggregate, optionSum := testutil.PollCounters(t, conn, pollID)
	if aggregate != 1 || optionSum != 1 {
		t.Errorf("Expected counters at 1, got aggregate=%d optionSum=%d", aggregate, optionSum)
	}
}
