// Copyright (c) 2025 Saasan.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/saasan-app/saasan-poll/auth"
	"github.com/saasan-app/saasan-poll/cliparse"
	"github.com/saasan-app/saasan-poll/db"
	"github.com/saasan-app/saasan-poll/models"
)

// SetupTestDB creates a fresh SQLite database in a temp dir with the full
// schema. One connection keeps SQLite writes serialized and predictable
// under the concurrency tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4318,
		DatabaseURL:  "test.db",
		DatabaseType: "sqlite",
		IPHashSalt:   "test-ip-salt",
	}
}

// CreateTestPoll creates a poll and returns its ID.
// status should be "active" or "inactive"; the voting window is
// [now-1h, now+1h] unless shifted via startOffset/endOffset.
func CreateTestPoll(t *testing.T, conn *sql.DB, status string, startOffset, endOffset time.Duration) string {
	t.Helper()

	pollID, _ := auth.GenerateID(16)
	now := time.Now()

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, status, requires_verification,
		                  starts_at, ends_at, vote_count, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', $2, FALSE, $3, $4, 0, $5)
	`, pollID, status, now.Add(startOffset), now.Add(endOffset), now)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// SetPollRequiresVerification flips the verification flag on a poll
func SetPollRequiresVerification(t *testing.T, conn *sql.DB, pollID string) {
	t.Helper()

	_, err := conn.Exec(`UPDATE poll SET requires_verification = TRUE WHERE id = $1`, pollID)
	if err != nil {
		t.Fatalf("Failed to flag poll: %v", err)
	}
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID string, position int, text string) string {
	t.Helper()

	optionID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO poll_option (id, poll_id, position, text, vote_count)
		VALUES ($1, $2, $3, $4, 0)
	`, optionID, pollID, position, text)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CountRows returns the row count of the given query
func CountRows(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	return n
}

// PollCounters returns (poll aggregate, sum of option counters) for a poll
func PollCounters(t *testing.T, conn *sql.DB, pollID string) (int, int) {
	t.Helper()

	var aggregate int
	if err := conn.QueryRow(`SELECT vote_count FROM poll WHERE id = $1`, pollID).Scan(&aggregate); err != nil {
		t.Fatalf("Failed to read poll counter: %v", err)
	}
	var optionSum int
	if err := conn.QueryRow(`
		SELECT COALESCE(SUM(vote_count), 0) FROM poll_option WHERE poll_id = $1
	`, pollID).Scan(&optionSum); err != nil {
		t.Fatalf("Failed to sum option counters: %v", err)
	}
	return aggregate, optionSum
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// DecodeData unwraps a success envelope and decodes its data field into v
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var env struct {
		Success   bool            `json:"success"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
		Timestamp time.Time       `json:"timestamp"`
	}
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("Expected success envelope, got success=false")
	}
	if env.Timestamp.IsZero() {
		t.Error("Envelope timestamp is zero")
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("Failed to decode envelope data: %v", err)
	}
}

// DecodeError decodes an error envelope
func DecodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorBody {
	t.Helper()

	var body models.ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body
}
