// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotwatch/cliparse"
	"github.com/danielhkuo/ballotwatch/db"
	"github.com/danielhkuo/ballotwatch/ledger"
	"github.com/danielhkuo/ballotwatch/models"
)

// TestSecretSalt is the salt used to hash voter secrets in tests
const TestSecretSalt = "test-secret-salt"

// SetupTestDB creates a fresh in-memory database with the full schema.
// Every call returns an isolated database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4000,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		SecretSalt:   TestSecretSalt,
	}
}

// RegisterTestVoter registers a voter and returns it
func RegisterTestVoter(t *testing.T, l *ledger.Ledger, identifier, secret string) models.Voter {
	t.Helper()

	v, err := l.Register(context.Background(), identifier, secret)
	if err != nil {
		t.Fatalf("Failed to register test voter: %v", err)
	}
	return v
}

// CountVotes returns the number of vote rows for a voter
func CountVotes(t *testing.T, conn *sql.DB, voterID int64) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE voter_id = $1`, voterID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// HasVoted reads the has_voted flag straight from the database
func HasVoted(t *testing.T, conn *sql.DB, voterID int64) bool {
	t.Helper()

	var voted bool
	err := conn.QueryRow(`SELECT has_voted FROM voter WHERE id = $1`, voterID).Scan(&voted)
	if err != nil {
		t.Fatalf("Failed to read has_voted: %v", err)
	}
	return voted
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

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
