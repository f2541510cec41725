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

	"github.com/google/uuid"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/db"
	"github.com/ltungv/poll/models"
)

// TestDBURL is an in-memory SQLite database; each SetupTestDB call gets its own
const TestDBURL = "file::memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestItem adds an active item and returns it
func CreateTestItem(t *testing.T, conn *sql.DB, title string) models.Item {
	t.Helper()

	itemID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO items (id, title, content)
		VALUES ($1, $2, $3)
	`, itemID, title, title+" content")
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return models.Item{ID: itemID, Title: title, Content: title + " content"}
}

// RetireTestItem marks an item done
func RetireTestItem(t *testing.T, conn *sql.DB, itemID string) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE items SET done = TRUE WHERE id = $1`, itemID); err != nil {
		t.Fatalf("Failed to retire test item: %v", err)
	}
}

// CreateTestBallot registers a ballot with a fresh UUID
func CreateTestBallot(t *testing.T, conn *sql.DB) models.Ballot {
	t.Helper()

	ballotID, _ := auth.GenerateID(16)
	ballotUUID := uuid.New()
	_, err := conn.Exec(`
		INSERT INTO ballots (id, uuid)
		VALUES ($1, $2)
	`, ballotID, ballotUUID.String())
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return models.Ballot{ID: ballotID, UUID: ballotUUID}
}

// SetTestRankings stores itemIDs as the ballot's ranking, most preferred first
func SetTestRankings(t *testing.T, conn *sql.DB, ballotID string, itemIDs ...string) {
	t.Helper()

	if _, err := conn.Exec(`DELETE FROM rankings WHERE ballot_id = $1`, ballotID); err != nil {
		t.Fatalf("Failed to clear test rankings: %v", err)
	}
	for ord, itemID := range itemIDs {
		_, err := conn.Exec(`
			INSERT INTO rankings (ballot_id, item_id, ord)
			VALUES ($1, $2, $3)
		`, ballotID, itemID, ord)
		if err != nil {
			t.Fatalf("Failed to create test ranking: %v", err)
		}
	}
}

// CreateTestVoter registers a ballot and ranks itemIDs on it
func CreateTestVoter(t *testing.T, conn *sql.DB, itemIDs ...string) models.Ballot {
	t.Helper()

	ballot := CreateTestBallot(t, conn)
	SetTestRankings(t, conn, ballot.ID, itemIDs...)
	return ballot
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
