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
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/judgeboard/auth"
	"github.com/danielhkuo/judgeboard/cliparse"
	"github.com/danielhkuo/judgeboard/db"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/store"
)

// TestAdminPassword is the admin password of GetTestConfig.
const TestAdminPassword = "test-admin-password"

// SetupTestDB creates a fresh, migrated sqlite database in a temp directory.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "judgeboard.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

// SetupTestStore returns a store over a fresh database.
func SetupTestStore(t *testing.T) (*sql.DB, *store.SQLStore) {
	t.Helper()
	conn := SetupTestDB(t)
	return conn, store.NewSQLStore(conn, db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file:test.db",
		DatabaseType:   db.TypeSQLite,
		AdminPassword:  TestAdminPassword,
		LogLevel:       "error",
		ExportTimezone: "UTC",
	}
}

// TestEvent returns the built-in event definition.
func TestEvent(t *testing.T) *rubric.Event {
	t.Helper()
	ev, err := rubric.Default()
	if err != nil {
		t.Fatalf("Failed to load default event: %v", err)
	}
	return ev
}

// SeedParticipants stores the event roster.
func SeedParticipants(t *testing.T, s store.Store, ev *rubric.Event) {
	t.Helper()
	if _, err := s.SeedParticipants(context.Background(), ev.Participants); err != nil {
		t.Fatalf("Failed to seed participants: %v", err)
	}
}

// FullSheet returns a score sheet for every criterion of the section's
// rubric, each criterion set to value.
func FullSheet(t *testing.T, ev *rubric.Event, section models.Section, value float64) map[string]float64 {
	t.Helper()
	r, ok := ev.Rubric(section)
	if !ok {
		t.Fatalf("No rubric for section %q", section)
	}
	sheet := make(map[string]float64, len(r.Criteria))
	for _, c := range r.Criteria {
		sheet[c.ID] = value
	}
	return sheet
}

// AddTestScore stores a record directly and returns it.
func AddTestScore(t *testing.T, s store.Store, pid, judge string, section models.Section, scores map[string]float64, createdAt time.Time) models.ScoreRecord {
	t.Helper()

	var total float64
	for _, v := range scores {
		total += v
	}
	rec, err := s.ReplaceScore(context.Background(), models.ScoreRecord{
		ParticipantID: pid,
		Judge:         judge,
		Section:       section,
		Scores:        scores,
		Total:         total,
		CreatedAt:     createdAt,
	})
	if err != nil {
		t.Fatalf("Failed to create test score: %v", err)
	}
	return rec
}

// AdminHeaders returns the headers that pass the admin password gate.
func AdminHeaders() map[string]string {
	return map[string]string{auth.AdminPasswordHeader: TestAdminPassword}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
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
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
