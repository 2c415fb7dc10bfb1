// Copyright (c) 2025 Daniel Kuo.
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

	_ "modernc.org/sqlite"

	"github.com/ict4d/voteline/cliparse"
	schema "github.com/ict4d/voteline/db"
	"github.com/ict4d/voteline/ledger"
	"github.com/ict4d/voteline/models"
	"github.com/ict4d/voteline/pool"
	"github.com/ict4d/voteline/voting"
	"github.com/ict4d/voteline/vxml"
)

// SetupTestDB creates a fresh sqlite database in a per-test temp
// directory with the full schema. Keeps the suite hermetic - no external
// database needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "voteline_test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// sqlite allows one writer at a time; a single pooled connection
	// keeps concurrent test traffic from tripping over lock timeouts
	db.SetMaxOpenConns(1)

	if err := schema.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration with per-test
// artifact directories.
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	return cliparse.Config{
		Port:         8080,
		DatabaseType: "sqlite",
		BaseURL:      "http://localhost:8080/",
		VXMLDir:      t.TempDir(),
		AudioDir:     t.TempDir(),
		Language:     "en",
	}
}

// Stack bundles the wired core for tests that cross package boundaries.
type Stack struct {
	DB        *sql.DB
	Cfg       cliparse.Config
	Phones    *pool.Store
	Questions *ledger.Ledger
	Gen       *vxml.Generator
	Coord     *voting.Coordinator
}

// SetupStack wires a full core (pool, ledger, generator, coordinator)
// over a fresh test database and temp document store.
func SetupStack(t *testing.T) *Stack {
	t.Helper()

	db := SetupTestDB(t)
	cfg := GetTestConfig(t)

	store, err := vxml.NewDirStore(cfg.VXMLDir)
	if err != nil {
		t.Fatalf("Failed to create document store: %v", err)
	}
	audio, err := vxml.NewDirStore(cfg.AudioDir)
	if err != nil {
		t.Fatalf("Failed to create audio store: %v", err)
	}
	gen := vxml.NewGenerator(store, cfg.BaseURL, cfg.Language)

	phones := pool.New(db)
	questions := ledger.New(db)
	coord := voting.New(db, phones, questions, gen, audio)

	return &Stack{
		DB:        db,
		Cfg:       cfg,
		Phones:    phones,
		Questions: questions,
		Gen:       gen,
		Coord:     coord,
	}
}

// AddTestPhone inserts a free phone line directly.
func AddTestPhone(t *testing.T, db *sql.DB, number string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO phone_pool (number, question_token, side, position)
		VALUES ($1, NULL, NULL, (SELECT COALESCE(MAX(p.position), 0) + 1 FROM phone_pool p))
	`, number)
	if err != nil {
		t.Fatalf("Failed to create test phone %s: %v", number, err)
	}
}

// CreateTestQuestion runs the real creation flow and returns the
// question. The two oldest free lines get reserved for it.
func CreateTestQuestion(t *testing.T, s *Stack, prompt string) models.Question {
	t.Helper()

	q, err := s.Coord.CreateQuestion(prompt)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return q
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
