// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pool

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ict4d/voteline/models"
)

var (
	ErrDuplicatePhone  = errors.New("phone line already exists")
	ErrPhoneNotFound   = errors.New("phone line not assigned to a question")
	ErrNotEnoughPhones = errors.New("not enough free phone lines")
)

// DBTX is the subset of database/sql satisfied by both *sql.DB and
// *sql.Tx, so reservation and reset can run inside a caller-owned
// transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store manages the phone pool: which lines exist and which question and
// side each one is bound to. Reservation must be serialized by the caller
// (the coordinator holds a critical section spanning the whole
// reserve-and-create transaction).
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add inserts a new free phone line at the end of the allocation order.
func (s *Store) Add(number string) (models.PhoneLine, error) {
	_, err := s.db.Exec(`
		INSERT INTO phone_pool (number, question_token, side, position)
		VALUES ($1, NULL, NULL, (SELECT COALESCE(MAX(p.position), 0) + 1 FROM phone_pool p))
	`, number)

	if err != nil {
		if isUniqueViolation(err) {
			return models.PhoneLine{}, ErrDuplicatePhone
		}
		return models.PhoneLine{}, fmt.Errorf("failed to insert phone line: %w", err)
	}

	return s.get(number)
}

// List returns every phone line in insertion order.
func (s *Store) List() ([]models.PhoneLine, error) {
	return s.listTx(s.db, false)
}

// ListFree returns the unassigned phone lines, oldest first.
func (s *Store) ListFree() ([]models.PhoneLine, error) {
	return s.listTx(s.db, true)
}

// Resolve maps a dialed number to its question token and side. A number
// that is unknown or currently free resolves to ErrPhoneNotFound; votes
// on such numbers are dropped by the coordinator.
func (s *Store) Resolve(number string) (token, side string, err error) {
	var t, sd sql.NullString
	err = s.db.QueryRow(`
		SELECT question_token, side FROM phone_pool WHERE number = $1
	`, number).Scan(&t, &sd)

	if err == sql.ErrNoRows {
		return "", "", ErrPhoneNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve phone line: %w", err)
	}
	if !t.Valid || !sd.Valid {
		return "", "", ErrPhoneNotFound
	}

	return t.String, sd.String, nil
}

// ReservePair binds the two oldest free lines to token, the older as yes
// and the next as no. It must run inside the caller's transaction and
// under the caller's reservation lock; the assignment UPDATEs still
// re-check that each line is free so an overlap surfaces as an error
// rather than a silent double-booking.
func (s *Store) ReservePair(tx DBTX, token string) (yes, no models.PhoneLine, err error) {
	free, err := s.listTx(tx, true)
	if err != nil {
		return models.PhoneLine{}, models.PhoneLine{}, err
	}
	if len(free) < 2 {
		return models.PhoneLine{}, models.PhoneLine{}, ErrNotEnoughPhones
	}

	yes, no = free[0], free[1]
	if err := s.assign(tx, yes.Number, token, models.SideYes); err != nil {
		return models.PhoneLine{}, models.PhoneLine{}, err
	}
	if err := s.assign(tx, no.Number, token, models.SideNo); err != nil {
		return models.PhoneLine{}, models.PhoneLine{}, err
	}

	yes.QuestionToken, no.QuestionToken = &token, &token
	y, n := models.SideYes, models.SideNo
	yes.Side, no.Side = &y, &n
	return yes, no, nil
}

// ResetAll clears every assignment, returning the pool to the all-free
// state. Lines themselves survive; only the reset flow uses this.
func (s *Store) ResetAll(tx DBTX) error {
	_, err := tx.Exec(`UPDATE phone_pool SET question_token = NULL, side = NULL`)
	if err != nil {
		return fmt.Errorf("failed to reset phone pool: %w", err)
	}
	return nil
}

func (s *Store) assign(tx DBTX, number, token, side string) error {
	res, err := tx.Exec(`
		UPDATE phone_pool
		SET question_token = $1, side = $2
		WHERE number = $3 AND question_token IS NULL
	`, token, side, number)
	if err != nil {
		return fmt.Errorf("failed to assign phone line %s: %w", number, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to assign phone line %s: %w", number, err)
	}
	if affected != 1 {
		return fmt.Errorf("phone line %s was reserved concurrently", number)
	}
	return nil
}

func (s *Store) get(number string) (models.PhoneLine, error) {
	var line models.PhoneLine
	err := s.db.QueryRow(`
		SELECT number, question_token, side, position
		FROM phone_pool WHERE number = $1
	`, number).Scan(&line.Number, &line.QuestionToken, &line.Side, &line.Position)

	if err == sql.ErrNoRows {
		return models.PhoneLine{}, ErrPhoneNotFound
	}
	if err != nil {
		return models.PhoneLine{}, fmt.Errorf("failed to get phone line: %w", err)
	}
	return line, nil
}

func (s *Store) listTx(db DBTX, freeOnly bool) ([]models.PhoneLine, error) {
	query := `
		SELECT number, question_token, side, position
		FROM phone_pool
	`
	if freeOnly {
		query += ` WHERE question_token IS NULL`
	}
	// number breaks ties: concurrent inserts can land the same position
	query += ` ORDER BY position, number`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query phone pool: %w", err)
	}
	defer rows.Close()

	lines := []models.PhoneLine{}
	for rows.Next() {
		var line models.PhoneLine
		if err := rows.Scan(&line.Number, &line.QuestionToken, &line.Side, &line.Position); err != nil {
			return nil, fmt.Errorf("failed to scan phone line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read phone pool: %w", err)
	}

	return lines, nil
}

// isUniqueViolation recognizes primary-key conflicts from both the
// sqlite and postgres drivers.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
