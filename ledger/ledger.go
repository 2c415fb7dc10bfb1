// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ict4d/voteline/models"
	"github.com/ict4d/voteline/pool"
)

var (
	ErrDuplicateToken   = errors.New("question token already exists")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSamePhone        = errors.New("yes and no phone must differ")
	ErrUnknownSide      = errors.New("unknown vote side")
)

const questionColumns = `token, prompt, yes_phone, no_phone, yes_count, no_count, artifact_url, position`

// Ledger holds the question records and their tallies.
type Ledger struct {
	db *sql.DB
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Create inserts a new question with zero tallies. It runs inside the
// caller's transaction so a failed creation also rolls back the phone
// reservation made moments earlier.
func (l *Ledger) Create(tx pool.DBTX, token, prompt, yesPhone, noPhone, artifactURL string) (models.Question, error) {
	if yesPhone == noPhone {
		return models.Question{}, ErrSamePhone
	}

	_, err := tx.Exec(`
		INSERT INTO question (token, prompt, yes_phone, no_phone, yes_count, no_count, artifact_url, position)
		VALUES ($1, $2, $3, $4, 0, 0, $5, (SELECT COALESCE(MAX(q.position), 0) + 1 FROM question q))
	`, token, prompt, yesPhone, noPhone, artifactURL)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Question{}, ErrDuplicateToken
		}
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}

	return models.Question{
		Token:       token,
		Prompt:      prompt,
		YesPhone:    yesPhone,
		NoPhone:     noPhone,
		ArtifactURL: artifactURL,
	}, nil
}

// Get returns the question for a token.
func (l *Ledger) Get(token string) (models.Question, error) {
	var q models.Question
	err := l.db.QueryRow(`
		SELECT `+questionColumns+` FROM question WHERE token = $1
	`, token).Scan(&q.Token, &q.Prompt, &q.YesPhone, &q.NoPhone, &q.YesCount, &q.NoCount, &q.ArtifactURL, &q.Position)

	if err == sql.ErrNoRows {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question: %w", err)
	}
	return q, nil
}

// IncrementVote adds one vote to the given side and returns the fresh
// tallies. The increment is a single UPDATE so the database performs the
// fetch-and-add; two concurrent votes on the same token can never lose an
// update the way a read-then-write sequence would.
func (l *Ledger) IncrementVote(token, side string) (models.Question, error) {
	var column string
	switch side {
	case models.SideYes:
		column = "yes_count"
	case models.SideNo:
		column = "no_count"
	default:
		return models.Question{}, ErrUnknownSide
	}

	var q models.Question
	err := l.db.QueryRow(`
		UPDATE question SET `+column+` = `+column+` + 1
		WHERE token = $1
		RETURNING `+questionColumns+`
	`, token).Scan(&q.Token, &q.Prompt, &q.YesPhone, &q.NoPhone, &q.YesCount, &q.NoCount, &q.ArtifactURL, &q.Position)

	if err == sql.ErrNoRows {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to increment vote: %w", err)
	}
	return q, nil
}

// ListAll returns every question in creation order.
func (l *Ledger) ListAll() ([]models.Question, error) {
	rows, err := l.db.Query(`
		SELECT ` + questionColumns + ` FROM question ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.Token, &q.Prompt, &q.YesPhone, &q.NoPhone, &q.YesCount, &q.NoCount, &q.ArtifactURL, &q.Position); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	return questions, nil
}

// Clear removes every question. Bulk reset only.
func (l *Ledger) Clear(tx pool.DBTX) error {
	_, err := tx.Exec(`DELETE FROM question`)
	if err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
