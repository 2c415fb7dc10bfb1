// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ict4d/voteline/ledger"
	"github.com/ict4d/voteline/models"
	"github.com/ict4d/voteline/pool"
	"github.com/ict4d/voteline/vxml"
)

// Coordinator ties the phone pool, the question ledger, and the document
// generator together: it turns a dialed number into a committed tally
// update and fresh documents, and runs the question-creation and reset
// flows. audio holds the synthesized prompts; reset wipes it along with
// the documents.
type Coordinator struct {
	db        *sql.DB
	phones    *pool.Store
	questions *ledger.Ledger
	gen       *vxml.Generator
	audio     vxml.Store

	// mu serializes reservation and reset. It must span the whole
	// transaction up to commit: until the reservation commits, a second
	// transaction would still see the same lines as free.
	mu sync.Mutex
}

func New(db *sql.DB, phones *pool.Store, questions *ledger.Ledger, gen *vxml.Generator, audio vxml.Store) *Coordinator {
	return &Coordinator{db: db, phones: phones, questions: questions, gen: gen, audio: audio}
}

// CastVote resolves a dialed number to its question and side, commits
// the increment, and regenerates the question's document from the fresh
// tallies. A number that is unknown or free is a silent no-op and
// returns (nil, nil): the IVR gateway only hands out bound numbers, so
// an unresolved vote is noise, not an error.
//
// The returned question is non-nil even when the document write failed -
// the tally is committed and document regeneration is retryable.
func (c *Coordinator) CastVote(number string) (*models.Question, error) {
	token, side, err := c.phones.Resolve(number)
	if errors.Is(err, pool.ErrPhoneNotFound) {
		slog.Info("vote on unassigned number dropped", "number", number)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	q, err := c.questions.IncrementVote(token, side)
	if err != nil {
		return nil, err
	}

	slog.Info("vote counted", "token", token, "side", side, "yes", q.YesCount, "no", q.NoCount)

	if err := c.gen.WriteQuestionPrompt(q); err != nil {
		return &q, err
	}
	return &q, nil
}

// CreateQuestion reserves the two oldest free lines and creates the
// question as one atomic step: both run in a single transaction under
// the reservation lock, so a ledger failure rolls the reservation back
// and no partial question can exist. Document rendering happens after
// commit; a render failure is reported but the question stands.
func (c *Coordinator) CreateQuestion(prompt string) (models.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := uuid.NewString()

	tx, err := c.db.Begin()
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	yes, no, err := c.phones.ReservePair(tx, token)
	if err != nil {
		return models.Question{}, err
	}

	q, err := c.questions.Create(tx, token, prompt, yes.Number, no.Number, c.gen.QuestionURL(token))
	if err != nil {
		return models.Question{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Question{}, fmt.Errorf("failed to commit question creation: %w", err)
	}

	slog.Info("question created", "token", token, "yes_phone", yes.Number, "no_phone", no.Number)

	if err := c.gen.WriteQuestionPrompt(q); err != nil {
		return q, err
	}
	if err := c.writeHomeMenu(); err != nil {
		return q, err
	}
	return q, nil
}

// Reset clears every assignment, removes all questions, and wipes both
// artifact stores (documents and synthesized audio), then rewrites the
// bare home menu and the greetings for the surviving (now free) lines.
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := c.phones.ResetAll(tx); err != nil {
		return err
	}
	if err := c.questions.Clear(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}

	slog.Info("pool and ledger reset")

	if err := c.gen.Clear(); err != nil {
		return err
	}
	if err := c.audio.RemoveAll(); err != nil {
		return fmt.Errorf("%w: %v", vxml.ErrWriteFailed, err)
	}
	return c.RenderAll()
}

// RenderAll regenerates every document from current state: the home
// menu, each question's prompt, and each line's greeting. It is the
// retry path after a failed write and runs at startup so the document
// store always matches the ledger.
func (c *Coordinator) RenderAll() error {
	if err := c.writeHomeMenu(); err != nil {
		return err
	}

	questions, err := c.questions.ListAll()
	if err != nil {
		return err
	}
	for _, q := range questions {
		if err := c.gen.WriteQuestionPrompt(q); err != nil {
			return err
		}
	}

	lines, err := c.phones.List()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := c.gen.WritePhoneGreeting(line.Number); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) writeHomeMenu() error {
	questions, err := c.questions.ListAll()
	if err != nil {
		return err
	}
	return c.gen.WriteHomeMenu(questions)
}
