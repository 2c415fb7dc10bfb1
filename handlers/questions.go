// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/ict4d/voteline/cliparse"
	"github.com/ict4d/voteline/ledger"
	"github.com/ict4d/voteline/middleware"
	"github.com/ict4d/voteline/models"
	"github.com/ict4d/voteline/pool"
	"github.com/ict4d/voteline/tts"
	"github.com/ict4d/voteline/voting"
	"github.com/ict4d/voteline/vxml"
)

// synthesisTimeout bounds the detached text-to-speech call.
const synthesisTimeout = 2 * time.Minute

type QuestionHandler struct {
	coord     *voting.Coordinator
	questions *ledger.Ledger
	gen       *vxml.Generator
	synth     tts.Synthesizer
	cfg       cliparse.Config
}

func NewQuestionHandler(coord *voting.Coordinator, questions *ledger.Ledger, gen *vxml.Generator, synth tts.Synthesizer, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{coord: coord, questions: questions, gen: gen, synth: synth, cfg: cfg}
}

// CreateQuestion handles POST /api/questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Prompt == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "prompt is required")
		return
	}

	q, err := h.coord.CreateQuestion(req.Prompt)
	if errors.Is(err, pool.ErrNotEnoughPhones) {
		middleware.ErrorResponse(w, http.StatusConflict, "Not enough free phone lines (need 2)")
		return
	}
	if errors.Is(err, ledger.ErrSamePhone) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question cannot use the same phone for both sides")
		return
	}
	if errors.Is(err, vxml.ErrWriteFailed) {
		// The question and its phone pair are committed; only the
		// documents are stale.
		slog.Error("question created but document write failed", "error", err, "token", q.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Question created but document write failed")
		return
	}
	if err != nil {
		slog.Error("failed to create question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	h.synthesize(q, h.cfg.Language)

	middleware.JSONResponse(w, http.StatusCreated, q)
}

// ListQuestions handles GET /api/questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.ListAll()
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// GetQuestion handles GET /api/questions/{token}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	q, err := h.questions.Get(token)
	if errors.Is(err, ledger.ErrQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// CastVote handles GET /api/vote/{number}
//
// A number that is unknown or not bound to a question is a silent no-op:
// the gateway only dials out bound numbers, so there is nothing to tell
// the caller. 204 keeps it distinct from a counted vote.
func (h *QuestionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "number is required")
		return
	}

	q, err := h.coord.CastVote(number)
	if errors.Is(err, vxml.ErrWriteFailed) {
		slog.Error("vote counted but document write failed", "error", err, "number", number)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Vote counted but document write failed")
		return
	}
	if err != nil {
		slog.Error("failed to cast vote", "error", err, "number", number)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}
	if q == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// Synthesize handles POST /api/questions/{token}/audio/{language}
func (h *QuestionHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	language := r.PathValue("language")
	if token == "" || language == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token and language are required")
		return
	}

	q, err := h.questions.Get(token)
	if errors.Is(err, ledger.ErrQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.synthesize(q, language)

	middleware.JSONResponse(w, http.StatusAccepted, models.SynthesizeResponse{
		Token:    q.Token,
		Language: language,
		AudioURL: h.gen.AudioURLFor(q.Token, language),
		Message:  "Synthesis started",
	})
}

// synthesize kicks off text-to-speech in the background. The voting
// state machine never waits on audio; failures are logged and the next
// synthesis request simply overwrites the file.
func (h *QuestionHandler) synthesize(q models.Question, language string) {
	dest := filepath.Join(h.cfg.AudioDir, vxml.AudioName(q.Token, language))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
		defer cancel()

		if err := h.synth.Synthesize(ctx, q.Prompt, language, dest); err != nil {
			slog.Warn("speech synthesis failed", "error", err, "token", q.Token, "language", language)
			return
		}
		slog.Info("speech synthesized", "token", q.Token, "language", language)
	}()
}
