// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ict4d/voteline/middleware"
	"github.com/ict4d/voteline/pool"
	"github.com/ict4d/voteline/vxml"
)

type PhoneHandler struct {
	phones *pool.Store
	gen    *vxml.Generator
}

func NewPhoneHandler(phones *pool.Store, gen *vxml.Generator) *PhoneHandler {
	return &PhoneHandler{phones: phones, gen: gen}
}

// AddPhone handles POST /api/phones/{number}
func (h *PhoneHandler) AddPhone(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "number is required")
		return
	}

	line, err := h.phones.Add(number)
	if errors.Is(err, pool.ErrDuplicatePhone) {
		middleware.ErrorResponse(w, http.StatusConflict, "Phone line already exists")
		return
	}
	if err != nil {
		slog.Error("failed to add phone line", "error", err, "number", number)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add phone line")
		return
	}

	// A missing greeting only degrades playback; the line itself is
	// provisioned, so report success and let RenderAll catch up later.
	if err := h.gen.WritePhoneGreeting(number); err != nil {
		slog.Warn("failed to write phone greeting", "error", err, "number", number)
	}

	slog.Info("phone line added", "number", number)

	middleware.JSONResponse(w, http.StatusCreated, line)
}

// ListPhones handles GET /api/phones
func (h *PhoneHandler) ListPhones(w http.ResponseWriter, r *http.Request) {
	lines, err := h.phones.List()
	if err != nil {
		slog.Error("failed to list phone lines", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, lines)
}

// ListFreePhones handles GET /api/phones/free
func (h *PhoneHandler) ListFreePhones(w http.ResponseWriter, r *http.Request) {
	lines, err := h.phones.ListFree()
	if err != nil {
		slog.Error("failed to list free phone lines", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, lines)
}
