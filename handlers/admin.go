// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ict4d/voteline/middleware"
	"github.com/ict4d/voteline/models"
	"github.com/ict4d/voteline/voting"
)

type AdminHandler struct {
	coord *voting.Coordinator
}

func NewAdminHandler(coord *voting.Coordinator) *AdminHandler {
	return &AdminHandler{coord: coord}
}

// Reset handles POST /api/reset
//
// Destructive: drops every question, frees every phone line, and wipes
// the document store before rewriting the bare home menu.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.coord.Reset(); err != nil {
		slog.Error("reset failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Reset failed")
		return
	}

	slog.Info("service reset")

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{Message: "cleaned"})
}
