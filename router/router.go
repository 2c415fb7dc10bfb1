// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/ict4d/voteline/cliparse"
	"github.com/ict4d/voteline/handlers"
	"github.com/ict4d/voteline/ledger"
	"github.com/ict4d/voteline/middleware"
	"github.com/ict4d/voteline/pool"
	"github.com/ict4d/voteline/tts"
	"github.com/ict4d/voteline/voting"
	"github.com/ict4d/voteline/vxml"
)

func NewRouter(coord *voting.Coordinator, phones *pool.Store, questions *ledger.Ledger, gen *vxml.Generator, synth tts.Synthesizer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	phoneHandler := handlers.NewPhoneHandler(phones, gen)
	questionHandler := handlers.NewQuestionHandler(coord, questions, gen, synth, cfg)
	adminHandler := handlers.NewAdminHandler(coord)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Phone pool management
	mux.HandleFunc("POST /api/phones/{number}", middleware.WithLogging(phoneHandler.AddPhone))
	mux.HandleFunc("GET /api/phones", middleware.WithLogging(phoneHandler.ListPhones))
	mux.HandleFunc("GET /api/phones/free", middleware.WithLogging(phoneHandler.ListFreePhones))

	// Questions and voting
	mux.HandleFunc("POST /api/questions", middleware.WithLogging(questionHandler.CreateQuestion))
	mux.HandleFunc("GET /api/questions", middleware.WithLogging(questionHandler.ListQuestions))
	mux.HandleFunc("GET /api/questions/{token}", middleware.WithLogging(questionHandler.GetQuestion))
	mux.HandleFunc("POST /api/questions/{token}/audio/{language}", middleware.WithLogging(questionHandler.Synthesize))
	mux.HandleFunc("GET /api/vote/{number}", middleware.WithLogging(questionHandler.CastVote))

	// Destructive reset
	mux.HandleFunc("POST /api/reset", middleware.WithLogging(adminHandler.Reset))

	// Generated document hosting for the IVR gateway
	mux.Handle("GET /vxml/", http.StripPrefix("/vxml/", http.FileServer(http.Dir(cfg.VXMLDir))))
	mux.Handle("GET /audios/", http.StripPrefix("/audios/", http.FileServer(http.Dir(cfg.AudioDir))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteline API v1"))
	})

	return mux
}
