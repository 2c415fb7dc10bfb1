// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ict4d/voteline/cliparse"
	"github.com/ict4d/voteline/db"
	"github.com/ict4d/voteline/ledger"
	"github.com/ict4d/voteline/middleware"
	"github.com/ict4d/voteline/pool"
	"github.com/ict4d/voteline/router"
	"github.com/ict4d/voteline/tts"
	"github.com/ict4d/voteline/voting"
	"github.com/ict4d/voteline/vxml"
)

func main() {
	var err error

	// A .env is optional; deployed instances use real env variables
	godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Document and audio stores, generator
	store, err := vxml.NewDirStore(cfg.VXMLDir)
	if err != nil {
		slog.Error("document store setup failed", "error", err)
		os.Exit(1)
	}
	audio, err := vxml.NewDirStore(cfg.AudioDir)
	if err != nil {
		slog.Error("audio store setup failed", "error", err)
		os.Exit(1)
	}
	gen := vxml.NewGenerator(store, cfg.BaseURL, cfg.Language)

	// Speech synthesis is optional
	var synth tts.Synthesizer = tts.Disabled{}
	if cfg.OpenAIKey != "" {
		synth, err = tts.NewOpenAI(tts.Config{APIKey: cfg.OpenAIKey})
		if err != nil {
			slog.Error("speech synthesis setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Speech synthesis enabled")
	}

	// Core wiring: pool -> ledger -> coordinator
	phones := pool.New(dbConn)
	questions := ledger.New(dbConn)
	coord := voting.New(dbConn, phones, questions, gen, audio)

	// Regenerate every document so the store matches the ledger even
	// after a crash between commit and write
	if err := coord.RenderAll(); err != nil {
		slog.Error("document regeneration failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(coord, phones, questions, gen, synth, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
