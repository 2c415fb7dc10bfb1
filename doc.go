// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Voteline API server.

Voteline runs a phone-based binary voting service: each question gets a
pair of phone lines, callers dial one line to vote yes and the other to
vote no, and the service regenerates the VoiceXML documents an IVR
gateway plays back so prompts always reflect the current tally.

# Starting the Server

The server reads configuration from environment variables (a local .env
is honored) or CLI flags:

	DATABASE_URL=votes.db go run main.go

Or with flags:

	go run main.go -p 8080 -d votes.db -t sqlite -b https://example.org/

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or postgres connection string

Optional settings:

  - PORT (-p): server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (-b): public URL generated documents are linked under
  - VXML_DIR, AUDIO_DIR: artifact directories (default: vxml, audios)
  - LANGUAGE (-lang): default prompt language (default: en)
  - OPENAI_API: enables prompt speech synthesis

# Architecture

The server uses a handler-based architecture with dependency injection:

  - pool: phone line pool and pair allocation
  - ledger: question records and atomic vote tallies
  - voting: coordinator tying votes, creation, and reset together
  - vxml: VoiceXML document generation and atomic storage
  - tts: fire-and-forget speech synthesis
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain and request/response types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
