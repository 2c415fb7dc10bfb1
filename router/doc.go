// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method routing.

# Routes

Phone pool:

	POST /api/phones/{number}  - provision a line
	GET  /api/phones           - list all lines
	GET  /api/phones/free      - list unassigned lines

Questions and voting:

	POST /api/questions                          - create a question
	GET  /api/questions                          - list questions
	GET  /api/questions/{token}                  - fetch one question
	POST /api/questions/{token}/audio/{language} - synthesize the prompt
	GET  /api/vote/{number}                      - cast a vote

Admin:

	POST /api/reset - destructive bulk reset

Document hosting for the IVR gateway:

	GET /vxml/{file}   - generated VoiceXML
	GET /audios/{file} - synthesized audio
*/
package router
