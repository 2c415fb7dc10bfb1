// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateQuestionRequest: prompt

# Response Types

Types for JSON responses:

  - SynthesizeResponse: token, language, audio_url, message
  - ResetResponse: message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - PhoneLine: a dialable number, free or bound to one question and side
  - Question: a binary-choice record with yes/no phone pair and tallies

# Constants

Vote sides:

	SideYes = "yes"
	SideNo  = "no"
*/
package models
