// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Vote side constants
const (
	SideYes = "yes"
	SideNo  = "no"
)

// Request types

type CreateQuestionRequest struct {
	Prompt string `json:"prompt"`
}

// Response types

type SynthesizeResponse struct {
	Token    string `json:"token"`
	Language string `json:"language"`
	AudioURL string `json:"audio_url"`
	Message  string `json:"message"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

// Domain types

// PhoneLine is a dialable number managed by the pool. QuestionToken and
// Side are both nil while the line is free and both set once the line is
// reserved for a question.
type PhoneLine struct {
	Number        string  `json:"number"`
	QuestionToken *string `json:"question_token,omitempty"`
	Side          *string `json:"side,omitempty"`
	Position      int64   `json:"-"` // insertion order, drives stable allocation
}

// Free reports whether the line is not bound to any question.
func (p PhoneLine) Free() bool {
	return p.QuestionToken == nil
}

// Question is a binary-choice voting record. YesPhone and NoPhone are the
// two distinct lines reserved for it; the counts only ever grow.
type Question struct {
	Token       string `json:"token"`
	Prompt      string `json:"prompt"`
	YesPhone    string `json:"yes_phone"`
	NoPhone     string `json:"no_phone"`
	YesCount    int64  `json:"yes_count"`
	NoCount     int64  `json:"no_count"`
	ArtifactURL string `json:"artifact_url"`
	Position    int64  `json:"-"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
