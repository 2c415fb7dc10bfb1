// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "tts-1"
	DefaultVoice   = "alloy"
	DefaultTimeout = 60 * time.Second
)

// Synthesizer turns a prompt into an audio file at destPath. The voting
// state machine never waits on it; callers fire it on a goroutine and
// log failures.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language, destPath string) error
}

// Config holds settings for the OpenAI speech client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
	Timeout time.Duration
}

// OpenAI synthesizes speech through the OpenAI audio API.
type OpenAI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	voice   string
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

type speechError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAI builds the OpenAI speech client.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tts: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &OpenAI{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		voice:   cfg.Voice,
	}, nil
}

// Synthesize renders text to speech and writes the MP3 to destPath. The
// language tag is folded into the input so the model reads the prompt in
// the target language.
func (o *OpenAI) Synthesize(ctx context.Context, text, language, destPath string) error {
	input := text
	if language != "" && language != "en" {
		input = fmt.Sprintf("Read the following in %s: %s", language, text)
	}

	body, err := json.Marshal(speechRequest{
		Model:          o.model,
		Input:          input,
		Voice:          o.voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return fmt.Errorf("tts: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("tts: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("tts: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr speechError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("tts: API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("tts: API error (%d)", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("tts: failed to create audio directory: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("tts: failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("tts: failed to write %s: %w", destPath, err)
	}
	return nil
}

// Disabled is the synthesizer used when no API key is configured; it
// drops every request.
type Disabled struct{}

func (Disabled) Synthesize(ctx context.Context, text, language, destPath string) error {
	return nil
}
