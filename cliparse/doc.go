// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

# Settings

Required:

  - DATABASE_URL (-d): connection string (sqlite file or postgres URL)

Optional:

  - PORT (-p): server port (default: 8080)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - BASE_URL (-b): public URL documents are linked under
  - VXML_DIR (-vxml-dir): VoiceXML output directory (default: vxml)
  - AUDIO_DIR (-audio-dir): audio output directory (default: audios)
  - LANGUAGE (-lang): default prompt language tag (default: en)
  - OPENAI_API (-openai-key): enables speech synthesis when set

CLI flags take precedence over environment variables.
*/
package cliparse
