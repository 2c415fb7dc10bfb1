package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	BaseURL      string
	VXMLDir      string
	AudioDir     string
	Language     string
	OpenAIKey    string
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("voteline", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "b", "", "Public base URL documents are served under")

	// Artifact layout
	fs.StringVar(&cfg.VXMLDir, "vxml-dir", "", "Directory for generated VoiceXML documents")
	fs.StringVar(&cfg.AudioDir, "audio-dir", "", "Directory for synthesized audio")
	fs.StringVar(&cfg.Language, "lang", "", "Default prompt language tag")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OpenAIKey, "openai-key", "", "OpenAI API key for speech synthesis (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port) + "/"
		}
	}

	if cfg.VXMLDir == "" {
		cfg.VXMLDir = os.Getenv("VXML_DIR")
		if cfg.VXMLDir == "" {
			cfg.VXMLDir = "vxml"
		}
	}
	if cfg.AudioDir == "" {
		cfg.AudioDir = os.Getenv("AUDIO_DIR")
		if cfg.AudioDir == "" {
			cfg.AudioDir = "audios"
		}
	}
	if cfg.Language == "" {
		cfg.Language = os.Getenv("LANGUAGE")
		if cfg.Language == "" {
			cfg.Language = "en"
		}
	}

	// Optional: synthesis is disabled without a key
	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = os.Getenv("OPENAI_API")
	}

	return cfg, nil
}
