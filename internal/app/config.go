package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultAIBaseURL = "https://generativelanguage.googleapis.com"

// Config carries the optional service credentials. Everything here may be
// empty: the app runs fully offline without a remote store, and the coach
// commands report a clear error when no AI key is set.
type Config struct {
	RemoteURL string
	RemoteKey string
	AIBaseURL string
	AIKey     string
	AIModel   string
}

func (c Config) RemoteConfigured() bool {
	return c.RemoteURL != "" && c.RemoteKey != ""
}

func (c Config) AIConfigured() bool {
	return c.AIKey != ""
}

// LoadConfig reads settings from the environment, layering in a .env file
// from the working directory when one exists. Real environment variables win
// over .env values.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		RemoteURL: getenv("NUTRICOACH_REMOTE_URL"),
		RemoteKey: getenv("NUTRICOACH_REMOTE_KEY"),
		AIBaseURL: getenv("NUTRICOACH_AI_URL"),
		AIKey:     getenv("NUTRICOACH_AI_KEY"),
		AIModel:   getenv("NUTRICOACH_AI_MODEL"),
	}
	if cfg.AIBaseURL == "" {
		cfg.AIBaseURL = defaultAIBaseURL
	}
	return cfg
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
