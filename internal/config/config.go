package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/krishisahay/backend/internal/inference"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port           string
	Inference      inference.Config
	UploadEndpoint string

	// QuizAdvanceMs is how long the answer reveal stays on screen before
	// the session advances to the next question.
	QuizAdvanceMs int
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port: getEnv("PORT", "8080"),
		Inference: inference.Config{
			Provider:        getEnv("INFERENCE_PROVIDER", "gemini"),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getEnv("ANTHROPIC_MODEL", ""),
			TimeoutMs:       getEnvInt("INFERENCE_TIMEOUT_MS", 60000),
			MaxAttempts:     getEnvInt("INFERENCE_MAX_ATTEMPTS", 2),
		},
		UploadEndpoint: getEnv("UPLOAD_ENDPOINT", ""),
		QuizAdvanceMs:  getEnvInt("QUIZ_ADVANCE_MS", 1500),
	}

	if getEnv("MOCK_INFERENCE", "false") == "true" {
		cfg.Inference.Provider = "mock"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("WARN: invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}
