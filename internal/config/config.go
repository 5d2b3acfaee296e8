package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Dictation DictationConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	ErrorLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SnapshotTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	Provider       string // "gemini" or "ollama"
	Model          string // e.g. "gemini-2.0-flash", "llama3"
	OllamaBaseURL  string
	RequestTimeout time.Duration
}

type DictationConfig struct {
	AudioWindowSeconds int
	AudioSampleRate    int
	AudioChannels      int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ErrorLogFilePath:   getEnv("ERROR_LOG_FILE_PATH", "logs/dictation_errors.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SnapshotTopic:      getEnv("DOCUMENT_SNAPSHOT_TOPIC_NAME", "DOCUMENT_SNAPSHOT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			Provider:       getEnv("LLM_PROVIDER", "gemini"),
			Model:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RequestTimeout: time.Duration(getEnvAsInt("LLM_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Dictation: DictationConfig{
			AudioWindowSeconds: getEnvAsInt("AUDIO_WINDOW_SECONDS", 5),
			AudioSampleRate:    getEnvAsInt("AUDIO_SAMPLE_RATE", 16000),
			AudioChannels:      getEnvAsInt("AUDIO_CHANNELS", 1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
