package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Speech   SpeechConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port                 string
	BaseURL              string
	Environment          string
	LogFilePath          string
	AuditLogFilePath     string
	CorsAllowedOrigins   string
	JWTSecret            string
	NatsURL              string
	RedisURL             string
	SweepIntervalMinutes int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "gemini"
	LLMModel      string // e.g. "llama3", "gemini-2.0-flash"
	OllamaBaseURL string
	GeminiAPIKey  string
}

type SpeechConfig struct {
	BaseURL  string
	AudioDir string
}

type TopicConfig struct {
	SweepUser string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                 getEnv("APP_PORT", "3000"),
			BaseURL:              getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:          getEnv("GO_ENV", "development"),
			LogFilePath:          getEnv("LOG_FILE_PATH", "app.log.csv"),
			AuditLogFilePath:     getEnv("AUDIT_LOG_FILE_PATH", "logs/retention_audit.log"),
			CorsAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:            getEnv("JWT_SECRET", ""),
			NatsURL:              getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
			SweepIntervalMinutes: getEnvAsInt("SWEEP_INTERVAL_MINUTES", 60),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		},
		Speech: SpeechConfig{
			BaseURL:  getEnv("TTS_BASE_URL", "http://localhost:5002"),
			AudioDir: getEnv("TTS_AUDIO_DIR", "./uploads/audio"),
		},
		Topics: TopicConfig{
			SweepUser: getEnv("SWEEP_USER_TOPIC_NAME", "SWEEP_USER_HISTORY"),
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
