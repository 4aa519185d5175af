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
	Auth      AuthConfig
	Chat      ChatConfig
	Knowledge KnowledgeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

// APIKeys are only ever read from the environment.
type APIKeys struct {
	GoogleGemini string
	JWTSecret    string
}

type AIConfig struct {
	LLMProvider    string // "gemini" or "ollama"
	LLMModel       string
	OllamaBaseURL  string
	Temperature    float64
	RequestTimeout time.Duration
}

type AuthConfig struct {
	AdminPasswordHash string // bcrypt
	TokenTTL          time.Duration
	LockoutStore      string // "memory" or "redis"
	LockoutThreshold  int
	LockoutDuration   time.Duration
	AttemptDelay      time.Duration
}

type ChatConfig struct {
	HistoryTurns        int
	SessionTTL          time.Duration
	MaxInlineMediaBytes int
	ReciterBaseURL      string
	RegistrationURL     string
}

type KnowledgeConfig struct {
	GroundingContextMaxBytes int
	MaxAudioClipBytes        int
	SnapshotTTL              time.Duration
	EventsSubject            string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:       getEnv("LLM_MODEL", "gemini-2.5-flash"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			RequestTimeout: getEnvAsDuration("LLM_REQUEST_TIMEOUT", 120*time.Second),
		},
		Auth: AuthConfig{
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TokenTTL:          getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
			LockoutStore:      getEnv("LOCKOUT_STORE", "memory"),
			LockoutThreshold:  getEnvAsInt("LOCKOUT_THRESHOLD", 3),
			LockoutDuration:   getEnvAsDuration("LOCKOUT_DURATION", 30*time.Second),
			AttemptDelay:      getEnvAsDuration("LOGIN_ATTEMPT_DELAY", time.Second),
		},
		Chat: ChatConfig{
			HistoryTurns:        getEnvAsInt("CHAT_HISTORY_TURNS", 10),
			SessionTTL:          getEnvAsDuration("CHAT_SESSION_TTL", time.Hour),
			MaxInlineMediaBytes: getEnvAsInt("CHAT_MAX_MEDIA_BYTES", 20*1024*1024),
			ReciterBaseURL:      getEnv("RECITER_BASE_URL", "https://everyayah.com/data/Alafasy_128kbps"),
			RegistrationURL:     getEnv("REGISTRATION_URL", ""),
		},
		Knowledge: KnowledgeConfig{
			GroundingContextMaxBytes: getEnvAsInt("GROUNDING_CONTEXT_MAX_BYTES", 200000),
			MaxAudioClipBytes:        getEnvAsInt("KNOWLEDGE_MAX_AUDIO_BYTES", 500*1024),
			SnapshotTTL:              getEnvAsDuration("KNOWLEDGE_SNAPSHOT_TTL", 5*time.Minute),
			EventsSubject:            getEnv("KNOWLEDGE_EVENTS_SUBJECT", "TAJWID_EVENTS"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
