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
	Search    SearchConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IndexTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type SearchConfig struct {
	// Provider picks the search backend: "elastic" or "pgvector".
	Provider   string
	URL        string
	Index      string
	Dimensions int
}

type AIConfig struct {
	EmbeddingProvider string // "dashscope" or "ollama"
	DashscopeAPIKey   string
	DashscopeBaseURL  string
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "qwen", "deepseek" or "ollama"
	LLMAPIKey         string
	LLMBaseURL        string
	LLMModel          string
	EmbedCacheTTL     time.Duration
}

type RetrievalConfig struct {
	Threshold        float64
	TopK             int
	TextBoost        float64
	VectorBoost      float64
	TieBreaker       float64
	HistoryRetention time.Duration
	SweepInterval    time.Duration
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IndexTopic:         getEnv("QA_INDEX_TOPIC_NAME", "INDEX_QA_PAIR"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Search: SearchConfig{
			Provider:   getEnv("SEARCH_PROVIDER", "elastic"),
			URL:        getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			Index:      getEnv("SEARCH_INDEX", "qa_vectors"),
			Dimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 512),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "dashscope"),
			DashscopeAPIKey:   getEnv("DASHSCOPE_API_KEY", ""),
			DashscopeBaseURL:  getEnv("DASHSCOPE_BASE_URL", ""),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-v3"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "qwen"),
			LLMAPIKey:         getEnv("LLM_API_KEY", ""),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMModel:          getEnv("LLM_MODEL", "qwen-plus"),
			EmbedCacheTTL:     getEnvAsDuration("EMBED_CACHE_TTL", time.Hour),
		},
		Retrieval: RetrievalConfig{
			Threshold:        getEnvAsFloat("RETRIEVAL_SCORE_THRESHOLD", 1.8),
			TopK:             getEnvAsInt("RETRIEVAL_TOP_K", 5),
			TextBoost:        getEnvAsFloat("RETRIEVAL_TEXT_BOOST", 0.3),
			VectorBoost:      getEnvAsFloat("RETRIEVAL_VECTOR_BOOST", 0.7),
			TieBreaker:       getEnvAsFloat("RETRIEVAL_TIE_BREAKER", 0.3),
			HistoryRetention: getEnvAsDuration("HISTORY_RETENTION", 24*time.Hour),
			SweepInterval:    getEnvAsDuration("HISTORY_SWEEP_INTERVAL", time.Hour),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
