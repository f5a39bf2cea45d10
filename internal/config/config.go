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
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI  string
	SerpAPI string
}

type AIConfig struct {
	LLMProvider string // "openai"
	LLMModel    string // e.g. "gpt-4o"
}

type SearchConfig struct {
	// ProxyURL is prepended to crawl targets to sidestep restrictive
	// origin policies. Empty means crawl directly.
	ProxyURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "PersonaChat"),
		},
		Keys: APIKeys{
			OpenAI:  getEnv("OPENAI_API_KEY", ""),
			SerpAPI: getEnv("SERPAPI_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "openai"),
			LLMModel:    getEnv("LLM_MODEL", "gpt-4o"),
		},
		Search: SearchConfig{
			ProxyURL: getEnv("CORS_PROXY_URL", ""),
		},
	}
}

// Validate aborts startup on config the server cannot run without.
func (c *Config) Validate() {
	if c.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is required")
	}
	if c.Keys.OpenAI == "" {
		log.Fatal("OPENAI_API_KEY is required")
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
