package config

import (
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	OpenAI    OpenAIConfig
	Converter ConverterConfig
	Auth      AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type OpenAIConfig struct {
	BaseURL               string
	APIKey                string
	Model                 string
	SharedVectorStoreName string
}

type ConverterConfig struct {
	BaseURL string
}

type AuthConfig struct {
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AllowedEmails      []string
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

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
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		OpenAI: OpenAIConfig{
			BaseURL:               getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:                getEnv("OPENAI_API_KEY", ""),
			Model:                 getEnv("OPENAI_MODEL", "gpt-4o"),
			SharedVectorStoreName: getEnv("SHARED_VECTOR_STORE_NAME", "Shared files"),
		},
		Converter: ConverterConfig{
			BaseURL: getEnv("DOC_CONVERTER_URL", "http://localhost:8100"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/auth/google/callback"),
			AllowedEmails:      getEnvAsEmailList("ALLOWED_EMAILS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsEmailList parses a comma-separated email allow-list. A malformed
// entry aborts startup since a typo would silently lock the owner out.
func getEnvAsEmailList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, part := range parts {
		email := strings.TrimSpace(part)
		if email == "" {
			continue
		}
		if !emailPattern.MatchString(email) {
			log.Fatalf("Invalid email in %s: %q", key, email)
		}
		emails = append(emails, strings.ToLower(email))
	}
	return emails
}
