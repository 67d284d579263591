package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	OpenAIApiKey  string
	OpenAIApiURL  string
	OpenAIModel   string
	OpenAITimeout int // seconds

	PerplexityApiKey  string
	PerplexityApiURL  string
	PerplexityModel   string
	PerplexityTimeout int // seconds

	YahooFinanceApiURL string
	WorldBankApiURL    string

	BriefHourUTC  int // daily brief generation hour (UTC)
	QuizQuestions int // questions generated per sector per day
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "5000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "watchtower"),

		OpenAIApiKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIApiURL:  getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAITimeout: getEnvInt("OPENAI_TIMEOUT_SECONDS", 60),

		PerplexityApiKey:  getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityApiURL:  getEnv("PERPLEXITY_API_URL", "https://api.perplexity.ai"),
		PerplexityModel:   getEnv("PERPLEXITY_MODEL", "sonar-pro"),
		PerplexityTimeout: getEnvInt("PERPLEXITY_TIMEOUT_SECONDS", 90),

		YahooFinanceApiURL: getEnv("YAHOO_FINANCE_API_URL", "https://query1.finance.yahoo.com"),
		WorldBankApiURL:    getEnv("WORLD_BANK_API_URL", "https://api.worldbank.org/v2"),

		BriefHourUTC:  getEnvInt("BRIEF_HOUR_UTC", 6),
		QuizQuestions: getEnvInt("QUIZ_QUESTIONS_PER_DAY", 5),
	}

	// Validate critical configuration
	if AppConfig.OpenAIApiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set. Brief generation will use fallback content.")
	}
	if AppConfig.PerplexityApiKey == "" {
		log.Println("Warning: PERPLEXITY_API_KEY is not set. Research step will use fallback content.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
