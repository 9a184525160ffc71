package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is constructed once in main and passed by reference; there is no ambient
// global state.
type Config struct {
	PGHost     string
	PGPort     string
	PGDatabase string
	PGUser     string
	PGPassword string
	PGSSLMode  string

	PagesToScrape int
	HTTPTimeoutMs int

	APIAddr       string
	CSVOutputPath string
	Debug         bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PGHost:     getEnv("PGHOST", "localhost"),
		PGPort:     getEnv("PGPORT", "5432"),
		PGDatabase: getEnv("PGDATABASE", "apartments"),
		PGUser:     getEnv("PGUSER", "postgres"),
		PGPassword: getEnv("PGPASSWORD", ""),
		PGSSLMode:  getEnv("PGSSLMODE", "require"),

		PagesToScrape: getEnvInt("PAGES_TO_SCRAPE", 500),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 10000),

		APIAddr:       getEnv("API_ADDR", ":8080"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/advertisings.csv"),
		Debug:         getEnvBool("DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PGHost +
		" port=" + c.PGPort +
		" user=" + c.PGUser +
		" password=" + c.PGPassword +
		" dbname=" + c.PGDatabase +
		" sslmode=" + c.PGSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
