package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB_HOST          string
	DB_PORT          string
	DB_USER          string
	DB_PASSWORD      string
	DB_NAME          string
	ES_URL           string
	ES_USER          string
	ES_PASSWORD      string
	REDIS_ADDR       string
	JWT_SECRET       string
	REFRESH_SECRET   string
	KAFKA_ADDRESS    string
	SENDGRID_API_KEY string
	EMAIL_FROM       string
	PUBLIC_URL       string
	UPLOAD_DIR       string
	SERVER_PORT      int
	LOG_LEVEL        string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:          os.Getenv("DB_HOST"),
		DB_PORT:          os.Getenv("DB_PORT"),
		DB_USER:          os.Getenv("DB_USER"),
		DB_PASSWORD:      os.Getenv("DB_PASSWORD"),
		DB_NAME:          os.Getenv("DB_NAME"),
		ES_URL:           os.Getenv("ES_URL"),
		ES_USER:          os.Getenv("ES_USER"),
		ES_PASSWORD:      os.Getenv("ES_PASSWORD"),
		REDIS_ADDR:       os.Getenv("REDIS_ADDR"),
		JWT_SECRET:       os.Getenv("JWT_SECRET"),
		REFRESH_SECRET:   os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:    os.Getenv("KAFKA_ADDRESS"),
		SENDGRID_API_KEY: os.Getenv("SENDGRID_API_KEY"),
		EMAIL_FROM:       envDefault("EMAIL_FROM", "noreply@chicfit.com"),
		PUBLIC_URL:       envDefault("PUBLIC_URL", "http://localhost:8080"),
		UPLOAD_DIR:       envDefault("UPLOAD_DIR", "uploads"),
		SERVER_PORT:      envIntDefault("SERVER_PORT", 8080),
		LOG_LEVEL:        envDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// DSN assembles the postgres connection string from the discrete DB_* vars.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
