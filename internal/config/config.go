package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	Neo4jURI       string
	Neo4jUser      string
	Neo4jPassword  string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:       getenv("NOTEHUB_ADDR", ":8080"),
		Neo4jURI:       getenv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:      getenv("NEO4J_USER", "neo4j"),
		Neo4jPassword:  getenv("NEO4J_PASSWORD", "password"),
		JWTSecret:      getenv("NOTEHUB_JWT_SECRET", "dev"),
		TokenTTL:       getenvDuration("NOTEHUB_TOKEN_TTL", 24*time.Hour),
		RequestTimeout: getenvDuration("NOTEHUB_REQUEST_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
