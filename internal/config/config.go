package config

import (
	"os"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	StorageBucket   string
	CORSOrigins     string
	TablePrefix     string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: supabaseURL + "/auth/v1/.well-known/jwks.json",
		StorageBucket:   getEnv("STORAGE_BUCKET", "homeground-public"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
