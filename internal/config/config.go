package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	JWKSURL     string
	// LLM Configuration
	AnthropicAPIKey string
	DefaultProvider string
	DefaultModel    string
	// Plan refinement
	MaxRefinementIterations int
	// Mapping policy overlay (optional YAML file)
	MappingPolicyFile string
	// Component catalog overlay (optional YAML file)
	ComponentCatalogFile string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		JWKSURL:     getEnv("JWKS_URL", ""),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "anthropic"),
		DefaultModel:    getEnv("DEFAULT_MODEL", "claude-haiku-4-5-20251001"),

		MaxRefinementIterations: getEnvInt("MAX_REFINEMENT_ITERATIONS", DefaultMaxRefinementIterations),
		MappingPolicyFile:       getEnv("MAPPING_POLICY_FILE", ""),
		ComponentCatalogFile:    getEnv("COMPONENT_CATALOG_FILE", ""),

		// Debug defaults on outside production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment, so dev,
// test, and prod can share one database without colliding.
func getTablePrefix(env string) string {
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
