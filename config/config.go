package config

import (
	"os"
)

// FromEnv fills in settings that were not provided via the yaml file or
// command line flags.
func FromEnv() *AppConfig {
	return &AppConfig{
		Pling: PlingConfig{
			Server: getEnv("PLING_SERVER", ""),
			ApiKey: getEnv("PLING_API_KEY", ""),
			Locale: getEnv("PLING_LOCALE", ""),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnv("POSTGRES_NAME", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
