package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	Environment string
	AutoMigrate bool
}

// Load lee .env (si existe) y variables de entorno, y valida lo mínimo indispensable.
// Las variables del entorno tienen prioridad sobre el .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("AUTO_MIGRATE", true)
	v.AutomaticEnv()

	// Normalizamos por si alguien manda ":8080"
	port := strings.TrimPrefix(strings.TrimSpace(v.GetString("PORT")), ":")
	if port == "" {
		port = "8080"
	}

	databaseURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, errors.New("missing required env var: DATABASE_URL")
	}

	return Config{
		Port:        port,
		DatabaseURL: databaseURL,
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:   strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		Environment: strings.TrimSpace(v.GetString("APP_ENV")),
		AutoMigrate: v.GetBool("AUTO_MIGRATE"),
	}, nil
}
