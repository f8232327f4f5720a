package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"steelorders/internal/pkg/password"
	"steelorders/internal/pkg/token"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	JWTSecret           string
	JWTTTL              time.Duration
	BcryptCost          int
	AMQPURL             string
	AMQPExchange        string
	OutboxRelaySchedule string
	OpenAPIValidation   bool
}

// LoadConfig reads the environment. A .env file in the working directory is
// loaded first when present; variables already set win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTTTL:              token.DefaultTTL,
		BcryptCost:          password.DefaultCost,
		AMQPURL:             os.Getenv("AMQP_URL"),
		AMQPExchange:        os.Getenv("AMQP_EXCHANGE"),
		OutboxRelaySchedule: os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OpenAPIValidation:   true,
	}

	var err error
	if v := os.Getenv("JWT_TTL"); v != "" {
		if config.JWTTTL, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("JWT_TTL: %w", err)
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if config.BcryptCost, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
		}
	}
	if v := os.Getenv("OPENAPI_VALIDATION"); v != "" {
		if config.OpenAPIValidation, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("OPENAPI_VALIDATION: %w", err)
		}
	}

	if config.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return config, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
