package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"applicant-records/pkg/secrets"
	"applicant-records/pkg/validation"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const (
	defaultPort           = "3001"
	defaultMongoDatabase  = "test"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxBodyBytes   = 1 << 20
)

// Server captures everything the process reads from its environment.
type Server struct {
	Addr           string        `env:"ADDR" validate:"required"`
	Environment    string        `env:"ENVIRONMENT"`
	LogLevel       slog.Level    `env:"LOG_LEVEL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" validate:"gt=0"`

	StoreDriver   string `env:"STORE_DRIVER" validate:"oneof=mongo postgres memory"`
	MongoURI      string `env:"MONGO_URI" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string `env:"MONGO_DATABASE"`
	DatabaseURL   string `env:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`

	APIKey     string `env:"API_KEY"`
	APIKeyHash string `env:"API_KEY_HASH"`
}

var (
	ErrMissingAPIKey = errors.New("one of API_KEY or API_KEY_HASH must be set")
	ErrMalformedHash = errors.New("API_KEY_HASH is not a bcrypt hash")
)

// Load reads an optional .env file and then builds the Server config from
// the environment. Values already in the environment win over .env.
func Load() (Server, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	port := getEnv("PORT", defaultPort)
	cfg := Server{
		Addr:          getEnv("ADDR", ":"+port),
		Environment:   getEnv("ENVIRONMENT", "development"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: os.Getenv("MONGO_DATABASE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIKey:        os.Getenv("API_KEY"),
		APIKeyHash:    os.Getenv("API_KEY_HASH"),
	}

	var err error
	if cfg.MongoDatabase == "" {
		if cfg.MongoDatabase, err = databaseFromURI(cfg.MongoURI); err != nil {
			return Server{}, err
		}
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", defaultRequestTimeout); err != nil {
		return Server{}, err
	}
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", defaultMaxBodyBytes); err != nil {
		return Server{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Server{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that some credential is configured.
func (c Server) Validate() error {
	if err := validation.Validate(&c); err != nil {
		return err
	}
	switch {
	case c.APIKey == "" && c.APIKeyHash == "":
		return ErrMissingAPIKey
	case c.APIKeyHash != "" && !secrets.IsHash(c.APIKeyHash):
		return ErrMalformedHash
	}
	return nil
}

// databaseFromURI returns the database named in a MongoDB connection string,
// or "test" when the string names none.
func databaseFromURI(uri string) (string, error) {
	if uri == "" {
		return defaultMongoDatabase, nil
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("MONGO_URI: %w", err)
	}
	if cs.Database == "" {
		return defaultMongoDatabase, nil
	}
	return cs.Database, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
