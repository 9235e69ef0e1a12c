package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/beast-watch/api-go/storage"
	"github.com/beast-watch/api-go/validation"
)

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	Port         string
	Env          string
	Locale       string
	StoreBackend storage.Backend
	Database     DatabaseConfig
	JWT          JWTConfig
	Validation   validation.Rules
	DynamoDB     DynamoDBConfig
	Bootstrap    ReviewerBootstrap
}

// DatabaseConfig holds postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds reviewer token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// DynamoDBConfig holds the DynamoDB backend settings.
type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	MasterTable     string
	PublishedTable  string
}

// ReviewerBootstrap is an optional reviewer account created at startup.
type ReviewerBootstrap struct {
	Email    string
	Password string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	// Might be in production without .env file
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_locale", "en")
	v.SetDefault("app_timezone", "UTC")
	v.SetDefault("store_backend", string(storage.BackendPostgres))
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("jwt_ttl", "168h")
	v.SetDefault("animal_types", strings.Join(validation.DefaultAnimalTypes, ","))
	v.SetDefault("sighting_max_past_years", validation.DefaultMaxPastYears)
	v.SetDefault("note_max_length", validation.DefaultMaxNoteLength)
	v.SetDefault("aws_region", "ap-northeast-1")
	v.SetDefault("dynamodb_master_table", "sightings_master")
	v.SetDefault("dynamodb_published_table", "sightings_published")

	timezone := v.GetString("app_timezone")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE %q is not a known time zone: %w", timezone, err)
	}

	cfg := &Config{
		Port:         v.GetString("port"),
		Env:          v.GetString("app_env"),
		Locale:       v.GetString("app_locale"),
		StoreBackend: storage.Backend(strings.ToLower(v.GetString("store_backend"))),
		Database: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			TTL:    v.GetDuration("jwt_ttl"),
		},
		Validation: validation.Rules{
			AnimalTypes:   splitList(v.GetString("animal_types")),
			MaxPastYears:  v.GetInt("sighting_max_past_years"),
			MaxNoteLength: v.GetInt("note_max_length"),
			Location:      location,
		},
		DynamoDB: DynamoDBConfig{
			Region:          v.GetString("aws_region"),
			Endpoint:        v.GetString("dynamodb_endpoint"),
			AccessKeyID:     v.GetString("aws_access_key_id"),
			SecretAccessKey: v.GetString("aws_secret_access_key"),
			MasterTable:     v.GetString("dynamodb_master_table"),
			PublishedTable:  v.GetString("dynamodb_published_table"),
		},
		Bootstrap: ReviewerBootstrap{
			Email:    v.GetString("reviewer_bootstrap_email"),
			Password: v.GetString("reviewer_bootstrap_password"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	if len(c.Validation.AnimalTypes) == 0 {
		return fmt.Errorf("ANIMAL_TYPES must list at least one type")
	}
	if c.Validation.MaxPastYears <= 0 {
		return fmt.Errorf("SIGHTING_MAX_PAST_YEARS must be positive, got %d", c.Validation.MaxPastYears)
	}
	if c.Validation.MaxNoteLength <= 0 {
		return fmt.Errorf("NOTE_MAX_LENGTH must be positive, got %d", c.Validation.MaxNoteLength)
	}

	switch c.StoreBackend {
	case storage.BackendPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for the postgres backend")
		}
	case storage.BackendDynamoDB:
		if c.DynamoDB.Region == "" {
			return fmt.Errorf("AWS_REGION is required for the dynamodb backend")
		}
		if c.DynamoDB.MasterTable == "" || c.DynamoDB.PublishedTable == "" {
			return fmt.Errorf("DynamoDB table names are required for the dynamodb backend")
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if (c.Bootstrap.Email == "") != (c.Bootstrap.Password == "") {
		return fmt.Errorf("REVIEWER_BOOTSTRAP_EMAIL and REVIEWER_BOOTSTRAP_PASSWORD must be set together")
	}
	return nil
}

// HasDatabase reports whether postgres settings are present.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
