package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Search    SearchConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Env  string `validate:"required,oneof=development staging production"`
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	User     string `validate:"required"`
	Password string
	Database string `validate:"required"`
	Schema   string `validate:"required"`
}

type RedisConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	Password string
	DB       int `validate:"gte=0"`
}

type JWTConfig struct {
	Secret        string `validate:"required,min=16"`
	AccessExpiry  int    `validate:"gt=0"` // in minutes
	RefreshExpiry int    `validate:"gt=0"` // in days
}

type SearchConfig struct {
	Addresses []string `validate:"required,min=1,dive,url"`
	Index     string   `validate:"required"`
}

type UploadConfig struct {
	Dir string `validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `validate:"gt=0"`
}

// Load reads configuration from a .env file and the environment, then
// validates the result. Environment variables win over file values.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY", 7)
	viper.SetDefault("SEARCH_ADDRESSES", "http://localhost:9200")
	viper.SetDefault("SEARCH_INDEX", "products")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt("JWT_REFRESH_EXPIRY"),
		},
		Search: SearchConfig{
			Addresses: viper.GetStringSlice("SEARCH_ADDRESSES"),
			Index:     viper.GetString("SEARCH_INDEX"),
		},
		Upload: UploadConfig{
			Dir: viper.GetString("UPLOAD_DIR"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
