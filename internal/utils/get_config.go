package utils

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort          string `yaml:"APP_PORT"`
	AppEnv           string `yaml:"APP_ENV"`
	AppURL           string `yaml:"APP_URL"`
	AppTimezone      string `yaml:"APP_TIMEZONE"`
	LogLevel         string `yaml:"LOG_LEVEL"`
	LogFormat        string `yaml:"LOG_FORMAT"`
	AccessLogFile    string `yaml:"ACCESS_LOG_FILE"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// JWT
	JWTSecret              string `yaml:"JWT_SECRET"`
	AccessTokenTTLMinutes  string `yaml:"ACCESS_TOKEN_TTL_MINUTES"`
	RefreshTokenTTLMinutes string `yaml:"REFRESH_TOKEN_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Rate limiting, optionally backed by redis
	RateLimitMax           string `yaml:"RATE_LIMIT_MAX"`
	RateLimitWindowSeconds string `yaml:"RATE_LIMIT_WINDOW_SECONDS"`
	RedisAddr              string `yaml:"REDIS_ADDR"`
	RedisPassword          string `yaml:"REDIS_PASSWORD"`
	RedisDB                string `yaml:"REDIS_DB"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:                "8080",
		AppEnv:                 "development",
		AppTimezone:            "UTC",
		LogLevel:               "info",
		LogFormat:              "json",
		AccessLogFile:          "./logs/app.log",
		CORSAllowOrigins:       "*",
		DBPort:                 "5432",
		DBHost:                 "localhost",
		DBSSLMode:              "disable",
		AccessTokenTTLMinutes:  "60",
		RefreshTokenTTLMinutes: "1440",
		SMTPPort:               "587",
		RateLimitMax:           "20",
		RateLimitWindowSeconds: "1",
		RedisDB:                "0",
	}
}

// LoadConfig reads .env, then the yaml file named by CONFIG_FILE (config.yaml
// by default), then lets environment variables override any yaml key.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg := defaultConfig()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Info().Str("path", path).Msg("config file not found, using defaults and environment")
	default:
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	config = cfg
	return nil
}

func applyEnvOverrides(cfg *Config) {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		if value, ok := os.LookupEnv(key); ok {
			v.Field(i).SetString(value)
		}
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_ENV":
		return config.AppEnv
	case "APP_URL":
		return config.AppURL
	case "APP_TIMEZONE":
		return config.AppTimezone
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "ACCESS_LOG_FILE":
		return config.AccessLogFile
	case "CORS_ALLOW_ORIGINS":
		return config.CORSAllowOrigins
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "JWT_SECRET":
		return config.JWTSecret
	case "ACCESS_TOKEN_TTL_MINUTES":
		return config.AccessTokenTTLMinutes
	case "REFRESH_TOKEN_TTL_MINUTES":
		return config.RefreshTokenTTLMinutes
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "RATE_LIMIT_WINDOW_SECONDS":
		return config.RateLimitWindowSeconds
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return config.RedisDB
	default:
		return ""
	}
}

// GetConfigInt returns the integer value of key, or fallback when the value
// is missing or not a number.
func GetConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return value
}
