package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type JWT struct {
	Key           string
	Issuer        string
	Audience      string
	ExpireMinutes int
}

// ExpireDuration is the lifetime of an issued access token.
func (j JWT) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort        int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	DB                DB
	MigrationsPath    string
	JWT               JWT
	PasswordMinLength int
	Log               Log
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "postauth"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadJWT() JWT {
	return JWT{
		Key:           getEnv("JWT_KEY", ""),
		Issuer:        getEnv("JWT_ISSUER", "postauth"),
		Audience:      getEnv("JWT_AUDIENCE", "postauth-clients"),
		ExpireMinutes: getEnvAsInt("JWT_EXPIRE_MINUTES", 60),
	}
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort:        getEnvAsInt("SERVER_PORT", 8080),
		ReadTimeout:       parseDuration(getEnv("SERVER_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:      parseDuration(getEnv("SERVER_WRITE_TIMEOUT", "15s"), 15*time.Second),
		DB:                LoadDB(),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
		JWT:               LoadJWT(),
		PasswordMinLength: getEnvAsInt("PASSWORD_MIN_LENGTH", 4),
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}
