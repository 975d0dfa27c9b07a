package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port   string
	AppEnv string

	DBDriver        string
	DBDSN           string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration

	LogLevel    string
	LogEncoding string
	LogFile     string

	SeedDemo     bool
	CORSOrigins  string
	RateLimitMax int
	BodyLimit    int
}

func (c Config) Production() bool { return c.AppEnv == "production" }

func Load() Config {
	cfg := Config{
		Port:   getEnv("PORT", "8001"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_TIME", 30)) * time.Second,

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),
		LogFile:     getEnv("LOG_FILE", ""),

		SeedDemo:     getEnvBool("SEED_DEMO", false),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 120),
		BodyLimit:    getEnvInt("BODY_LIMIT", 1<<20),
	}
	cfg.DBDSN = getEnv("DB_DSN", defaultDSN(cfg.DBDriver))
	return cfg
}

// defaultDSN builds the data source from the discrete DB_* variables the
// service has always accepted for PostgreSQL; SQLite falls back to a file in
// the working directory.
func defaultDSN(driver string) string {
	if driver != DriverPostgres {
		return "products.db"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "password"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "products_db"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
