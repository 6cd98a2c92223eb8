package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is everything the booking store reads from the environment.
type Config struct {
	Port string

	MySQLURL string
	DBUser   string
	DBPass   string
	DBHost   string
	DBPort   string
	DBName   string
	Seed     bool

	RedisAddr string
	RedisDB   int
	CacheTTL  time.Duration

	CORSOrigins []string
	AdminToken  string

	LogLevel  string
	LogFormat string
}

// Load reads .env when present, then the process environment.
func Load(log logrus.FieldLogger) Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	mysqlURL := EnvOrDefault("MYSQL_URL", "")
	if mysqlURL == "" {
		mysqlURL = EnvOrDefault("DATABASE_URL", "")
	}

	return Config{
		Port:        EnvOrDefault("PORT", "8080"),
		MySQLURL:    mysqlURL,
		DBUser:      EnvOrDefault("DB_USER", "root"),
		DBPass:      EnvOrDefault("DB_PASS", ""),
		DBHost:      EnvOrDefault("DB_HOST", "127.0.0.1"),
		DBPort:      EnvOrDefault("DB_PORT", "3306"),
		DBName:      EnvOrDefault("DB_NAME", "hotel_db"),
		Seed:        envBool("DB_SEED", false),
		RedisAddr:   EnvOrDefault("REDIS_ADDR", ""),
		RedisDB:     envInt("REDIS_DB", 0),
		CacheTTL:    envDuration("AVAILABILITY_CACHE_TTL", 2*time.Minute),
		CORSOrigins: ParseCSV(os.Getenv("CORS_ORIGINS"), []string{"*"}),
		AdminToken:  EnvOrDefault("ADMIN_API_TOKEN", ""),
		LogLevel:    EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   EnvOrDefault("LOG_FORMAT", "text"),
	}
}

func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(EnvOrDefault(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(EnvOrDefault(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

// ParseCSV splits a comma separated list, dropping blanks. def is returned
// when nothing remains.
func ParseCSV(raw string, def []string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
