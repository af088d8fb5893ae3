package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel-backoffice/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	DBDriver      string
	SQLitePath    string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AMQPURL       string
	ReconcileSpec string
	LogLevel      string
	LogFormat     string
	DBLogLevel    string
	SeedDemo      bool
}

// Load reads the process environment, with .env values filled in first when
// the file exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env not found, using process environment")
	}

	ttl, err := strconv.Atoi(utils.EnvOrDefault("ACCESS_TOKEN_TTL_MIN", "120"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL_MIN must be a positive integer")
	}
	redisDB, err := strconv.Atoi(utils.EnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer")
	}

	cfg := &Config{
		Port:          utils.EnvOrDefault("PORT", "8080"),
		DBDriver:      strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "mysql")),
		SQLitePath:    utils.EnvOrDefault("SQLITE_PATH", "hotel.db"),
		JWTSecret:     utils.EnvOrDefault("JWT_SECRET", ""),
		TokenTTL:      time.Duration(ttl) * time.Minute,
		CORSOrigins:   ParseCorsOrigins(utils.EnvOrDefault("CORS_ORIGINS", "")),
		RedisAddr:     utils.EnvOrDefault("REDIS_ADDR", ""),
		RedisPassword: utils.EnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		AMQPURL:       utils.EnvOrDefault("AMQP_URL", ""),
		ReconcileSpec: utils.EnvOrDefault("RECONCILE_SPEC", "@every 1h"),
		LogLevel:      utils.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     utils.EnvOrDefault("LOG_FORMAT", "text"),
		DBLogLevel:    utils.EnvOrDefault("DB_LOG_LEVEL", "warn"),
		SeedDemo:      isTrue(utils.EnvOrDefault("SEED_DEMO", "false")),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// ReconcileInterval is the period used when reconcile runs in process instead
// of through asynq. Only "@every <duration>" specs carry one; cron
// expressions fall back to an hour.
func (c *Config) ReconcileInterval() time.Duration {
	if rest, ok := strings.CutPrefix(c.ReconcileSpec, "@every "); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(rest)); err == nil && d > 0 {
			return d
		}
	}
	return time.Hour
}

// ParseCorsOrigins splits a comma separated origin list. Empty means any origin.
func ParseCorsOrigins(raw string) []string {
	origins := []string{}
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
