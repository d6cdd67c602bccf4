// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Event sink selectors for MATCH_EVENT_SINK.
const (
	SinkNone  = "none"
	SinkRedis = "redis"
	SinkKafka = "kafka"
)

// Config is the process configuration, read from the environment (and a .env file when
// the binary imports godotenv/autoload).
type Config struct {
	Env            string
	Host           string
	Port           string
	LogLevel       string
	AllowedOrigins []string

	EventSink   string
	EventBuffer int

	RedisAddr       string
	RedisDB         int
	MatchEventQueue string

	KafkaBrokers []string
	KafkaTopic   string

	PostgresUser     string
	PostgresPassword string
	PGHost           string
	PGPort           string
	PGDatabase       string

	HistorianBatchSize int
	HistorianFlush     time.Duration
}

// Load reads every setting, falling back to development defaults.
func Load() Config {
	env := getEnv("PAIRUP_ENV", "dev")

	cfg := Config{
		Env:      env,
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		EventSink:   strings.ToLower(getEnv("MATCH_EVENT_SINK", SinkNone)),
		EventBuffer: getEnvInt("EVENT_BUFFER", 256),

		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		MatchEventQueue: getEnv("MATCH_EVENT_QUEUE", "pairup_matches"),

		KafkaBrokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "pairup.matches"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PGHost:           getEnv("PG_HOST", "localhost"),
		PGPort:           getEnv("PG_PORT", "5432"),
		PGDatabase:       getEnv("PG_DATABASE", "pairup"),

		HistorianBatchSize: getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistorianFlush:     time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
	}

	if cfg.IsProduction() {
		// bind to all hosts; with ALLOWED_ORIGINS unset no cross-origin request is allowed
		cfg.Host = getEnv("HOST", "")
		cfg.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", nil)
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	} else {
		cfg.Host = getEnv("HOST", "localhost")
		cfg.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", []string{"*"})
		if cfg.LogLevel == "" {
			cfg.LogLevel = "debug"
		}
	}
	return cfg
}

// IsProduction reports whether PAIRUP_ENV names a production deployment.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// PostgresURL builds the pgx connection string.
func (c Config) PostgresURL() string {
	return "postgres://" + c.PostgresUser + ":" + c.PostgresPassword + "@" + c.PGHost + ":" + c.PGPort + "/" + c.PGDatabase
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, def []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
