package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	CORSOrigins []string

	TokenSecret   string
	VoterTokenTTL time.Duration
	AdminTokenTTL time.Duration

	AdminMaxLoginAttempts int
	AdminLockDuration     time.Duration

	// ResultTieBreak selects the winner policy when top candidates are equal
	// on vote count: "reject_tie" or "earliest_nomination".
	ResultTieBreak string

	WorkerSchedule    string
	OutboxBatchSize   int
	DevelopmentErrors bool
}

func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "civica"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var origins []string
	for _, value := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			origins = append(origins, value)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "civica-dev-secret"
	}

	tieBreak := strings.TrimSpace(strings.ToLower(os.Getenv("RESULT_TIE_BREAK")))
	switch tieBreak {
	case "reject_tie", "earliest_nomination":
	default:
		tieBreak = "reject_tie"
	}

	schedule := strings.TrimSpace(os.Getenv("WORKER_SCHEDULE"))
	if schedule == "" {
		schedule = "@every 5s"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		CORSOrigins: origins,

		TokenSecret:   secret,
		VoterTokenTTL: envDuration("VOTER_TOKEN_TTL", 24*time.Hour),
		AdminTokenTTL: envDuration("ADMIN_TOKEN_TTL", 8*time.Hour),

		AdminMaxLoginAttempts: envInt("ADMIN_MAX_LOGIN_ATTEMPTS", 5),
		AdminLockDuration:     envDuration("ADMIN_LOCK_DURATION", 2*time.Hour),

		ResultTieBreak: tieBreak,

		WorkerSchedule:    schedule,
		OutboxBatchSize:   envInt("OUTBOX_BATCH_SIZE", 100),
		DevelopmentErrors: envBool("DEVELOPMENT_ERRORS", false),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
