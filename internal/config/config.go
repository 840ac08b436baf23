package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	Environment string
	ServiceName string
	Version     string

	LogLevel  string
	LogFormat string
	LogDir    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Database pool tuning
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored
	TrustedProxies []string

	// Garden engine tuning
	StreakThreshold       int
	StreakRewardGold      int
	HarmonyBonusGold      int
	RevivalCostGold       int
	RewaterCooldown       time.Duration
	RefundPercent         int
	TreeRadiusMultiplier  float64
	BroadcastBothSessions bool

	// Neglect sweep tuning
	NeglectThreshold     time.Duration
	NeglectSweepInterval time.Duration

	// Worker pool sizing
	WorkerCount     int
	WorkerQueueSize int

	// Event publishing resilience
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "garden-engine"),
		Version:     getEnv("VERSION", "dev"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogDir:    getEnv("LOG_DIR", "logs"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "gardenengine"),

		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StreakThreshold:       getEnvAsInt("GARDEN_STREAK_THRESHOLD", 3),
		StreakRewardGold:      getEnvAsInt("GARDEN_STREAK_REWARD_GOLD", 3),
		HarmonyBonusGold:      getEnvAsInt("GARDEN_HARMONY_BONUS_GOLD", 1),
		RevivalCostGold:       getEnvAsInt("GARDEN_REVIVAL_COST_GOLD", 5),
		RewaterCooldown:       getEnvAsDuration("GARDEN_REWATER_COOLDOWN", 6*time.Hour),
		RefundPercent:         getEnvAsInt("GARDEN_REFUND_PERCENT", 60),
		TreeRadiusMultiplier:  getEnvAsFloat("GARDEN_TREE_RADIUS_MULTIPLIER", 0),
		BroadcastBothSessions: getEnvAsBool("GARDEN_BROADCAST_BOTH_SESSIONS", true),

		NeglectThreshold:     getEnvAsDuration("GARDEN_NEGLECT_THRESHOLD", 24*time.Hour),
		NeglectSweepInterval: getEnvAsDuration("GARDEN_NEGLECT_SWEEP_INTERVAL", 15*time.Minute),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", 4),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", 64),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to the
// default when unset or unparsable.
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsFloat retrieves a float environment variable, falling back to the
// default when unset or unparsable.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsBool retrieves a boolean environment variable, falling back to the
// default when unset or unparsable.
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration retrieves a duration environment variable (Go duration
// syntax, e.g. "6h", "15m"), falling back to the default when unset or
// unparsable.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsList retrieves a comma-separated list environment variable.
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
