// Package config provides configuration management for the scoop service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Cache     CacheConfig
	ShopAPI   ShopAPIConfig
	Checkout  CheckoutConfig
	Simulator SimulatorConfig
	Auth      AuthConfig
	Database  DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig holds cache configuration.
type CacheConfig struct {
	MenuTTL        time.Duration
	IdempotencyTTL time.Duration
}

// ShopAPIConfig holds the outbound shop API configuration.
type ShopAPIConfig struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CheckoutConfig holds checkout rules.
type CheckoutConfig struct {
	TaxRate               decimal.Decimal
	MinPaymentTokenLength int
}

// SimulatorConfig holds the session simulator timing.
type SimulatorConfig struct {
	ShortDelay  time.Duration
	MediumDelay time.Duration
	LongDelay   time.Duration
	SettleDelay time.Duration
	// AutoStart runs AutoStartCount sessions at boot, SessionGap apart.
	AutoStart      bool
	AutoStartCount int
	SessionGap     time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	EventsTTL    time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Cache: CacheConfig{
			MenuTTL:        getEnvDuration("MENU_CACHE_TTL", 5*time.Minute),
			IdempotencyTTL: getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		ShopAPI: ShopAPIConfig{
			BaseURL:                        getEnv("SHOP_API_BASE_URL", "https://postman-echo.com"),
			APIVersion:                     getEnv("SHOP_API_VERSION", "1.0"),
			Timeout:                        getEnvDuration("SHOP_API_TIMEOUT", 30*time.Second),
			CircuitBreakerFailureThreshold: getEnvInt("SHOP_API_CB_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("SHOP_API_CB_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("SHOP_API_CB_TIMEOUT", 30*time.Second),
		},
		Checkout: CheckoutConfig{
			TaxRate:               getEnvDecimal("TAX_RATE", decimal.RequireFromString("0.08")),
			MinPaymentTokenLength: getEnvInt("MIN_PAYMENT_TOKEN_LENGTH", 16),
		},
		Simulator: SimulatorConfig{
			ShortDelay:     getEnvDuration("SIM_SHORT_DELAY", 500*time.Millisecond),
			MediumDelay:    getEnvDuration("SIM_MEDIUM_DELAY", time.Second),
			LongDelay:      getEnvDuration("SIM_LONG_DELAY", 2*time.Second),
			SettleDelay:    getEnvDuration("SIM_SETTLE_DELAY", 3*time.Second),
			AutoStart:      getEnvBool("SIM_AUTOSTART", false),
			AutoStartCount: getEnvInt("SIM_AUTOSTART_COUNT", 1),
			SessionGap:     getEnvDuration("SIM_SESSION_GAP", 2*time.Second),
		},
		Auth: AuthConfig{
			Enabled: getEnvBool("AUTH_ENABLED", false),
			APIKeys: parseAPIKeys(os.Getenv("API_KEYS")),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "scoop_service"),
			EventsTTL:                      getEnvDuration("MONGODB_EVENTS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// local development origins
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
