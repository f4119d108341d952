package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per inbound request, covers the upstream calls

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Upstream
	BaseURL     string        // site hosting the notes and content APIs
	HTTPTimeout time.Duration // per upstream call
	UserAgent   string
	Token       string // optional default Church-auth-jwt-prod token

	// Sessions
	SessionStore string        // "memory" | "redis"
	SessionTTL   time.Duration // lifetime of a stored token
	SweepEvery   time.Duration // memory store purge interval

	// Redis (only when SessionStore == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int

	// Access restrictions
	AllowedHosts []string // optional, restrict session routes to these Host headers
	AllowedCIDRS []string // optional, restrict readyz to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	// Rate limiting on /api
	RateBurst  int
	RatePerMin int

	FixturesFile string // default file for `ldsnotes verify`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      getenv("LDSNOTES_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LDSNOTES_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("LDSNOTES_REQUEST_TIMEOUT", 60*time.Second),

		LogLevel:  getenv("LDSNOTES_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LDSNOTES_PRETTY_LOG", true),

		BaseURL:     strings.TrimRight(getenv("LDSNOTES_BASE_URL", "https://www.churchofjesuschrist.org"), "/"),
		HTTPTimeout: mustDuration("LDSNOTES_HTTP_TIMEOUT", 30*time.Second),
		UserAgent:   getenv("LDSNOTES_USER_AGENT", "ldsnotes"),
		Token:       getenv("LDSNOTES_TOKEN", ""),

		SessionStore: strings.ToLower(getenv("LDSNOTES_SESSION_STORE", StoreMemory)),
		SessionTTL:   mustDuration("LDSNOTES_SESSION_TTL", 12*time.Hour),
		SweepEvery:   mustDuration("LDSNOTES_SESSION_SWEEP_INTERVAL", 10*time.Minute),

		RedisUser:           getenv("LDSNOTES_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LDSNOTES_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LDSNOTES_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		AllowedHosts: splitAndTrim(getenv("LDSNOTES_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("LDSNOTES_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LDSNOTES_TRUST_PROXY", false),

		RateBurst:  getenvInt("LDSNOTES_RATE_BURST", 20),
		RatePerMin: getenvInt("LDSNOTES_RATE_PER_MIN", 60),

		FixturesFile: getenv("LDSNOTES_FIXTURES_FILE", "fixtures.yaml"),
	}

	switch cfg.SessionStore {
	case StoreMemory:
	case StoreRedis:
		cfg.RedisAddr = requireEnv("LDSNOTES_REDIS_ADDR")
	default:
		panic(fmt.Sprintf("❌ FATAL: LDSNOTES_SESSION_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, cfg.SessionStore))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = redact(cfg.RedisPassword)
		cfgCopy.Token = redact(cfg.Token)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***REDACTED***"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
