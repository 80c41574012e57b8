// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, storage, the Telegram bot, the cart store, order events, rate
// limiting and observability.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tbourn/go-table-order/internal/sysutil"
)

// Cart store kinds accepted in CART_STORE.
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// BotConfig holds the Telegram bot settings. An empty Token disables the bot
// and operator notifications.
type BotConfig struct {
	Token      string  // BOT_TOKEN
	Username   string  // BOT_USERNAME, without '@'
	AdminIDs   []int64 // ADMIN_ID plus ADMIN_IDS
	AdminGroup string  // ADMIN_GROUP: numeric chat id or @channel
	// WebhookURL is the public base URL Telegram posts updates to. Empty
	// means long polling.
	WebhookURL string
	// PublicURL is the base URL of the mini-app and admin page; it defaults
	// to WebhookURL.
	PublicURL string
}

// CartConfig selects the cart session store.
type CartConfig struct {
	Store     string        // CART_STORE: memory|redis
	TTL       time.Duration // CART_TTL; 0 (default) keeps memory carts until confirmed, redis uses its own default
	RedisAddr string        // REDIS_ADDR
	RedisPass string        // REDIS_PASSWORD
	RedisDB   int           // REDIS_DB
}

// EventsConfig configures order event publishing. An empty QueueURL
// disables it.
type EventsConfig struct {
	QueueURL  string // ORDER_EVENTS_QUEUE_URL
	AWSRegion string // AWS_REGION
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	ShutdownTimeout   time.Duration // graceful shutdown budget
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route

	// Storage
	DatabaseURL    string // postgres://, mysql:// or a SQLite file path
	UploadDir      string // where uploaded menu images are written
	MaxUploadBytes int64  // per image

	Bot    BotConfig
	Cart   CartConfig
	Events EventsConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the real environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	admins, err := adminIDs(os.Getenv("ADMIN_ID"), os.Getenv("ADMIN_IDS"))
	if err != nil {
		return Config{}, err
	}

	webhook := strings.TrimRight(strings.TrimSpace(os.Getenv("WEBHOOK_URL")), "/")
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getdur("SHUTDOWN_TIMEOUT", 5*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),

		// Storage
		DatabaseURL:    strings.TrimSpace(sysutil.FirstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_PATH"), "app.db")),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getint("MAX_UPLOAD_BYTES", 5<<20)),

		Bot: BotConfig{
			Token:      strings.TrimSpace(os.Getenv("BOT_TOKEN")),
			Username:   strings.TrimPrefix(strings.TrimSpace(os.Getenv("BOT_USERNAME")), "@"),
			AdminIDs:   admins,
			AdminGroup: strings.TrimSpace(os.Getenv("ADMIN_GROUP")),
			WebhookURL: webhook,
			PublicURL:  strings.TrimRight(strings.TrimSpace(sysutil.FirstNonEmpty(os.Getenv("PUBLIC_URL"), webhook)), "/"),
		},

		Cart: CartConfig{
			Store:     strings.ToLower(getenv("CART_STORE", CartStoreMemory)),
			TTL:       getdur("CART_TTL", 0),
			RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
			RedisPass: os.Getenv("REDIS_PASSWORD"),
			RedisDB:   getint("REDIS_DB", 0),
		},

		Events: EventsConfig{
			QueueURL:  strings.TrimSpace(os.Getenv("ORDER_EVENTS_QUEUE_URL")),
			AWSRegion: getenv("AWS_REGION", "us-east-1"),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-table-order"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return cfg, errors.New("DATABASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		return cfg, errors.New("UPLOAD_DIR must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return cfg, errors.New("MAX_UPLOAD_BYTES must be > 0")
	}
	for _, u := range []struct{ key, val string }{
		{"WEBHOOK_URL", cfg.Bot.WebhookURL},
		{"PUBLIC_URL", cfg.Bot.PublicURL},
	} {
		if u.val != "" && !isHTTPURL(u.val) {
			return cfg, fmt.Errorf("%s must be an absolute http(s) URL", u.key)
		}
	}
	if cfg.Bot.WebhookURL != "" && cfg.Bot.Token == "" {
		return cfg, errors.New("WEBHOOK_URL requires BOT_TOKEN")
	}
	switch cfg.Cart.Store {
	case CartStoreMemory, CartStoreRedis:
	default:
		return cfg, errors.New("CART_STORE must be one of: memory, redis")
	}
	if cfg.Cart.TTL < 0 {
		return cfg, errors.New("CART_TTL must be >= 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// adminIDs merges ADMIN_ID and the comma-separated ADMIN_IDS into one
// de-duplicated list of Telegram user ids.
func adminIDs(single, list string) ([]int64, error) {
	var out []int64
	seen := map[int64]struct{}{}
	for _, raw := range append(splitCSV(single), splitCSV(list)...) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("admin id %q must be a positive integer", raw)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
