package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by PROVIDER
const (
	ProviderYahoo    = "yahoo"
	ProviderPostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Query
	Provider    string   // yahoo, postgres
	DefaultCode string   // code prefilled in the UI
	Suffixes    []string // exchange suffix candidates, tried in order
	// QueryTimeout bounds one report query end to end, retries included
	QueryTimeout time.Duration

	// External APIs
	Yahoo YahooConfig

	// Cache
	Redis    RedisConfig
	CacheTTL time.Duration

	// Database (PROVIDER=postgres only)
	Database DatabaseConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// YahooConfig holds Yahoo Finance chart API configuration
type YahooConfig struct {
	BaseURL   string
	UserAgent string
	RateLimit float64 // requests per second, 0 disables limiting
	Timeout   time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Load reads configuration from the environment and .env
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration with an optional YAML overlay.
// The YAML file uses the same keys as the environment (PORT, SUFFIXES, ...).
// Precedence: environment > .env > YAML file > defaults.
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func LoadFile(path string) (*Config, error) {
	loadEnvFile()

	src := source{file: map[string]string{}}
	if path != "" {
		file, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		src.file = file
	}

	cfg := &Config{
		// Server
		Port: src.get("PORT", "8089"),
		Env:  src.get("ENV", "development"),

		// Query
		Provider:     strings.ToLower(src.get("PROVIDER", ProviderYahoo)),
		DefaultCode:  src.get("DEFAULT_CODE", "2399"),
		Suffixes:     src.getList("SUFFIXES", ".TW,.TWO"),
		QueryTimeout: src.getDuration("QUERY_TIMEOUT", "45s"),

		Yahoo: YahooConfig{
			BaseURL:   strings.TrimRight(src.get("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"), "/"),
			UserAgent: src.get("YAHOO_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
			RateLimit: src.getFloat("YAHOO_RATE_LIMIT", 5),
			Timeout:   src.getDuration("HTTP_TIMEOUT", "30s"),
		},

		Redis: RedisConfig{
			Host:     src.get("REDIS_HOST", "localhost"),
			Port:     src.get("REDIS_PORT", "6379"),
			Password: src.get("REDIS_PASSWORD", ""),
			DB:       src.getInt("REDIS_DB", 0),
			Enabled:  src.getBool("REDIS_ENABLED", false),
		},
		CacheTTL: src.getDuration("CACHE_TTL", "1h"),

		Database: DatabaseConfig{
			URL:             src.get("DATABASE_URL", ""),
			MaxConns:        src.getInt("DB_MAX_CONNS", 10),
			MinConns:        src.getInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: src.getDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: src.getDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Logging
		LogLevel:  src.get("LOG_LEVEL", "info"),
		LogFormat: src.get("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Provider {
	case ProviderYahoo:
	case ProviderPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when PROVIDER=postgres")
		}
	default:
		return fmt.Errorf("PROVIDER must be one of: yahoo, postgres")
	}

	if len(c.Suffixes) == 0 {
		return fmt.Errorf("SUFFIXES must list at least one exchange suffix")
	}

	if c.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive")
	}

	if c.Yahoo.RateLimit < 0 {
		return fmt.Errorf("YAHOO_RATE_LIMIT must not be negative")
	}

	return nil
}

// RedisAddr returns host:port for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// readYAML reads a flat key/value YAML file
func readYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case []interface{}:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			values[strings.ToUpper(k)] = strings.Join(parts, ",")
		default:
			values[strings.ToUpper(k)] = fmt.Sprint(val)
		}
	}

	return values, nil
}

// source resolves a key from the environment, then the YAML file
type source struct {
	file map[string]string
}

func (s source) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := s.file[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) int {
	valueStr := s.get(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func (s source) getFloat(key string, defaultValue float64) float64 {
	valueStr := s.get(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func (s source) getBool(key string, defaultValue bool) bool {
	valueStr := s.get(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func (s source) getDuration(key string, defaultValue string) time.Duration {
	duration, err := time.ParseDuration(s.get(key, defaultValue))
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getList splits a comma separated value, dropping blanks
func (s source) getList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(s.get(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
