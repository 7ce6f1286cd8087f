package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Server configuration
	Server ServerConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig

	// YouTube Data API configuration
	YouTube YouTubeConfig

	// SeedDemo inserts the demo groups when the group table is empty.
	SeedDemo bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSL      bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// YouTubeConfig holds the video platform API settings.
type YouTubeConfig struct {
	APIKey            string
	BaseURL           string
	RequestsPerSecond float64
}

// DefaultAllowedOrigins are the local frontend origins accepted when
// CORS_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3100",
}

// Load reads configuration from environment variables. Each env file is
// loaded first when present; variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if file == "" {
			continue
		}
		_ = godotenv.Load(file)
	}

	cfg := &Config{}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	if err := cfg.loadYouTube(); err != nil {
		return nil, fmt.Errorf("load youtube config: %w", err)
	}

	cfg.loadCORS()
	cfg.loadLogging()
	cfg.SeedDemo = parseBool(os.Getenv("SEED_DEMO"), false)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadDatabase() error {
	var err error

	c.Database.SSL = parseBool(os.Getenv("DB_SSL"), true)

	if c.Database.MaxOpenConns, err = intFromEnv("DB_MAX_OPEN_CONNS", 100); err != nil {
		return err
	}
	if c.Database.MaxIdleConns, err = intFromEnv("DB_MAX_IDLE_CONNS", 10); err != nil {
		return err
	}
	if c.Database.ConnMaxIdleTime, err = durationFromEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Second); err != nil {
		return err
	}
	if c.Database.ConnectTimeout, err = durationFromEnv("DB_CONNECT_TIMEOUT", 2*time.Second); err != nil {
		return err
	}

	// Try to load DATABASE_URL first
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = os.Getenv("DB_HOST")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")

	// Supabase session pooler port
	if c.Database.Port, err = intFromEnv("DB_PORT", 6543); err != nil {
		return err
	}

	if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = c.Database.buildURL()
	}

	return nil
}

func (d DatabaseConfig) buildURL() string {
	sslMode := "disable"
	if d.SSL {
		sslMode = "require"
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	if d.ConnectTimeout > 0 {
		seconds := int(d.ConnectTimeout.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		query.Set("connect_timeout", strconv.Itoa(seconds))
	}

	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (c *Config) loadServer() error {
	port, err := intFromEnv("PORT", 3200)
	if err != nil {
		return err
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadYouTube() error {
	c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	c.YouTube.BaseURL = os.Getenv("YOUTUBE_API_BASE_URL")

	rps := getEnvOrDefault("YOUTUBE_REQUESTS_PER_SECOND", "5")
	value, err := strconv.ParseFloat(rps, 64)
	if err != nil {
		return fmt.Errorf("invalid YOUTUBE_REQUESTS_PER_SECOND: %w", err)
	}
	c.YouTube.RequestsPerSecond = value
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		c.CORS.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
		return
	}

	var origins []string
	for _, origin := range strings.Split(originsEnv, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORS.AllowedOrigins = origins
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	if c.Database.MaxOpenConns < 1 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		errors = append(errors, "DB_MAX_IDLE_CONNS must not be negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	if c.YouTube.RequestsPerSecond < 0 {
		errors = append(errors, "YOUTUBE_REQUESTS_PER_SECOND must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

// LoadYouTube reads only the YouTube settings, for commands that never touch
// the database.
func LoadYouTube(envFiles ...string) (YouTubeConfig, error) {
	for _, file := range envFiles {
		if file == "" {
			continue
		}
		_ = godotenv.Load(file)
	}

	cfg := &Config{}
	if err := cfg.loadYouTube(); err != nil {
		return YouTubeConfig{}, err
	}
	if cfg.YouTube.RequestsPerSecond < 0 {
		return YouTubeConfig{}, fmt.Errorf("YOUTUBE_REQUESTS_PER_SECOND must not be negative")
	}
	return cfg.YouTube, nil
}

// Endpoint reports the database name, host and port without credentials.
// Values come from the parsed URL when the individual parts are unset.
func (d DatabaseConfig) Endpoint() (name, host string, port int) {
	name, host, port = d.Name, d.Host, d.Port
	if host != "" || d.URL == "" {
		return name, host, port
	}

	u, err := url.Parse(d.URL)
	if err != nil {
		return name, host, port
	}
	host = u.Hostname()
	name = strings.TrimPrefix(u.Path, "/")
	port = 5432
	if raw := u.Port(); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			port = p
		}
	}
	return name, host, port
}
