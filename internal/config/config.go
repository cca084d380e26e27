package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fetch failure policies for per-object museum calls.
const (
	FetchFailureAbort = "abort"
	FetchFailureSkip  = "skip"
)

// Config holds the smuseum API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
	Museum  MuseumConfig  `yaml:"museum"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port               int      `yaml:"port"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec"`
	ShutdownSec        int      `yaml:"shutdown_timeout_sec"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	DocsURL            string   `yaml:"docs_url"` // GET /doc redirect target
}

// CacheConfig holds the record snapshot store settings.
// With no addrs the snapshot is taken in memory.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	TTLSec           int      `yaml:"ttl_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
	Keep             bool     `yaml:"keep"` // leave snapshots until TTL for diagnostics
}

// Enabled reports whether a cache database is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// MuseumFieldsConfig names the upstream JSON fields.
type MuseumFieldsConfig struct {
	Title     string `yaml:"title"`
	Total     string `yaml:"total"`
	ObjectIDs string `yaml:"object_ids"`
	Image     string `yaml:"image"`
}

// MuseumConfig holds the collection backend settings. Empty values fall back to the MET.
type MuseumConfig struct {
	Name             string             `yaml:"name"`
	SearchURL        string             `yaml:"search_url"`
	ObjectURL        string             `yaml:"object_url"`
	Fields           MuseumFieldsConfig `yaml:"fields"`
	TimeoutSec       int                `yaml:"timeout_sec"`
	FetchConcurrency int                `yaml:"fetch_concurrency"`
	FetchFailure     string             `yaml:"fetch_failure"` // "abort" (default) | "skip"
	MaxObjects       int                `yaml:"max_objects"`   // 0 = unlimited
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, expanding ${VAR} references, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5002
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSAllowedOrigins) == 0 {
		c.HTTP.CORSAllowedOrigins = []string{"*"}
	}
	if c.HTTP.DocsURL == "" {
		c.HTTP.DocsURL = "https://github.com/Moriblo/smuseum"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "smuseum:"
	}
	if c.Museum.TimeoutSec <= 0 {
		c.Museum.TimeoutSec = 30
	}
	if c.Museum.FetchConcurrency <= 0 {
		c.Museum.FetchConcurrency = 4
	}
	if c.Museum.FetchFailure == "" {
		c.Museum.FetchFailure = FetchFailureAbort
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Museum.FetchFailure {
	case FetchFailureAbort, FetchFailureSkip:
		// ok
	default:
		return fmt.Errorf(
			"museum.fetch_failure must be %q or %q, got %q",
			FetchFailureAbort, FetchFailureSkip, c.Museum.FetchFailure,
		)
	}
	if c.Museum.MaxObjects < 0 {
		return fmt.Errorf("museum.max_objects must not be negative, got %d", c.Museum.MaxObjects)
	}
	for name, raw := range map[string]string{
		"museum.search_url": c.Museum.SearchURL,
		"museum.object_url": c.Museum.ObjectURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
