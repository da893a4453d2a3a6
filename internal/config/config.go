package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider and driver names accepted by Validate.
const (
	ProviderOpenAI = "openai"
	ProviderHTTP   = "http"

	DriverRedis  = "redis"
	DriverValkey = "valkey"

	HistoryPostgres = "postgres"
	HistorySQLite   = "sqlite"
)

// dotenvFiles are loaded before the YAML file, in order. Variables already set in the
// process environment win.
var dotenvFiles = []string{".env.local", ".env"}

// Config holds the stylebot configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
	History    HistoryConfig    `yaml:"history"`
	Search     SearchConfig     `yaml:"search"`
	Cache      CacheConfig      `yaml:"cache"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the vector store connection and index layout.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	IndexName        string   `yaml:"index_name"`
	KeyPrefix        string   `yaml:"key_prefix"`
	HNSWM            int      `yaml:"hnsw_m"`
	HNSWEFConstruct  int      `yaml:"hnsw_ef_construction"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider           string `yaml:"provider"` // openai, http (default: openai)
	BaseURL            string `yaml:"base_url"`
	APIKey             string `yaml:"api_key"`
	Model              string `yaml:"model"`
	Dimensions         int    `yaml:"dimensions"`
	TimeoutSec         int    `yaml:"timeout_sec"`
	QueryInstruction   string `yaml:"query_instruction"`
	PassageInstruction string `yaml:"passage_instruction"`
}

// CompletionConfig configures the chat completion model.
type CompletionConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	TopP        float32 `yaml:"top_p"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

// HistoryConfig configures chat history persistence. An empty driver disables it.
type HistoryConfig struct {
	Driver string `yaml:"driver"` // postgres, sqlite, "" (disabled)
	DSN    string `yaml:"dsn"`
	Limit  int    `yaml:"limit"`
}

// SearchConfig tunes retrieval and ranking. Zero weights keep the built-in values.
type SearchConfig struct {
	SimilarityThreshold  float64       `yaml:"similarity_threshold"`
	CandidatesPerVariant int           `yaml:"candidates_per_variant"`
	DefaultMaxResults    int           `yaml:"default_max_results"`
	ResultCacheSize      int           `yaml:"result_cache_size"`
	Weights              WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds ranking weight overrides.
type WeightsConfig struct {
	GenderMatch      float64 `yaml:"gender_match"`
	CategoryMatch    float64 `yaml:"category_match"`
	GenderMismatch   float64 `yaml:"gender_mismatch"`
	OriginalQuery    float64 `yaml:"original_query"`
	KeywordMatch     float64 `yaml:"keyword_match"`
	LongContent      float64 `yaml:"long_content"`
	LongContentRunes int     `yaml:"long_content_runes"`
}

// CacheConfig configures the embedding cache and its maintenance.
type CacheConfig struct {
	EmbeddingTTL        time.Duration `yaml:"embedding_ttl"`
	EmbeddingMaxEntries int           `yaml:"embedding_max_entries"`
	MaintenanceInterval time.Duration `yaml:"maintenance_interval"`
	WarmUpConcurrency   int           `yaml:"warmup_concurrency"`
	WarmUpOnStart       bool          `yaml:"warmup_on_start"`
	WarmUpQueries       []string      `yaml:"warmup_queries"`
}

// IngestConfig tunes catalog ingestion. A negative pause disables pacing.
type IngestConfig struct {
	BatchSize int           `yaml:"batch_size"`
	Pause     time.Duration `yaml:"pause"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return Config{}, err
	}
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands and validates a single YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references in data, decodes it, applies defaults and validates.
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

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
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
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverRedis
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.IndexName == "" {
		c.Database.IndexName = "products"
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "product:"
	}
	if c.Database.HNSWM <= 0 {
		c.Database.HNSWM = 16
	}
	if c.Database.HNSWEFConstruct <= 0 {
		c.Database.HNSWEFConstruct = 200
	}

	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOpenAI
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "intfloat/multilingual-e5-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}
	if c.Embedding.QueryInstruction == "" {
		c.Embedding.QueryInstruction = "query: "
	}
	if c.Embedding.PassageInstruction == "" {
		c.Embedding.PassageInstruction = "passage: "
	}

	if c.Completion.BaseURL == "" {
		c.Completion.BaseURL = c.Embedding.BaseURL
	}
	if c.Completion.APIKey == "" {
		c.Completion.APIKey = c.Embedding.APIKey
	}
	if c.Completion.Model == "" {
		c.Completion.Model = "meta-llama-3.1-8b-instruct"
	}
	if c.Completion.MaxTokens <= 0 {
		c.Completion.MaxTokens = 512
	}
	if c.Completion.Temperature == 0 {
		c.Completion.Temperature = 0.3
	}
	if c.Completion.TopP == 0 {
		c.Completion.TopP = 0.5
	}
	if c.Completion.TimeoutSec <= 0 {
		c.Completion.TimeoutSec = 60
	}

	if c.History.Limit <= 0 {
		c.History.Limit = 4
	}

	if c.Search.SimilarityThreshold == 0 {
		c.Search.SimilarityThreshold = 0.7
	}
	if c.Search.CandidatesPerVariant <= 0 {
		c.Search.CandidatesPerVariant = 8
	}
	if c.Search.DefaultMaxResults <= 0 {
		c.Search.DefaultMaxResults = 5
	}
	if c.Search.ResultCacheSize <= 0 {
		c.Search.ResultCacheSize = 100
	}

	if c.Cache.EmbeddingTTL <= 0 {
		c.Cache.EmbeddingTTL = time.Hour
	}
	if c.Cache.EmbeddingMaxEntries <= 0 {
		c.Cache.EmbeddingMaxEntries = 1000
	}
	if c.Cache.MaintenanceInterval <= 0 {
		c.Cache.MaintenanceInterval = 30 * time.Minute
	}
	if c.Cache.WarmUpConcurrency <= 0 {
		c.Cache.WarmUpConcurrency = 8
	}

	if c.Ingest.BatchSize <= 0 {
		c.Ingest.BatchSize = 10
	}
	if c.Ingest.Pause == 0 {
		c.Ingest.Pause = time.Second
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRedis, DriverValkey:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverRedis, DriverValkey, c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required")
	}
	switch c.Embedding.Provider {
	case ProviderOpenAI, ProviderHTTP:
	default:
		return fmt.Errorf("embedding.provider must be %q or %q, got %q",
			ProviderOpenAI, ProviderHTTP, c.Embedding.Provider)
	}
	if c.Embedding.BaseURL == "" {
		return errors.New("embedding.base_url is required")
	}
	switch c.History.Driver {
	case "", HistoryPostgres, HistorySQLite:
	default:
		return fmt.Errorf("history.driver must be %q, %q or empty, got %q",
			HistoryPostgres, HistorySQLite, c.History.Driver)
	}
	if c.History.Driver != "" && c.History.DSN == "" {
		return errors.New("history.dsn is required when history.driver is set")
	}
	if c.Search.SimilarityThreshold < 0 || c.Search.SimilarityThreshold > 1 {
		return fmt.Errorf("search.similarity_threshold must be within [0, 1], got %v", c.Search.SimilarityThreshold)
	}
	return nil
}

func loadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
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
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
