package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		Database:  DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{BaseURL: "https://api.example.com/v1/"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.Port != 8080 || cfg.Database.Driver != DriverRedis || cfg.Embedding.Provider != ProviderOpenAI {
		t.Errorf("unexpected defaults: port=%d driver=%q provider=%q",
			cfg.HTTP.Port, cfg.Database.Driver, cfg.Embedding.Provider)
	}
	if cfg.Database.IndexName != "products" || cfg.Database.KeyPrefix != "product:" {
		t.Errorf("unexpected index layout %q %q", cfg.Database.IndexName, cfg.Database.KeyPrefix)
	}
	if cfg.Embedding.Dimensions != 384 || cfg.Embedding.QueryInstruction != "query: " {
		t.Errorf("unexpected embedding defaults %+v", cfg.Embedding)
	}
	if cfg.Completion.Model != "meta-llama-3.1-8b-instruct" || cfg.Completion.MaxTokens != 512 ||
		cfg.Completion.Temperature != 0.3 || cfg.Completion.TopP != 0.5 {
		t.Errorf("unexpected completion defaults %+v", cfg.Completion)
	}
	if cfg.Completion.BaseURL != cfg.Embedding.BaseURL {
		t.Error("completion base_url should inherit embedding base_url")
	}
	if cfg.Search.SimilarityThreshold != 0.7 || cfg.Search.CandidatesPerVariant != 8 ||
		cfg.Search.DefaultMaxResults != 5 || cfg.Search.ResultCacheSize != 100 {
		t.Errorf("unexpected search defaults %+v", cfg.Search)
	}
	if cfg.Cache.EmbeddingTTL != time.Hour || cfg.Cache.EmbeddingMaxEntries != 1000 ||
		cfg.Cache.MaintenanceInterval != 30*time.Minute {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
	if cfg.History.Limit != 4 || cfg.Ingest.BatchSize != 10 || cfg.Ingest.Pause != time.Second {
		t.Errorf("unexpected history/ingest defaults %+v %+v", cfg.History, cfg.Ingest)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"valkey driver", func(c *Config) { c.Database.Driver = DriverValkey }, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "memcached" }, "database.driver"},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "onnx" }, "embedding.provider"},
		{"missing base url", func(c *Config) { c.Embedding.BaseURL = "" }, "embedding.base_url"},
		{"unknown history driver", func(c *Config) { c.History.Driver = "mysql" }, "history.driver"},
		{"history without dsn", func(c *Config) { c.History.Driver = HistorySQLite }, "history.dsn"},
		{"threshold above one", func(c *Config) { c.Search.SimilarityThreshold = 1.5 }, "similarity_threshold"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParse_ExpandsEnvAndDurations(t *testing.T) {
	t.Setenv("STYLEBOT_TEST_KEY", "sk-123")

	cfg, err := Parse([]byte(`
http:
  port: 9090
database:
  addrs: ["${STYLEBOT_TEST_REDIS:-localhost:6379}"]
embedding:
  provider: http
  base_url: https://embed.example.com/embed
  api_key: ${STYLEBOT_TEST_KEY}
search:
  weights:
    gender_mismatch: 1.2
cache:
  embedding_ttl: 15m
  maintenance_interval: 1h
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 9090 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("unexpected http/database %+v %+v", cfg.HTTP, cfg.Database)
	}
	if cfg.Embedding.APIKey != "sk-123" || cfg.Embedding.Provider != ProviderHTTP {
		t.Errorf("unexpected embedding %+v", cfg.Embedding)
	}
	if cfg.Search.Weights.GenderMismatch != 1.2 {
		t.Errorf("weights not decoded: %+v", cfg.Search.Weights)
	}
	if cfg.Cache.EmbeddingTTL != 15*time.Minute || cfg.Cache.MaintenanceInterval != time.Hour {
		t.Errorf("durations not decoded: %+v", cfg.Cache)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected YAML error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STYLEBOT_DOTENV_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STYLEBOT_DOTENV_VALUE", "")
	os.Unsetenv("STYLEBOT_DOTENV_VALUE")

	if err := loadDotenv(filepath.Join(dir, ".env.local"), path); err != nil {
		t.Fatalf("loadDotenv: %v", err)
	}
	if got := os.Getenv("STYLEBOT_DOTENV_VALUE"); got != "from-file" {
		t.Errorf("got %q, want from-file", got)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("STYLEBOT_SET", "value")

	got := string(expandEnvVars([]byte("a=${STYLEBOT_SET} b=${STYLEBOT_UNSET_VAR:-fallback} c=${STYLEBOT_UNSET_VAR}")))
	if got != "a=value b=fallback c=" {
		t.Errorf("got %q", got)
	}
}

func TestLoadFile_Shipped(t *testing.T) {
	t.Setenv("EMBEDDING_BASE_URL", "https://api.example.com/v1/")
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := LoadFile(findConfigPath(env)); err != nil {
				t.Fatalf("load %s: %v", env, err)
			}
		})
	}
}
