package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type MemgraphConfig struct {
	URI            string `toml:"uri" validate:"required"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	Database       string `toml:"database"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gte=0"`
	MaxPoolSize    int    `toml:"max_pool_size" validate:"gte=0"`
}

type LabelsConfig struct {
	// MaxLen gates abbreviation of long labels, 0 disables it.
	MaxLen           int  `toml:"max_len" validate:"gte=0"`
	FilterAccessions bool `toml:"filter_accessions"`
}

type ServerConfig struct {
	Port string `toml:"port" validate:"required,numeric"`
	Mode string `toml:"mode" validate:"omitempty,oneof=debug release test"`
}

type LoggingConfig struct {
	Mode string `toml:"mode" validate:"omitempty,oneof=development dev production prod"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	ServiceName  string  `toml:"service_name"`
	Endpoint     string  `toml:"endpoint"`
	Insecure     bool    `toml:"insecure"`
	SamplerRatio float64 `toml:"sampler_ratio" validate:"gte=0,lte=1"`
}

type ConcurrencyConfig struct {
	Labeling int `toml:"labeling" validate:"gte=1"`
	PageSize int `toml:"page_size" validate:"gte=1"`
}

type Config struct {
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Labels      LabelsConfig      `toml:"labels"`
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	Tracing     TracingConfig     `toml:"tracing"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

// Default returns the configuration used when no file is given. Values read
// from a file are layered on top of it.
func Default() *Config {
	return &Config{
		Memgraph: MemgraphConfig{
			URI:            "bolt://localhost:7687",
			TimeoutSeconds: 10,
			MaxPoolSize:    50,
		},
		Labels: LabelsConfig{
			MaxLen: 63,
		},
		Server: ServerConfig{
			Port: "8080",
			Mode: "release",
		},
		Logging: LoggingConfig{
			Mode: "development",
		},
		Tracing: TracingConfig{
			ServiceName:  "knetlabel",
			SamplerRatio: 0.1,
		},
		Concurrency: ConcurrencyConfig{
			Labeling: 8,
			PageSize: 500,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set and exists, else returns Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides config values with the environment, if present.
func (c *Config) ApplyEnv() error {
	if v := env("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := env("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := env("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := env("MEMGRAPH_DATABASE"); v != "" {
		c.Memgraph.Database = v
	}
	if v := env("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := env("GIN_MODE"); v != "" {
		c.Server.Mode = v
	}
	if v := env("LOG_MODE"); v != "" {
		c.Logging.Mode = v
	}
	if v := env("LABEL_MAX_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LABEL_MAX_LEN %q: %w", v, err)
		}
		c.Labels.MaxLen = n
	}
	if v := env("LABEL_FILTER_ACCESSIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LABEL_FILTER_ACCESSIONS %q: %w", v, err)
		}
		c.Labels.FilterAccessions = b
	}
	if v := env("OTEL_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid OTEL_ENABLED %q: %w", v, err)
		}
		c.Tracing.Enabled = b
	}
	if v := env("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Tracing.Endpoint = v
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
