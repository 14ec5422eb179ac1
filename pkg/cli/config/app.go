package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration file
type AppConfig struct {
	Pipeline Pipeline `toml:"pipeline"`
	Stub     Stub     `toml:"stub"`
}

// Pipeline tunes the relevance pipeline. Zero values keep the defaults.
type Pipeline struct {
	TopicSearchLimit   int    `toml:"topic_search_limit"`
	KeywordSearchLimit int    `toml:"keyword_search_limit"`
	KeywordCount       int    `toml:"keyword_count"`
	TopicCount         int    `toml:"topic_count"`
	ResultLimit        int    `toml:"result_limit"`
	Concurrency        int    `toml:"concurrency"`
	SearchTimeout      string `toml:"search_timeout"`
	EmbeddingTimeout   string `toml:"embedding_timeout"`
	RerankTimeout      string `toml:"rerank_timeout"`
	StreamTimeout      string `toml:"stream_timeout"`
}

// Stub lists the categories served as stub category entry points
type Stub struct {
	Categories []string `toml:"categories"`
}

// Timeouts bound single upstream calls
type Timeouts struct {
	Search    time.Duration
	Embedding time.Duration
	Rerank    time.Duration
}

// DefaultTimeouts returns the stock per-call timeouts
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Search:    10 * time.Second,
		Embedding: 30 * time.Second,
		Rerank:    15 * time.Second,
	}
}

// AppConfigFlag holds the --config flag. An empty path means all defaults.
type AppConfigFlag struct {
	path string
}

// Flags returns CLI flags for the configuration file
func (a *AppConfigFlag) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("STUBSCOUT_CONFIG"),
			Destination: &a.path,
		},
	}
}

// LogAttrs returns log attributes for the configuration file flag
func (a *AppConfigFlag) LogAttrs() []slog.Attr {
	return []slog.Attr{slog.String("path", a.path)}
}

// Path returns the configured file path
func (a *AppConfigFlag) Path() string {
	return a.path
}

// Configure loads the configuration file, or returns the defaults when no path is set
func (a *AppConfigFlag) Configure() (*AppConfig, error) {
	if a.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(a.path)
}

// parseDuration parses an optional duration field. Empty keeps def.
func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidConfig, "invalid duration", goerr.V(FieldKey, field), goerr.V("value", value))
	}
	if d <= 0 {
		return 0, goerr.Wrap(ErrInvalidConfig, "duration must be positive", goerr.V(FieldKey, field), goerr.V("value", value))
	}
	return d, nil
}

// PipelineSettings merges the [pipeline] section over the defaults
func (a *AppConfig) PipelineSettings() (model.PipelineSettings, error) {
	s := model.DefaultPipelineSettings()
	p := a.Pipeline

	overrides := []struct {
		field string
		value int
		dst   *int
	}{
		{"topic_search_limit", p.TopicSearchLimit, &s.TopicSearchLimit},
		{"keyword_search_limit", p.KeywordSearchLimit, &s.KeywordSearchLimit},
		{"keyword_count", p.KeywordCount, &s.KeywordCount},
		{"topic_count", p.TopicCount, &s.TopicCount},
		{"result_limit", p.ResultLimit, &s.ResultLimit},
		{"concurrency", p.Concurrency, &s.Concurrency},
	}
	for _, o := range overrides {
		if o.value < 0 {
			return s, goerr.Wrap(ErrInvalidConfig, "pipeline value must not be negative", goerr.V(FieldKey, o.field), goerr.V("value", o.value))
		}
		if o.value > 0 {
			*o.dst = o.value
		}
	}

	d, err := parseDuration("stream_timeout", p.StreamTimeout, s.StreamTimeout)
	if err != nil {
		return s, err
	}
	s.StreamTimeout = d

	if err := s.Validate(); err != nil {
		return s, goerr.Wrap(ErrInvalidConfig, err.Error())
	}
	return s, nil
}

// Timeouts merges the timeout fields of [pipeline] over the defaults
func (a *AppConfig) Timeouts() (Timeouts, error) {
	t := DefaultTimeouts()
	var err error
	if t.Search, err = parseDuration("search_timeout", a.Pipeline.SearchTimeout, t.Search); err != nil {
		return t, err
	}
	if t.Embedding, err = parseDuration("embedding_timeout", a.Pipeline.EmbeddingTimeout, t.Embedding); err != nil {
		return t, err
	}
	if t.Rerank, err = parseDuration("rerank_timeout", a.Pipeline.RerankTimeout, t.Rerank); err != nil {
		return t, err
	}
	return t, nil
}

// StubCategories returns the [stub] categories, or the default list when none are set
func (a *AppConfig) StubCategories() []string {
	if len(a.Stub.Categories) == 0 {
		return model.DefaultStubCategories()
	}
	return a.Stub.Categories
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if _, err := a.PipelineSettings(); err != nil {
		return err
	}
	if _, err := a.Timeouts(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(a.Stub.Categories))
	for i, c := range a.Stub.Categories {
		if strings.TrimSpace(c) == "" {
			return goerr.Wrap(ErrInvalidConfig, "stub category must not be blank", goerr.V("index", i))
		}
		if seen[c] {
			return goerr.Wrap(ErrInvalidConfig, "duplicate stub category", goerr.V("category", c))
		}
		seen[c] = true
	}

	return nil
}

// LogAttrs returns the effective settings as log attributes
func (a *AppConfig) LogAttrs() []slog.Attr {
	s, _ := a.PipelineSettings()
	t, _ := a.Timeouts()
	return []slog.Attr{
		slog.Group("pipeline",
			slog.Int("topic_search_limit", s.TopicSearchLimit),
			slog.Int("keyword_search_limit", s.KeywordSearchLimit),
			slog.Int("keyword_count", s.KeywordCount),
			slog.Int("topic_count", s.TopicCount),
			slog.Int("result_limit", s.ResultLimit),
			slog.Int("concurrency", s.Concurrency),
			slog.Duration("stream_timeout", s.StreamTimeout),
			slog.Duration("search_timeout", t.Search),
			slog.Duration("embedding_timeout", t.Embedding),
			slog.Duration("rerank_timeout", t.Rerank),
		),
		slog.Int("stub_categories", len(a.StubCategories())),
	}
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}
