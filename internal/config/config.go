package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/altinukshini/assetflow-tui/internal/highlight"
	"github.com/altinukshini/assetflow-tui/internal/pagination"
	"github.com/altinukshini/assetflow-tui/internal/search"
)

const (
	appName        = "assetflow"
	DefaultAPIURL  = "http://localhost:8080/api"
	EnvAPIURL      = "ASSETFLOW_API_URL"
	defaultTimeout = 15 * time.Second
)

type SearchConfig struct {
	Debounce    time.Duration `yaml:"debounce"`
	RecentLimit int           `yaml:"recent_limit"`
}

type HighlightConfig struct {
	Interval   time.Duration `yaml:"interval"`
	MaxRetries int           `yaml:"max_retries"`
	Duration   time.Duration `yaml:"duration"`
}

type Config struct {
	APIURL         string          `yaml:"api_url"`
	PageSize       int             `yaml:"page_size"`
	RequestTimeout time.Duration   `yaml:"request_timeout"`
	CacheTTL       time.Duration   `yaml:"cache_ttl"`
	CacheEntries   int             `yaml:"cache_entries"`
	Search         SearchConfig    `yaml:"search"`
	Highlight      HighlightConfig `yaml:"highlight"`
	LogLevel       string          `yaml:"log_level"`
	LogFile        string          `yaml:"log_file"`
	MetricsAddr    string          `yaml:"metrics_addr"`
	SessionFile    string          `yaml:"session_file"`
}

func Default() Config {
	h := highlight.DefaultOptions()
	return Config{
		APIURL:         DefaultAPIURL,
		PageSize:       pagination.DefaultPageSize,
		RequestTimeout: defaultTimeout,
		CacheTTL:       15 * time.Second,
		CacheEntries:   32,
		Search: SearchConfig{
			Debounce:    search.DefaultDebounce,
			RecentLimit: 5,
		},
		Highlight: HighlightConfig{
			Interval:   h.Interval,
			MaxRetries: h.MaxRetries,
			Duration:   h.Duration,
		},
		LogLevel:    "info",
		LogFile:     filepath.Join(cacheDir(), "assetflow.log"),
		SessionFile: filepath.Join(configDir(), "session.yaml"),
	}
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load returns the defaults overlaid with the YAML file at path and the
// environment. A missing file at the default path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if c.Highlight.MaxRetries < 0 {
		return fmt.Errorf("highlight.max_retries must not be negative")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("session_file is required")
	}
	return nil
}

// HighlightOptions converts the highlight section for the scroller.
func (c Config) HighlightOptions() highlight.Options {
	return highlight.Options{
		Interval:   c.Highlight.Interval,
		MaxRetries: c.Highlight.MaxRetries,
		Duration:   c.Highlight.Duration,
	}
}

// Host returns the API host for display in the header.
func (c Config) Host() string {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" {
		return c.APIURL
	}
	return u.Host
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(os.TempDir(), appName)
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(os.TempDir(), appName)
}
