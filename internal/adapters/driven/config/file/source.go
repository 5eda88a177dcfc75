package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// Environment variables overriding the configured credentials.
const (
	EnvConsumerKey    = "WCGRAPH_CONSUMER_KEY"
	EnvConsumerSecret = "WCGRAPH_CONSUMER_SECRET"
)

// ConfigFile is the default configuration file name.
const ConfigFile = "config.toml"

// sourceFile mirrors the TOML layout of the configuration file.
type sourceFile struct {
	API             string   `toml:"api"`
	HTTPS           bool     `toml:"https"`
	Fields          []string `toml:"fields"`
	APIVersion      string   `toml:"api_version"`
	PerPage         int      `toml:"per_page"`
	WPAPIPrefix     string   `toml:"wp_api_prefix"`
	QueryStringAuth bool     `toml:"query_string_auth"`
	Port            string   `toml:"port"`
	Encoding        string   `toml:"encoding"`
	Category        string   `toml:"category"`

	APIKeys struct {
		ConsumerKey    string `toml:"consumer_key"`
		ConsumerSecret string `toml:"consumer_secret"`
	} `toml:"api_keys"`

	Transport struct {
		Timeout       string            `toml:"timeout"`
		MaxIdleConns  int               `toml:"max_idle_conns"`
		UserAgent     string            `toml:"user_agent"`
		RatePerSecond float64           `toml:"rate_per_second"`
		Headers       map[string]string `toml:"headers"`
	} `toml:"transport"`

	Media struct {
		Dir         string `toml:"dir"`
		Concurrency int    `toml:"concurrency"`
	} `toml:"media"`

	Pipeline struct {
		Concurrency int `toml:"concurrency"`
	} `toml:"pipeline"`
}

// DefaultConfigPath returns ~/.wcgraph/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".wcgraph", ConfigFile), nil
}

// LoadSourceConfig reads, defaults and validates the configuration at path.
// Credentials from the environment take precedence over the file.
func LoadSourceConfig(path string) (domain.SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := ParseSourceConfig(data)
	if err != nil {
		return domain.SourceConfig{}, fmt.Errorf("%s: %w", path, err)
	}

	if key := os.Getenv(EnvConsumerKey); key != "" {
		cfg.ConsumerKey = key
	}
	if secret := os.Getenv(EnvConsumerSecret); secret != "" {
		cfg.ConsumerSecret = secret
	}

	if cfg.Media.Dir != "" && !filepath.IsAbs(cfg.Media.Dir) {
		cfg.Media.Dir = filepath.Join(filepath.Dir(path), cfg.Media.Dir)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return domain.SourceConfig{}, err
	}
	return cfg, nil
}

// ParseSourceConfig decodes TOML into a source configuration. Unknown
// keys are rejected. The result is neither defaulted nor validated.
func ParseSourceConfig(data []byte) (domain.SourceConfig, error) {
	var f sourceFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return domain.SourceConfig{}, fmt.Errorf("%w: %s", domain.ErrConfigInvalid, strict.String())
		}
		return domain.SourceConfig{}, fmt.Errorf("%w: %w", domain.ErrConfigInvalid, err)
	}

	cfg := domain.SourceConfig{
		API:             f.API,
		HTTPS:           f.HTTPS,
		ConsumerKey:     f.APIKeys.ConsumerKey,
		ConsumerSecret:  f.APIKeys.ConsumerSecret,
		Fields:          f.Fields,
		APIVersion:      f.APIVersion,
		PerPage:         f.PerPage,
		WPAPIPrefix:     f.WPAPIPrefix,
		QueryStringAuth: f.QueryStringAuth,
		Port:            f.Port,
		Encoding:        f.Encoding,
		Category:        f.Category,
		Transport: domain.TransportConfig{
			MaxIdleConns:  f.Transport.MaxIdleConns,
			UserAgent:     f.Transport.UserAgent,
			RatePerSecond: f.Transport.RatePerSecond,
			Headers:       f.Transport.Headers,
		},
		Media: domain.MediaConfig{
			Dir:         f.Media.Dir,
			Concurrency: f.Media.Concurrency,
		},
		Concurrency: f.Pipeline.Concurrency,
	}

	if f.Transport.Timeout != "" {
		timeout, err := time.ParseDuration(f.Transport.Timeout)
		if err != nil {
			return domain.SourceConfig{}, fmt.Errorf("%w: transport.timeout: %w", domain.ErrConfigInvalid, err)
		}
		cfg.Transport.Timeout = timeout
	}

	return cfg, nil
}
