package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

// Defaults
const (
	DefaultAPIURL         = "http://localhost:8000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultPageSize       = 5

	configFileName = "config.yaml"
	homeDirName    = ".classconnect"
)

// Config holds the CLI configuration.
//
// Values are resolved in precedence order: environment variables, then the
// YAML config file under the classconnect home directory, then defaults.
// A .env file in the working directory is loaded first so local overrides
// behave the same as exported variables.
type Config struct {
	// APIURL is the base URL of the ClassConnect platform
	APIURL string `yaml:"api_url"`

	// Home is the directory holding the token store and config file
	Home string `yaml:"-"`

	// RequestTimeout bounds every HTTP request issued by the client
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// SearchDebounce is the quiet period after the last keystroke before a
	// search query is issued
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// PageSize is the number of courses per page in list views
	PageSize int `yaml:"page_size"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format (text, json)
	LogFormat string `yaml:"log_format"`
}

// Load resolves the CLI configuration.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         DefaultAPIURL,
		RequestTimeout: DefaultRequestTimeout,
		SearchDebounce: DefaultSearchDebounce,
		PageSize:       DefaultPageSize,
		LogLevel:       "info",
		LogFormat:      "text",
	}

	home, err := resolveHome()
	if err != nil {
		return nil, err
	}
	cfg.Home = home

	if err := cfg.loadFile(filepath.Join(home, configFileName)); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	return cfg, nil
}

// TokenStorePath returns the path of the encrypted token store file.
func (c *Config) TokenStorePath() string {
	return filepath.Join(c.Home, "session.enc")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(errors.ErrCodeFileUnmarshal, "failed to parse config file", err).
			WithSuggestion("Check the YAML syntax in " + path)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("CLASSCONNECT_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CLASSCONNECT_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("CLASSCONNECT_LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("CLASSCONNECT_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
}

func resolveHome() (string, error) {
	if v := strings.TrimSpace(os.Getenv("CLASSCONNECT_HOME")); v != "" {
		return v, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileReadFailed, "could not determine home directory", err).
			WithSuggestion("Set CLASSCONNECT_HOME explicitly")
	}
	return filepath.Join(userHome, homeDirName), nil
}
