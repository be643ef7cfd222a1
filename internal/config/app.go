package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/deweydb/dewey/internal/platform"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "DEWEY_"

// FileName is the config file looked up in each config location
const FileName = "config.yaml"

// OAuthClient is the registration of the desktop app at one provider
type OAuthClient struct {
	ClientID     string `yaml:"client_id" env:"CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"CLIENT_SECRET"`
}

// Enabled reports whether the provider is configured
func (c OAuthClient) Enabled() bool {
	return c.ClientID != ""
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`
	// Output is stderr, stdout or a file path
	Output string `yaml:"output" env:"OUTPUT"`
}

// App is the process configuration. Values come from config.yaml and are
// overridden by DEWEY_* environment variables.
type App struct {
	BackendURL   string `yaml:"backend_url" env:"BACKEND_URL" validate:"required,url"`
	BackendToken string `yaml:"backend_token" env:"BACKEND_TOKEN"`

	// RedirectURL is the loopback address the OAuth providers send the browser back to
	RedirectURL string      `yaml:"oauth_redirect_url" env:"OAUTH_REDIRECT_URL" validate:"required,url"`
	GitHub      OAuthClient `yaml:"github" envPrefix:"GITHUB_"`
	Google      OAuthClient `yaml:"google" envPrefix:"GOOGLE_"`

	TestTimeout  time.Duration `yaml:"connection_test_timeout" env:"CONNECTION_TEST_TIMEOUT" validate:"gt=0"`
	RequestRetry int           `yaml:"request_retries" env:"REQUEST_RETRIES" validate:"gte=0,lte=10"`

	Log LogConfig `yaml:"log" envPrefix:"LOG_"`
}

// Defaults returns the configuration used when nothing overrides it
func Defaults() App {
	return App{
		BackendURL:   "http://127.0.0.1:7420",
		RedirectURL:  "http://127.0.0.1:7421/auth/callback",
		TestTimeout:  10 * time.Second,
		RequestRetry: 3,
		Log:          LogConfig{Level: "info", Format: "text", Output: "stderr"},
	}
}

// Load reads the config file at path, or the first file found in the default
// locations when path is empty, then applies environment overrides. A missing
// file is not an error.
func Load(path string) (App, error) {
	cfg := Defaults()

	paths := []string{path}
	if path == "" {
		paths = DefaultPaths()
	}
	for _, p := range paths {
		err := loadFile(p, &cfg)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) || path != "" {
			return App{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return App{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

// DefaultPaths lists the config file locations in lookup order
func DefaultPaths() []string {
	var paths []string
	if dir, err := platform.ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, FileName))
	}
	return append(paths, FileName)
}

// Validate checks the loaded values
func (c App) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadFile(path string, cfg *App) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
