// Package config resolves the harness settings from defaults, an optional
// YAML file, .env files, environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/vertti/bananacheck/pkg/report"
)

// DefaultPrompt is the generation prompt sent by the API and UI flow checks.
const DefaultPrompt = "一只可爱的小猫咪，蓝色的眼睛"

// Config holds every setting of a run.
type Config struct {
	FrontendURL          string        `yaml:"frontend_url"`
	BackendURL           string        `yaml:"backend_url"`
	ReportPath           string        `yaml:"report"`
	Prompt               string        `yaml:"prompt"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`        // 0 means no timeout
	ResponseWaitTicks    int           `yaml:"response_wait_ticks"`    // UI response wait length in ticks
	ResponsePollInterval time.Duration `yaml:"response_poll_interval"` // duration of one tick
	Headless             bool          `yaml:"headless"`
	BrowserPath          string        `yaml:"browser_path"`
	MinBackendVersion    string        `yaml:"min_backend_version"` // semver constraint, e.g. ">= 1.0.0"
	Wait                 time.Duration `yaml:"wait"`                // readiness wait before the run, 0 disables
	LogLevel             string        `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FrontendURL:          "http://localhost:3000",
		BackendURL:           "http://localhost:8080",
		ReportPath:           report.DefaultPath,
		Prompt:               DefaultPrompt,
		ResponseWaitTicks:    30,
		ResponsePollInterval: time.Second,
		Headless:             true,
		LogLevel:             "warn",
	}
}

// ResponseTimeout returns the total UI response wait.
func (c Config) ResponseTimeout() time.Duration {
	return time.Duration(c.ResponseWaitTicks) * c.ResponsePollInterval
}

// Normalize trims trailing slashes from the base URLs so paths can be
// appended directly.
func (c *Config) Normalize() {
	c.FrontendURL = strings.TrimRight(strings.TrimSpace(c.FrontendURL), "/")
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	c.Prompt = strings.TrimSpace(c.Prompt)
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if err := validateBaseURL("frontend_url", c.FrontendURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateBaseURL("backend_url", c.BackendURL); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.ReportPath) == "" {
		errs = append(errs, errors.New("report path is required"))
	}
	if c.ResponseWaitTicks <= 0 {
		errs = append(errs, fmt.Errorf("response_wait_ticks must be positive, got %d", c.ResponseWaitTicks))
	}
	if c.ResponsePollInterval <= 0 {
		errs = append(errs, fmt.Errorf("response_poll_interval must be positive, got %s", c.ResponsePollInterval))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout))
	}
	if c.Wait < 0 {
		errs = append(errs, fmt.Errorf("wait must not be negative, got %s", c.Wait))
	}
	if c.MinBackendVersion != "" {
		if _, err := semver.NewConstraint(c.MinBackendVersion); err != nil {
			errs = append(errs, fmt.Errorf("invalid min_backend_version %q: %w", c.MinBackendVersion, err))
		}
	}
	return errors.Join(errs...)
}

func validateBaseURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid %s: %q", field, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https, got %q", field, u.Scheme)
	}
	return nil
}
