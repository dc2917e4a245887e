package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variables read by ApplyEnv.
const (
	EnvFrontendURL       = "BANANACHECK_FRONTEND_URL"
	EnvBackendURL        = "BANANACHECK_BACKEND_URL"
	EnvReport            = "BANANACHECK_REPORT"
	EnvMinBackendVersion = "BANANACHECK_MIN_BACKEND_VERSION"
	EnvBrowserPath       = "BANANACHECK_BROWSER_PATH"
	EnvLogLevel          = "LOG_LEVEL"
)

// EnvGetter abstracts environment lookups for testability.
type EnvGetter interface {
	LookupEnv(key string) (string, bool)
}

// RealEnvGetter uses the process environment.
type RealEnvGetter struct{}

// LookupEnv reads key from the process environment.
func (r *RealEnvGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// LoadDotEnv loads .env files from the working directory into the process
// environment. Variables already set in the environment win.
func LoadDotEnv(logger logrus.FieldLogger) {
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logger.WithError(err).Warnf("Failed to load %s", file)
			continue
		}
		logger.Debugf("Loaded env file %s", file)
	}
}

// ApplyEnv overlays non-empty environment variables onto cfg.
func ApplyEnv(env EnvGetter, cfg *Config) {
	set := func(key string, dst *string) {
		if v, ok := env.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvFrontendURL, &cfg.FrontendURL)
	set(EnvBackendURL, &cfg.BackendURL)
	set(EnvReport, &cfg.ReportPath)
	set(EnvMinBackendVersion, &cfg.MinBackendVersion)
	set(EnvBrowserPath, &cfg.BrowserPath)
	set(EnvLogLevel, &cfg.LogLevel)
}
