package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/bananacheck/pkg/config"
	"github.com/vertti/bananacheck/pkg/suite"
)

var (
	runConfigPath        string
	runFrontendURL       string
	runBackendURL        string
	runReportPath        string
	runRequestTimeout    time.Duration
	runResponseTimeout   time.Duration
	runHeadless          bool
	runBrowserPath       string
	runMinBackendVersion string
	runWait              time.Duration
	runLogLevel          string
)

// launchBrowser opens the browser for the UI phase; tests replace it.
var launchBrowser suite.Launcher = suite.LaunchChromium

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every check and write the report (default)",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runChecks,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "config file (default: search for "+config.FileName+")")
	runCmd.Flags().StringVar(&runFrontendURL, "frontend-url", "", "frontend base URL")
	runCmd.Flags().StringVar(&runBackendURL, "backend-url", "", "backend base URL")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "report output path")
	runCmd.Flags().DurationVar(&runRequestTimeout, "request-timeout", 0, "HTTP request timeout (0 = none)")
	runCmd.Flags().DurationVar(&runResponseTimeout, "response-timeout", 0, "how long the UI flow waits for the generation response")
	runCmd.Flags().BoolVar(&runHeadless, "headless", true, "run the browser headless")
	runCmd.Flags().StringVar(&runBrowserPath, "browser-path", "", "Chromium executable (default: Playwright-managed)")
	runCmd.Flags().StringVar(&runMinBackendVersion, "min-backend-version", "", "semver constraint the backend version must satisfy")
	runCmd.Flags().DurationVar(&runWait, "wait", 0, "wait up to this long for both services to accept connections")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

func runChecks(cmd *cobra.Command, _ []string) error {
	logger, _ := newLogger(cmd.ErrOrStderr(), "warn")

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return &configError{err: err}
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &configError{err: fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)}
	}
	logger.SetLevel(lvl)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &suite.Suite{
		Config: cfg,
		Launch: launchBrowser,
		Out:    cmd.OutOrStdout(),
		Log:    logger,
	}
	_, err = s.Execute(ctx)
	if ctx.Err() != nil {
		logger.Warn("run interrupted")
	}
	return err
}

// resolveConfig layers defaults, the config file, .env files, the
// environment and changed flags, then validates the result.
func resolveConfig(cmd *cobra.Command, logger logrus.FieldLogger) (config.Config, error) {
	cfg := config.Default()

	cwd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("failed to get working directory: %w", err)
	}
	path, err := config.FindFile(cwd, runConfigPath)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		logger.WithField("path", path).Debug("loading config file")
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	config.LoadDotEnv(logger)
	config.ApplyEnv(&config.RealEnvGetter{}, &cfg)

	flags := cmd.Flags()
	if flags.Changed("frontend-url") {
		cfg.FrontendURL = runFrontendURL
	}
	if flags.Changed("backend-url") {
		cfg.BackendURL = runBackendURL
	}
	if flags.Changed("report") {
		cfg.ReportPath = runReportPath
	}
	if flags.Changed("request-timeout") {
		cfg.RequestTimeout = runRequestTimeout
	}
	if flags.Changed("response-timeout") {
		cfg.ResponseWaitTicks = ticksFor(runResponseTimeout, cfg.ResponsePollInterval)
	}
	if flags.Changed("headless") {
		cfg.Headless = runHeadless
	}
	if flags.Changed("browser-path") {
		cfg.BrowserPath = runBrowserPath
	}
	if flags.Changed("min-backend-version") {
		cfg.MinBackendVersion = runMinBackendVersion
	}
	if flags.Changed("wait") {
		cfg.Wait = runWait
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = runLogLevel
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ticksFor converts a total wait into whole ticks of interval, rounding up.
func ticksFor(total, interval time.Duration) int {
	if interval <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(interval)))
}
