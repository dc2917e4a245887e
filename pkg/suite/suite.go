// Package suite wires the check catalogue into a run: the backend phase,
// the browser-driven UI phase, and the report at the end.
package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vertti/bananacheck/pkg/apicheck"
	"github.com/vertti/bananacheck/pkg/browser"
	"github.com/vertti/bananacheck/pkg/check"
	"github.com/vertti/bananacheck/pkg/config"
	"github.com/vertti/bananacheck/pkg/output"
	"github.com/vertti/bananacheck/pkg/readiness"
	"github.com/vertti/bananacheck/pkg/report"
	"github.com/vertti/bananacheck/pkg/session"
	"github.com/vertti/bananacheck/pkg/uicheck"
)

// ErrChecksFailed is returned by Execute when the report records at least
// one FAIL.
var ErrChecksFailed = errors.New("one or more checks failed")

// Phase headers printed before each group of checks.
const (
	BackendPhase = "Backend API checks"
	UIPhase      = "Frontend UI checks"
)

// Browser is an open browser session with one page.
type Browser interface {
	Page() uicheck.Page
	Close() error
}

// Launcher opens a browser session.
type Launcher func(opts browser.Options, log logrus.FieldLogger) (Browser, error)

// LaunchChromium is the Launcher backed by playwright-go.
func LaunchChromium(opts browser.Options, log logrus.FieldLogger) (Browser, error) {
	s, err := browser.Launch(opts, log)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Suite runs the fixed catalogue against one frontend and one backend.
type Suite struct {
	Config     config.Config
	HTTPClient apicheck.HTTPClient // nil uses apicheck.RealHTTPClient
	Launch     Launcher            // nil uses LaunchChromium
	Dialer     readiness.TCPDialer // nil uses readiness.RealTCPDialer
	// NewTicker drives the UI response wait; nil uses real time.
	NewTicker func(time.Duration) uicheck.Ticker
	Out       io.Writer
	Log       logrus.FieldLogger
	// Now overrides the clock used for timestamps; nil uses time.Now.
	Now func() time.Time
}

func (s *Suite) httpClient() apicheck.HTTPClient {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &apicheck.RealHTTPClient{Timeout: s.Config.RequestTimeout}
}

func (s *Suite) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

// BackendChecks returns the backend phase in execution order.
func (s *Suite) BackendChecks() []check.Checker {
	cfg := s.Config
	client := s.httpClient()
	return []check.Checker{
		&apicheck.HealthCheck{BaseURL: cfg.BackendURL, MinVersion: cfg.MinBackendVersion, Client: client},
		&apicheck.TextToImageCheck{BaseURL: cfg.BackendURL, Prompt: cfg.Prompt, Client: client},
		&apicheck.ImageAccessCheck{BaseURL: cfg.BackendURL, Client: client},
		&apicheck.PromptsCheck{BaseURL: cfg.BackendURL, Client: client},
		&apicheck.FrontendShellCheck{BaseURL: cfg.FrontendURL, Client: client},
	}
}

// UIChecks returns the UI phase in execution order, all sharing page.
func (s *Suite) UIChecks(page uicheck.Page) []check.Checker {
	cfg := s.Config
	return []check.Checker{
		&uicheck.LoadingCheck{URL: cfg.FrontendURL, Page: page},
		&uicheck.NavigationCheck{URL: cfg.FrontendURL, Page: page},
		&uicheck.FormCheck{URL: cfg.FrontendURL, Page: page},
		&uicheck.GenerationFlowCheck{
			URL:       cfg.FrontendURL,
			Prompt:    cfg.Prompt,
			Page:      page,
			Ticks:     cfg.ResponseWaitTicks,
			Interval:  cfg.ResponsePollInterval,
			NewTicker: s.NewTicker,
		},
	}
}

// Run executes both phases into sess.
func (s *Suite) Run(ctx context.Context, sess *session.Session) {
	s.run(ctx, sess, s.logger())
}

func (s *Suite) run(ctx context.Context, sess *session.Session, log logrus.FieldLogger) {
	output.PrintPhase(s.Out, BackendPhase)
	log.WithField("backend", s.Config.BackendURL).Debug("backend phase started")
	for _, c := range s.BackendChecks() {
		start := time.Now()
		r := sess.Run(ctx, c)
		log.WithFields(logrus.Fields{
			"check":    r.Name,
			"status":   r.Status,
			"duration": time.Since(start),
		}).Debug("check finished")
	}

	output.PrintPhase(s.Out, UIPhase)
	log.WithField("frontend", s.Config.FrontendURL).Debug("UI phase started")
	s.runUI(ctx, sess, log)
}

func (s *Suite) runUI(ctx context.Context, sess *session.Session, log logrus.FieldLogger) {
	if ctx.Err() != nil {
		for _, c := range s.UIChecks(nil) {
			sess.Run(ctx, c)
		}
		return
	}

	launch := s.Launch
	if launch == nil {
		launch = LaunchChromium
	}
	b, err := launch(browser.Options{Headless: s.Config.Headless, ExecutablePath: s.Config.BrowserPath}, log)
	if err != nil {
		log.WithError(err).Error("browser launch failed")
		for _, c := range s.UIChecks(nil) {
			sess.Record(check.Failf(c.Name(), "browser launch failed: %w", err))
		}
		return
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.WithError(err).Warn("browser close failed")
		}
	}()

	for _, c := range s.UIChecks(b.Page()) {
		sess.Run(ctx, c)
	}
}

// Execute performs a complete run: optional readiness wait, both phases,
// the console summary and the report artifact. It returns ErrChecksFailed
// when any check failed and a wrapped error when the report cannot be
// saved.
func (s *Suite) Execute(ctx context.Context) (report.Report, error) {
	log := s.logger()
	now := s.Now
	if now == nil {
		now = time.Now
	}

	if s.Config.Wait > 0 {
		s.waitReady(ctx)
	}

	sess := session.New(
		session.WithClock(now),
		session.WithObserver(func(r check.Result) { output.PrintResult(s.Out, r) }),
	)
	log = log.WithField("run", sess.ID())
	log.Debug("run started")

	s.run(ctx, sess, log)

	rep := report.Build(report.RunInfo{
		ID:          sess.ID(),
		StartedAt:   report.FormatTime(sess.StartedAt()),
		FinishedAt:  report.FormatTime(now()),
		FrontendURL: s.Config.FrontendURL,
		BackendURL:  s.Config.BackendURL,
	}, sess.Results())

	report.Print(s.Out, rep)

	digest, err := report.Write(s.Config.ReportPath, rep)
	if err != nil {
		return rep, fmt.Errorf("save report: %w", err)
	}
	fmt.Fprintf(s.Out, "\nReport saved to %s\nblake3: %s\n", s.Config.ReportPath, digest)
	log.WithFields(logrus.Fields{"path": s.Config.ReportPath, "blake3": digest}).Debug("report saved")

	if !rep.OK() {
		return rep, ErrChecksFailed
	}
	return rep, nil
}

// waitReady blocks until both services accept TCP connections or the
// configured wait runs out. Failure only logs; the checks report it.
func (s *Suite) waitReady(ctx context.Context) {
	log := s.logger()

	var addrs []string
	for _, u := range []string{s.Config.BackendURL, s.Config.FrontendURL} {
		addr, err := readiness.HostPort(u)
		if err != nil {
			log.WithError(err).Warn("skipping readiness wait")
			continue
		}
		addrs = append(addrs, addr)
	}

	dialer := s.Dialer
	if dialer == nil {
		dialer = &readiness.RealTCPDialer{}
	}
	w := &readiness.Waiter{Dialer: dialer, Log: log}
	if err := w.Wait(ctx, addrs, s.Config.Wait); err != nil {
		log.WithError(err).Warn("services not ready, running checks anyway")
		fmt.Fprintf(s.Out, "warning: %v\n", err)
	}
}
