// Package browser drives a Chromium page through playwright-go for the UI
// checks.
package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/vertti/bananacheck/pkg/uicheck"
)

// Options configure the browser launch.
type Options struct {
	Headless       bool
	ExecutablePath string // empty uses the Playwright-managed Chromium
}

// Session owns the driver, browser, context and the one page shared by the
// UI checks.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    *Page
	log     logrus.FieldLogger
}

// Launch starts the Playwright driver and opens a fresh page. On error
// everything started so far is torn down.
func Launch(opts Options, log logrus.FieldLogger) (_ *Session, err error) {
	s := &Session{log: log}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	log.Debug("starting playwright driver")
	s.pw, err = playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ExecutablePath)
	}
	log.WithFields(logrus.Fields{
		"headless":   opts.Headless,
		"executable": opts.ExecutablePath,
	}).Debug("launching chromium")
	s.browser, err = s.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	s.context, err = s.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	s.page = newPage(page)
	return s, nil
}

// Page returns the shared page.
func (s *Session) Page() uicheck.Page { return s.page }

// Close releases the context, browser and driver in reverse order of
// creation. It is safe on a partially launched session.
func (s *Session) Close() error {
	var errs []error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
		s.pw = nil
	}
	if len(errs) == 0 {
		s.log.Debug("browser closed")
	}
	return errors.Join(errs...)
}
