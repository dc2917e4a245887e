package uicheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Check names as they appear in the report.
const (
	NameLoading        = "frontend loading"
	NameNavigation     = "frontend navigation"
	NameForm           = "generation form"
	NameGenerationFlow = "frontend generation flow"
)

// open navigates to url and waits for the network to go idle.
func open(ctx context.Context, page Page, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitForNetworkIdle(); err != nil {
		return fmt.Errorf("wait for network idle: %w", err)
	}
	return nil
}

// LoadingCheck verifies the frontend loads with a non-empty title.
type LoadingCheck struct {
	URL  string
	Page Page
}

func (c *LoadingCheck) Name() string { return NameLoading }

func (c *LoadingCheck) Run(ctx context.Context) (string, error) {
	if err := open(ctx, c.Page, c.URL); err != nil {
		return "", err
	}
	title, err := c.Page.Title()
	if err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("page title is empty")
	}
	return "title: " + title, nil
}

// NavigationCheck looks for navigation links, accepting a bare
// single-page app shell when there are none.
type NavigationCheck struct {
	URL  string
	Page Page
}

func (c *NavigationCheck) Name() string { return NameNavigation }

func (c *NavigationCheck) Run(ctx context.Context) (string, error) {
	if err := open(ctx, c.Page, c.URL); err != nil {
		return "", err
	}

	n, err := CountMatches(c.Page, NavigationSelectors)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return fmt.Sprintf("navigation elements: %d", n), nil
	}

	_, sel, err := FirstMatch(c.Page, AppShellSelectors)
	if errors.Is(err, ErrNoMatch) {
		return "", errors.New("no navigation elements or main content area found")
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("single-page app structure (%s)", sel), nil
}

// FormCheck verifies the page offers a prompt input and a generate button.
type FormCheck struct {
	URL  string
	Page Page
}

func (c *FormCheck) Name() string { return NameForm }

func (c *FormCheck) Run(ctx context.Context) (string, error) {
	if err := open(ctx, c.Page, c.URL); err != nil {
		return "", err
	}

	inputs, err := CountMatches(c.Page, PromptInputSelectors)
	if err != nil {
		return "", err
	}
	buttons, err := CountMatches(c.Page, GenerateButtonSelectors)
	if err != nil {
		return "", err
	}

	details := fmt.Sprintf("prompt inputs: %d\ngenerate buttons: %d", inputs, buttons)
	if inputs == 0 || buttons == 0 {
		return "", errors.New(details)
	}
	return details, nil
}

// GenerationFlowCheck fills the prompt, clicks generate and waits for the
// generation request to come back.
type GenerationFlowCheck struct {
	URL      string
	Prompt   string
	Page     Page
	Ticks    int
	Interval time.Duration
	// NewTicker overrides the wait clock; nil uses NewRealTicker.
	NewTicker func(time.Duration) Ticker
}

func (c *GenerationFlowCheck) Name() string { return NameGenerationFlow }

func (c *GenerationFlowCheck) Run(ctx context.Context) (string, error) {
	if err := open(ctx, c.Page, c.URL); err != nil {
		return "", err
	}

	input, _, err := FirstMatch(c.Page, PromptFieldChain)
	if err != nil {
		return "", fmt.Errorf("prompt input not found: %w", err)
	}
	if err := input.Fill(c.Prompt); err != nil {
		return "", fmt.Errorf("fill prompt: %w", err)
	}

	button, _, err := FirstMatch(c.Page, SubmitChain)
	if err != nil {
		return "", fmt.Errorf("generate button not found: %w", err)
	}

	waiter := NewResponseWaiter(c.Page, GenerationPath, c.Ticks, c.Interval, c.NewTicker)
	defer waiter.Close()

	if err := button.Click(); err != nil {
		return "", fmt.Errorf("click generate: %w", err)
	}

	resp, err := waiter.Wait(ctx)
	if err != nil {
		return "", err
	}
	if resp.Status() >= 400 {
		return "", fmt.Errorf("generation request failed, status: %d", resp.Status())
	}
	return fmt.Sprintf("generation request sent, status: %d", resp.Status()), nil
}
