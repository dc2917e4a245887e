package apicheck

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mountSelectors locate the element a single-page app renders into,
// in priority order.
var mountSelectors = []string{"#root", "main", ".app"}

// FrontendShellCheck fetches the frontend's root document over plain HTTP
// and verifies it carries an application mount point.
type FrontendShellCheck struct {
	BaseURL string     // frontend base URL (required)
	Client  HTTPClient // injected for testing
}

// Name returns the check name.
func (c *FrontendShellCheck) Name() string { return NameFrontendShell }

// Run executes the frontend shell check.
func (c *FrontendShellCheck) Run(ctx context.Context) (string, error) {
	ex, err := send(ctx, c.Client, http.MethodGet, c.BaseURL+"/", requestOptions{})
	if err != nil {
		return "", err
	}
	if ex.Status != http.StatusOK {
		return "", statusError(ex)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(ex.Body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	mount := ""
	for _, sel := range mountSelectors {
		if doc.Find(sel).Length() > 0 {
			mount = sel
			break
		}
	}
	if mount == "" {
		return "", fmt.Errorf("no application mount point (%s) in served HTML", strings.Join(mountSelectors, ", "))
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "(empty)"
	}
	return fmt.Sprintf("title: %s\nmount point: %s", title, mount), nil
}
