package apicheck

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// PromptsCheck fetches the prompt list.
type PromptsCheck struct {
	BaseURL string     // backend base URL (required)
	Client  HTTPClient // injected for testing
}

// Name returns the check name.
func (c *PromptsCheck) Name() string { return NamePrompts }

// Run executes the prompts check.
func (c *PromptsCheck) Run(ctx context.Context) (string, error) {
	ex, err := send(ctx, c.Client, http.MethodGet, c.BaseURL+PromptsPath, requestOptions{})
	if err != nil {
		return "", err
	}
	if ex.Status != http.StatusOK {
		return "", statusError(ex)
	}
	if err := validateShape(schemaPrompts, ex.Body); err != nil {
		return "", err
	}

	count := gjson.GetBytes(ex.Body, "data.prompts.#").Int()
	return fmt.Sprintf("prompts: %d", count), nil
}
