package apicheck

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// TextToImageCheck posts a generation request and validates the response.
type TextToImageCheck struct {
	BaseURL string     // backend base URL (required)
	Prompt  string     // prompt fixture
	Client  HTTPClient // injected for testing
}

// Name returns the check name.
func (c *TextToImageCheck) Name() string { return NameTextToImage }

// Run executes the text-to-image check.
func (c *TextToImageCheck) Run(ctx context.Context) (string, error) {
	payload := NewGenerateRequest(c.Prompt, "standard")
	ex, err := send(ctx, c.Client, http.MethodPost, c.BaseURL+TextToImagePath, requestOptions{payload: payload})
	if err != nil {
		return "", err
	}
	if ex.Status != http.StatusOK {
		return "", statusError(ex)
	}
	if err := validateShape(schemaGeneration, ex.Body); err != nil {
		return "", err
	}

	first := gjson.GetBytes(ex.Body, "data.0")
	return fmt.Sprintf("image URL: %s\ngeneration time: %.2fs",
		first.Get("image_url").String(),
		first.Get("generation_time").Float(),
	), nil
}
