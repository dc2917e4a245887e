package apicheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ImageAccessCheck generates an image and fetches it back from the
// backend. Only the response headers of the image are inspected.
type ImageAccessCheck struct {
	BaseURL string     // backend base URL (required)
	Client  HTTPClient // injected for testing
}

// Name returns the check name.
func (c *ImageAccessCheck) Name() string { return NameImageAccess }

// Run executes the image access check.
func (c *ImageAccessCheck) Run(ctx context.Context) (string, error) {
	payload := NewGenerateRequest(ImageAccessPrompt, "")
	gen, err := send(ctx, c.Client, http.MethodPost, c.BaseURL+TextToImagePath, requestOptions{payload: payload})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if gen.Status != http.StatusOK {
		return "", fmt.Errorf("image generation failed: %w", statusError(gen))
	}

	ref, err := imageRef(gen.Body)
	if err != nil {
		return "", err
	}
	imageURL := ResolveImageURL(c.BaseURL, ref)

	img, err := send(ctx, c.Client, http.MethodGet, imageURL, requestOptions{skipBody: true})
	if err != nil {
		return "", fmt.Errorf("image fetch failed: %w", err)
	}
	if img.Status != http.StatusOK {
		return "", fmt.Errorf("image fetch %s failed, status: %d", imageURL, img.Status)
	}

	return fmt.Sprintf("url: %s\nContent-Type: %s\nSize: %s bytes",
		imageURL, img.Header.Get("Content-Type"), img.contentLength()), nil
}

// imageRef extracts data[0].image_url from a generation response.
func imageRef(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("generation response is not valid JSON\nresponse: %s", snippet(body))
	}
	ref := gjson.GetBytes(body, "data.0.image_url")
	if !ref.Exists() {
		return "", fmt.Errorf("generation response has no data[0].image_url\nresponse: %s", snippet(body))
	}
	if ref.Type != gjson.String || strings.TrimSpace(ref.String()) == "" {
		return "", errors.New("generation response data[0].image_url is empty or not a string")
	}
	return strings.TrimSpace(ref.String()), nil
}

// ResolveImageURL joins a backend-relative image reference onto baseURL.
// Absolute http(s) references are returned unchanged.
func ResolveImageURL(baseURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return strings.TrimRight(baseURL, "/") + ref
}
