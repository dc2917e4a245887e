package apicheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"
)

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPClient uses the real net/http package.
type RealHTTPClient struct {
	Timeout time.Duration // 0 means no timeout
}

// Do executes an HTTP request.
func (c *RealHTTPClient) Do(req *http.Request) (*http.Response, error) {
	client := &http.Client{Timeout: c.Timeout}
	return client.Do(req)
}

// maxEcho bounds how much of a response body is copied into result details.
const maxEcho = 1024

// exchange is the part of an HTTP response the checks inspect.
type exchange struct {
	URL           string
	Status        int
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// contentLength returns the Content-Length header, falling back to the
// transport's parsed length and finally "0".
func (e *exchange) contentLength() string {
	if v := e.Header.Get("Content-Length"); v != "" {
		return v
	}
	if e.ContentLength >= 0 {
		return strconv.FormatInt(e.ContentLength, 10)
	}
	return "0"
}

// echo returns the body as text suitable for result details.
func (e *exchange) echo() string {
	return snippet(e.Body)
}

type requestOptions struct {
	payload  interface{}
	skipBody bool
}

// send performs one HTTP round-trip. Unless skipBody is set, the whole
// response body is read into the exchange.
func send(ctx context.Context, client HTTPClient, method, url string, opts requestOptions) (*exchange, error) {
	var body io.Reader = http.NoBody
	if opts.payload != nil {
		data, err := json.Marshal(opts.payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if opts.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	ex := &exchange{
		URL:           url,
		Status:        resp.StatusCode,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
	}
	if ex.Header == nil {
		ex.Header = make(http.Header)
	}

	if opts.skipBody {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ex, nil
	}

	ex.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return ex, nil
}

// snippet renders at most maxEcho bytes of body, cut on a rune boundary.
func snippet(body []byte) string {
	if len(body) <= maxEcho {
		return string(bytes.TrimSpace(body))
	}
	cut := maxEcho
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(bytes.TrimSpace(body[:cut])) + "... (truncated)"
}

// statusError describes a response with an unexpected status code.
func statusError(ex *exchange) error {
	if len(bytes.TrimSpace(ex.Body)) == 0 {
		return fmt.Errorf("status: %d", ex.Status)
	}
	return fmt.Errorf("status: %d\nresponse: %s", ex.Status, ex.echo())
}
