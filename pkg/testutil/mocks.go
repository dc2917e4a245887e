package testutil

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockHTTPClient is a test double for HTTP clients. It records every
// request it receives.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)

	mu       sync.Mutex
	requests []*http.Request
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.DoFunc(req)
}

// Requests returns the requests received so far.
func (m *MockHTTPClient) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// MockResponse creates an http.Response with given status and body.
func MockResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Body:          io.NopCloser(strings.NewReader(body)),
		Header:        make(http.Header),
		ContentLength: -1,
	}
}

// RouteClient returns a MockHTTPClient that answers by request path.
// Unknown paths get a 404.
func RouteClient(routes map[string]func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			if fn, ok := routes[req.URL.Path]; ok {
				return fn(req)
			}
			return MockResponse(http.StatusNotFound, "not found"), nil
		},
	}
}
