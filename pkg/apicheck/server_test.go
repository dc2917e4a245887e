package apicheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the checks with RealHTTPClient against httptest servers.

func jsonHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return h
}

func TestRealClient_HealthAndPrompts(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(HealthPath, httphelpers.HandlerWithResponse(200, jsonHeaders(), []byte(`{"status":"ok","version":"v1.0.0"}`)))
	mux.Handle(PromptsPath, httphelpers.HandlerWithResponse(200, jsonHeaders(), []byte(`{"data":{"prompts":[{},{}]}}`)))

	httphelpers.WithServer(mux, func(server *httptest.Server) {
		client := &RealHTTPClient{}

		details, err := (&HealthCheck{BaseURL: server.URL, MinVersion: "^1.0.0", Client: client}).Run(context.Background())
		require.NoError(t, err)
		assert.Contains(t, details, "version: v1.0.0")

		details, err = (&PromptsCheck{BaseURL: server.URL, Client: client}).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "prompts: 2", details)
	})
}

func TestRealClient_ImageAccess(t *testing.T) {
	imageHeaders := make(http.Header)
	imageHeaders.Set("Content-Type", "image/png")
	imageHandler, imageRequests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, imageHeaders, []byte("0123456789")),
	)

	mux := http.NewServeMux()
	mux.Handle(TextToImagePath, httphelpers.HandlerWithResponse(200, jsonHeaders(),
		[]byte(`{"success":true,"data":[{"image_url":"/images/abc.png","generation_time":1.5}]}`)))
	mux.Handle("/images/abc.png", imageHandler)

	httphelpers.WithServer(mux, func(server *httptest.Server) {
		details, err := (&ImageAccessCheck{BaseURL: server.URL, Client: &RealHTTPClient{}}).Run(context.Background())

		require.NoError(t, err)
		assert.Contains(t, details, "Content-Type: image/png")
		assert.Contains(t, details, "Size: 10 bytes")
		require.Len(t, imageRequests, 1)
		info := <-imageRequests
		assert.Equal(t, "/images/abc.png", info.Request.URL.Path)
	})
}

func TestRealClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	_, err := (&HealthCheck{BaseURL: url, Client: &RealHTTPClient{}}).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
