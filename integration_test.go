package bananacheck_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vertti/bananacheck/pkg/apicheck"
	"github.com/vertti/bananacheck/pkg/browser"
	"github.com/vertti/bananacheck/pkg/check"
	"github.com/vertti/bananacheck/pkg/config"
	"github.com/vertti/bananacheck/pkg/readiness"
	"github.com/vertti/bananacheck/pkg/report"
	"github.com/vertti/bananacheck/pkg/suite"
	"github.com/vertti/bananacheck/pkg/testutil"
)

// Integration tests verify Real* implementations work with actual system resources.
// Unit tests in each package cover edge cases; these tests verify end-to-end integration.

// backendStub mimics the image generation backend.
func backendStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"healthy","version":"2.0.1"}`)
	})
	mux.HandleFunc("/api/v1/generate/text2img", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req apicheck.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":[{"image_url":"/static/images/gen-1.png","generation_time":3.14159}]}`)
	})
	mux.HandleFunc("/static/images/gen-1.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", "4096")
		_, _ = w.Write(make([]byte, 4096))
	})
	mux.HandleFunc("/api/v1/prompts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"prompts":[{"text":"猫"},{"text":"狗"}],"total":2}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func frontendStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, `<!DOCTYPE html><html><head><title>Nano Banana AI 图片生成</title></head>`+
			`<body><div id="root"></div><script type="module" src="/src/main.tsx"></script></body></html>`)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIntegration_BackendChecks(t *testing.T) {
	backend := backendStub(t)
	client := &apicheck.RealHTTPClient{Timeout: 5 * time.Second}

	checks := []check.Checker{
		&apicheck.HealthCheck{BaseURL: backend.URL, MinVersion: "^2", Client: client},
		&apicheck.TextToImageCheck{BaseURL: backend.URL, Prompt: config.DefaultPrompt, Client: client},
		&apicheck.ImageAccessCheck{BaseURL: backend.URL, Client: client},
		&apicheck.PromptsCheck{BaseURL: backend.URL, Client: client},
	}

	for _, c := range checks {
		result := check.Guard(context.Background(), c)
		if !result.OK() {
			t.Errorf("%s: Status = %v, want PASS (details: %v)", result.Name, result.Status, result.Details)
		}
	}
}

func TestIntegration_ImageAccessDetails(t *testing.T) {
	backend := backendStub(t)

	details, err := (&apicheck.ImageAccessCheck{BaseURL: backend.URL, Client: &apicheck.RealHTTPClient{}}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{backend.URL + "/static/images/gen-1.png", "Content-Type: image/png", "Size: 4096 bytes"} {
		if !strings.Contains(details, want) {
			t.Errorf("details = %q, want to contain %q", details, want)
		}
	}
}

func TestIntegration_FrontendShell(t *testing.T) {
	frontend := frontendStub(t)

	result := check.Guard(context.Background(), &apicheck.FrontendShellCheck{BaseURL: frontend.URL, Client: &apicheck.RealHTTPClient{}})

	if !result.OK() {
		t.Fatalf("Status = %v, want PASS (details: %v)", result.Status, result.Details)
	}
	if !strings.Contains(result.Details, "title: Nano Banana AI 图片生成") {
		t.Errorf("details = %q, want page title", result.Details)
	}
}

func TestIntegration_UnreachableBackend(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	result := check.Guard(context.Background(), &apicheck.HealthCheck{BaseURL: url, Client: &apicheck.RealHTTPClient{Timeout: time.Second}})

	if result.OK() {
		t.Fatal("Status = PASS, want FAIL for closed server")
	}
	if result.Details == "" {
		t.Error("Details empty, want connection error")
	}
}

func TestIntegration_Readiness(t *testing.T) {
	backend := backendStub(t)
	frontend := frontendStub(t)

	var addrs []string
	for _, u := range []string{backend.URL, frontend.URL} {
		addr, err := readiness.HostPort(u)
		if err != nil {
			t.Fatalf("HostPort(%s) error = %v", u, err)
		}
		addrs = append(addrs, addr)
	}

	w := &readiness.Waiter{Dialer: &readiness.RealTCPDialer{}}
	if err := w.Wait(context.Background(), addrs, 5*time.Second); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestIntegration_FullRun(t *testing.T) {
	backend := backendStub(t)
	frontend := frontendStub(t)

	cfg := config.Default()
	cfg.BackendURL = backend.URL
	cfg.FrontendURL = frontend.URL
	cfg.ReportPath = filepath.Join(t.TempDir(), report.DefaultPath)

	page := &testutil.FakePage{
		TitleText: "Nano Banana AI",
		Matches: map[string]int{
			`main`:                        1,
			`textarea`:                    1,
			`textarea[placeholder*="提示"]`: 1,
			`button:has-text("生成")`:       1,
		},
		ClickResponses: []testutil.FakeResponse{{RespURL: backend.URL + "/api/v1/generate/text2img", RespStatus: 200}},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var out strings.Builder
	s := &suite.Suite{
		Config: cfg,
		Launch: func(browser.Options, logrus.FieldLogger) (suite.Browser, error) {
			return &testutil.FakeBrowser{FakePage: page}, nil
		},
		Out: &out,
		Log: logger,
	}

	rep, err := s.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out.String())
	}

	data, err := os.ReadFile(cfg.ReportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	for _, key := range []string{"run", "summary", "failed_tests", "detailed_results"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("report missing key %q", key)
		}
	}
	if !strings.Contains(string(data), "猫") && !strings.Contains(string(data), "图片生成") {
		t.Errorf("report escaped non-ASCII text:\n%s", data)
	}
	if string(raw["failed_tests"]) != "[]" {
		t.Errorf("failed_tests = %s, want []", raw["failed_tests"])
	}

	saved, err := report.Read(cfg.ReportPath)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if saved.Summary != rep.Summary {
		t.Errorf("saved summary = %+v, want %+v", saved.Summary, rep.Summary)
	}
	if saved.Summary.Total != 9 || saved.Summary.PassRate != "100.0%" {
		t.Errorf("summary = %+v, want 9 checks at 100.0%%", saved.Summary)
	}
}

func TestIntegration_ConfigDiscovery(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "web", "e2e")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, config.FileName)
	if err := os.WriteFile(cfgPath, []byte("backend_url: http://api.internal:8080/\nresponse_wait_ticks: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	found, err := config.FindFile(nested, "")
	if err != nil || found != cfgPath {
		t.Fatalf("FindFile() = %q, %v; want %q", found, err, cfgPath)
	}

	cfg := config.Default()
	if err := config.LoadFile(found, &cfg); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	t.Setenv(config.EnvFrontendURL, "http://web.internal:3000")
	config.ApplyEnv(&config.RealEnvGetter{}, &cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.BackendURL != "http://api.internal:8080" || cfg.FrontendURL != "http://web.internal:3000" || cfg.ResponseWaitTicks != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
}
