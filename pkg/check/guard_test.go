package check

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name        string
		fn          func(ctx context.Context) (string, error)
		wantStatus  Status
		wantDetails string
	}{
		{
			name:        "success keeps details",
			fn:          func(context.Context) (string, error) { return "status 200", nil },
			wantStatus:  StatusPass,
			wantDetails: "status 200",
		},
		{
			name:        "success with empty details",
			fn:          func(context.Context) (string, error) { return "", nil },
			wantStatus:  StatusPass,
			wantDetails: "",
		},
		{
			name:        "error becomes failure",
			fn:          func(context.Context) (string, error) { return "", errors.New("dial tcp: connection refused") },
			wantStatus:  StatusFail,
			wantDetails: "dial tcp: connection refused",
		},
		{
			name: "panic becomes failure",
			fn: func(context.Context) (string, error) {
				var m map[string]int
				m["boom"]++
				return "", nil
			},
			wantStatus:  StatusFail,
			wantDetails: "panic: assignment to entry in nil map",
		},
		{
			name:        "panic with custom value",
			fn:          func(context.Context) (string, error) { panic("selector engine crashed") },
			wantStatus:  StatusFail,
			wantDetails: "panic: selector engine crashed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Guard(context.Background(), Func{CheckName: "probe", Fn: tt.fn})

			if r.Name != "probe" {
				t.Errorf("Name = %q, want %q", r.Name, "probe")
			}
			if r.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", r.Status, tt.wantStatus)
			}
			if !strings.Contains(r.Details, tt.wantDetails) {
				t.Errorf("Details = %q, want substring %q", r.Details, tt.wantDetails)
			}
			if r.Status == StatusFail && r.Details == "" {
				t.Error("failed result has empty details")
			}
		})
	}
}

func TestGuard_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	r := Guard(ctx, Func{CheckName: "late", Fn: func(context.Context) (string, error) {
		called = true
		return "", nil
	}})

	if called {
		t.Error("check ran with a cancelled context")
	}
	if r.Status != StatusFail {
		t.Errorf("Status = %v, want %v", r.Status, StatusFail)
	}
	if !errors.Is(r.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", r.Err)
	}
}
