package readiness

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockDialer is a mock implementation of TCPDialer for testing.
type MockDialer struct {
	DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[address]++
	m.mu.Unlock()
	return m.DialFunc(network, address, timeout)
}

func (m *MockDialer) Calls(address string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[address]
}

// MockConn is a minimal net.Conn implementation for testing.
type MockConn struct{}

func (m *MockConn) Read(b []byte) (n int, err error)   { return 0, nil }
func (m *MockConn) Write(b []byte) (n int, err error)  { return len(b), nil }
func (m *MockConn) Close() error                       { return nil }
func (m *MockConn) LocalAddr() net.Addr                { return nil }
func (m *MockConn) RemoteAddr() net.Addr               { return nil }
func (m *MockConn) SetDeadline(t time.Time) error      { return nil }
func (m *MockConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *MockConn) SetWriteDeadline(t time.Time) error { return nil }

func TestWait_AllReady(t *testing.T) {
	dialer := &MockDialer{DialFunc: func(network, address string, timeout time.Duration) (net.Conn, error) {
		assert.Equal(t, "tcp", network)
		assert.Equal(t, 2*time.Second, timeout)
		return &MockConn{}, nil
	}}
	w := &Waiter{Dialer: dialer}

	err := w.Wait(context.Background(), []string{"localhost:8080", "localhost:3000"}, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 1, dialer.Calls("localhost:8080"))
	assert.Equal(t, 1, dialer.Calls("localhost:3000"))
}

func TestWait_BecomesReady(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	dialer := &MockDialer{DialFunc: func(network, address string, timeout time.Duration) (net.Conn, error) {
		if address == "localhost:3000" {
			return &MockConn{}, nil
		}
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return &MockConn{}, nil
	}}
	w := &Waiter{Dialer: dialer, Interval: time.Millisecond}

	err := w.Wait(context.Background(), []string{"localhost:8080", "localhost:3000"}, 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 3, dialer.Calls("localhost:8080"))
	assert.Equal(t, 1, dialer.Calls("localhost:3000"), "ready addresses are not dialed again")
}

func TestWait_Timeout(t *testing.T) {
	dialer := &MockDialer{DialFunc: func(network, address string, timeout time.Duration) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}}
	w := &Waiter{Dialer: dialer, Interval: time.Millisecond}

	err := w.Wait(context.Background(), []string{"localhost:8080"}, 20*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Contains(t, err.Error(), "localhost:8080")
}

func TestWait_Cancelled(t *testing.T) {
	dialer := &MockDialer{DialFunc: func(network, address string, timeout time.Duration) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}}
	w := &Waiter{Dialer: dialer, Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Wait(ctx, []string{"localhost:8080"}, time.Minute)

	assert.ErrorIs(t, err, ErrNotReady)
}

func TestHostPort(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:3000", want: "localhost:3000"},
		{in: "http://localhost:8080/", want: "localhost:8080"},
		{in: "http://example.com", want: "example.com:80"},
		{in: "https://example.com/app", want: "example.com:443"},
		{in: "http://[::1]:8080", want: "[::1]:8080"},
		{in: "ftp://example.com", wantErr: true},
		{in: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := HostPort(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
