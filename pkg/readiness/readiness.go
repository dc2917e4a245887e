// Package readiness waits for the services under test to accept TCP
// connections before the checks start.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNotReady is returned when some address is still unreachable at the
// deadline.
var ErrNotReady = errors.New("services not ready")

// TCPDialer abstracts network dialing for testability.
type TCPDialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealTCPDialer uses the real net package.
type RealTCPDialer struct{}

// DialTimeout dials the network address with a timeout.
func (d *RealTCPDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// HostPort returns the host:port a URL connects to, filling in the
// scheme's default port.
func HostPort(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", rawURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in %s", rawURL)
	}
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return "", fmt.Errorf("no port in %s", rawURL)
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Waiter polls addresses until they accept connections.
type Waiter struct {
	Dialer      TCPDialer          // injected for testing
	Interval    time.Duration      // pause between rounds (default 500ms)
	DialTimeout time.Duration      // per-dial timeout (default 2s)
	Log         logrus.FieldLogger // optional
}

// Wait returns nil once every address has accepted a connection, or an
// ErrNotReady error naming the stragglers when timeout elapses.
func (w *Waiter) Wait(ctx context.Context, addrs []string, timeout time.Duration) error {
	interval := w.Interval
	if interval == 0 {
		interval = 500 * time.Millisecond
	}
	dialTimeout := w.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 2 * time.Second
	}
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pending := append([]string(nil), addrs...)
	for {
		var still []string
		for _, addr := range pending {
			conn, err := w.Dialer.DialTimeout("tcp", addr, dialTimeout)
			if err != nil {
				log.WithField("address", addr).WithError(err).Debug("not ready")
				still = append(still, addr)
				continue
			}
			_ = conn.Close()
			log.WithField("address", addr).Debug("ready")
		}
		pending = still
		if len(pending) == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w after %s: %s", ErrNotReady, timeout, strings.Join(pending, ", "))
		case <-time.After(interval):
		}
	}
}
