package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// serverState holds the single running *http.Server, guarded by a mutex so
// Start/Stop/Get are safe to call from the CLI's start/stop/status
// subcommands without any other coordination.
var (
	stateMu    sync.Mutex
	current    *http.Server
	currentErr chan error
)

// StartOptions configures the HTTP server.
type StartOptions struct {
	Host string
	Port string
}

// StartServer starts the HTTP server serving r, unless one is already
// running, in which case it is a no-op and returns nil. EADDRINUSE is
// surfaced as a distinguishable error so the CLI can report it clearly.
func StartServer(opts StartOptions, r http.Handler) error {
	stateMu.Lock()
	if current != nil {
		stateMu.Unlock()
		return nil // idempotent: a server is already running
	}

	addr := net.JoinHostPort(opts.Host, opts.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // streaming responses may run indefinitely
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		stateMu.Unlock()
		if isAddrInUse(err) {
			return fmt.Errorf("%w: %s already in use", ErrAddrInUse, addr)
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	current = srv
	currentErr = make(chan error, 1)
	stateMu.Unlock()

	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			currentErr <- err
		}
		close(currentErr)
	}()

	return nil
}

// ErrAddrInUse distinguishes a bind failure from other listen errors.
var ErrAddrInUse = errors.New("address already in use")

func isAddrInUse(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Err != nil {
		return containsAddrInUse(opErr.Err.Error())
	}
	return containsAddrInUse(err.Error())
}

func containsAddrInUse(msg string) bool {
	const marker = "address already in use"
	for i := 0; i+len(marker) <= len(msg); i++ {
		if msg[i:i+len(marker)] == marker {
			return true
		}
	}
	return false
}

// StopServer gracefully shuts down the running server, if any. It is
// idempotent: calling it when no server is running returns nil.
func StopServer(ctx context.Context) error {
	stateMu.Lock()
	srv := current
	current = nil
	stateMu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// GetServer returns the currently running *http.Server, or nil.
func GetServer() *http.Server {
	stateMu.Lock()
	defer stateMu.Unlock()
	return current
}

// IsRunning reports whether a server is currently bound and serving.
func IsRunning() bool {
	return GetServer() != nil
}
