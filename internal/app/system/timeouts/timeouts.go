// Package timeouts provides centralized timeout values for handler operations.
//
// Every API call and audit write made while serving a request runs under
// one of these tiers:
//   - Ping: health checks against MongoDB and the API
//   - Read: single-resource reads and form renders
//   - List: whole-list fetches that walk every API page
//   - Write: creates, updates, deletes, approvals
//   - Export: XLSX exports of large filtered lists
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultRead   = 5 * time.Second
	DefaultList   = 15 * time.Second
	DefaultWrite  = 10 * time.Second
	DefaultExport = 60 * time.Second
)

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping   time.Duration
	Read   time.Duration
	List   time.Duration
	Write  time.Duration
	Export time.Duration
}

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Read:   DefaultRead,
		List:   DefaultList,
		Write:  DefaultWrite,
		Export: DefaultExport,
	}
}

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(current)
}

// Ping returns the timeout for health checks.
func Ping() time.Duration { return get(func(c Config) time.Duration { return c.Ping }) }

// Read returns the timeout for single-resource reads.
func Read() time.Duration { return get(func(c Config) time.Duration { return c.Read }) }

// List returns the timeout for whole-list fetches.
func List() time.Duration { return get(func(c Config) time.Duration { return c.List }) }

// Write returns the timeout for mutating API calls.
func Write() time.Duration { return get(func(c Config) time.Duration { return c.Write }) }

// Export returns the timeout for spreadsheet exports.
func Export() time.Duration { return get(func(c Config) time.Duration { return c.Export }) }

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call during startup, before
// handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		current.Ping = cfg.Ping
	}
	if cfg.Read > 0 {
		current.Read = cfg.Read
	}
	if cfg.List > 0 {
		current.List = cfg.List
	}
	if cfg.Write > 0 {
		current.Write = cfg.Write
	}
	if cfg.Export > 0 {
		current.Export = cfg.Export
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list institutions")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
