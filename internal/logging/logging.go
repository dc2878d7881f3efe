// Package logging provides a thin, shared layer over log/slog so every
// long-lived component in the relayer attaches consistent attributes.
package logging

import (
	"context"
	"log/slog"
)

const (
	ServiceKey = "service"
	ErrorKey   = "error"
	ChainKey   = "chain"
	HeightKey  = "height"
)

// Child returns a logger with the given service name attached, falling back
// to the default logger when logger is nil.
func Child(logger *slog.Logger, service string) *slog.Logger {
	return DefaultIfNil(logger).With(slog.String(ServiceKey, service))
}

// Error wraps err as a slog.Attr under the "error" key.
func Error(err error) slog.Attr {
	return slog.String(ErrorKey, err.Error())
}

// Number builds a slog.Attr for any integer-like value without the caller
// needing to pick Int vs Int64 vs Uint64 by hand.
func Number[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](key string, value T) slog.Attr {
	return slog.Int64(key, int64(value))
}

// DefaultIfNil returns slog.Default() when logger is nil.
func DefaultIfNil(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// IsDebug reports whether logger has debug-level logging enabled.
func IsDebug(logger *slog.Logger) bool {
	return DefaultIfNil(logger).Enabled(context.Background(), slog.LevelDebug)
}
