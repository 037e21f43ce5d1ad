package service

import (
	"context"
	"fmt"
)

// NetworkErrorPrefix starts every transport or decode failure message.
const NetworkErrorPrefix = "Network error: "

// Client runs a snapshot against the translation service.
// Run never returns a Go error: transport and decode failures come back as
// Result.Error so callers have a single failure path.
type Client interface {
	Run(ctx context.Context, s Snapshot) Result
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, s Snapshot) Result

// Run calls f.
func (f ClientFunc) Run(ctx context.Context, s Snapshot) Result {
	return f(ctx, s)
}

// NetworkError builds the failure result for a transport-level error.
func NetworkError(err error) Result {
	return Result{Error: NetworkErrorPrefix + err.Error()}
}

// NetworkErrorf is NetworkError with a formatted message.
func NetworkErrorf(format string, args ...any) Result {
	return Result{Error: NetworkErrorPrefix + fmt.Sprintf(format, args...)}
}
