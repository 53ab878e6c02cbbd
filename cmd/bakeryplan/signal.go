package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled by the first shutdown signal.
// A canceled build removes its temporary output before returning.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
