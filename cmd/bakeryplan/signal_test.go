package main

// Notes:
// - OS signal delivery is not tested: it is non-deterministic and
//   platform-specific. We test the context contract only.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	done := func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}

	t.Run("live until stopped", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if done(ctx) {
			t.Fatal("context canceled before any signal")
		}
		stop()
		if !done(ctx) {
			t.Fatal("context still live after stop()")
		}
	})

	t.Run("follows parent", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		if !done(ctx) {
			t.Fatal("context still live after parent cancel")
		}
	})
}

func TestShutdownSignals(t *testing.T) {
	t.Parallel()

	if len(shutdownSignals) == 0 || shutdownSignals[0] != os.Interrupt {
		t.Errorf("shutdownSignals = %v, want os.Interrupt first", shutdownSignals)
	}
}
