package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tetrator/internal/logging"
)

// InterruptError is the cancellation cause recorded when a termination signal arrives.
type InterruptError struct {
	Signal os.Signal
}

func (e *InterruptError) Error() string {
	return "interrupted by " + e.Signal.String()
}

// WithSignals returns a context cancelled on SIGINT or SIGTERM. The signal is kept
// as the context's cause; see SignalFrom. Call stop to release the handler.
func WithSignals(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			cancel(&InterruptError{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}

// SignalFrom reports the signal that cancelled ctx, or nil.
func SignalFrom(ctx context.Context) os.Signal {
	var ie *InterruptError
	if errors.As(context.Cause(ctx), &ie) {
		return ie.Signal
	}
	return nil
}

// createLogger configures the application logger.
// Logs always go to Stderr so they never mix with results on Stdout.
func createLogger(level string, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
