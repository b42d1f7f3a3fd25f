package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// ErrInterrupted is the cause of the context passed by WithContext when the
// user pressed Ctrl+C.
var ErrInterrupted = errors.New("interrupted by user")

// Interrupted returns true if ctx was cancelled because SIGINT was received.
func Interrupted(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrInterrupted)
}

// WithContext runs f with an errgroup.Group and a context. The context is
// cancelled with ErrInterrupted when SIGINT is received, and cancelled when f
// returns. A second SIGINT terminates the process. WithContext returns the
// error from the error group.
func WithContext(f func(context.Context, *errgroup.Group) error) error {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT)
	defer signal.Stop(signalCh)

	go func() {
		// track the number of events we receive
		received := 0
		for sig := range signalCh {
			if received == 0 {
				// if this is the first signal, try to exit gracefully
				fmt.Fprintf(os.Stderr, "\nreceived signal %v, finishing gracefully\n", sig)
				cancel(ErrInterrupted)
			} else {
				fmt.Fprintf(os.Stderr, "received signal %v again, exiting\n", sig)
				os.Exit(130)
			}
			received++
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f(gctx, g)
	})
	return g.Wait()
}
