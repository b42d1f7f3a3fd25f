package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Confirm prints msg to out and waits until a line is read from in. If ctx
// is cancelled before that, the cause of the cancellation is returned.
// Reaching the end of in counts as confirmation.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, msg string) error {
	fmt.Fprint(out, msg)

	if ctx.Err() != nil {
		return context.Cause(ctx)
	}

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
