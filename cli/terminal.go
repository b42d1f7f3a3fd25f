package cli

import "context"

// Terminal prints messages and keeps a status line at the bottom of the
// screen. It is implemented by *termstatus.Terminal.
type Terminal interface {
	Print(msg string)
	Printf(msg string, data ...interface{})
	SetStatus(lines []string)
	Run(ctx context.Context)
}
