package cli

import (
	"context"
	"io"
	"os"
)

// RunOptions contains all the configuration for the root command.
type RunOptions struct {
	GlobalOptions

	Base   string
	Height string
	// Direct is set when both --base and --height were given.
	Direct bool
	// Plain disables the banner and markdown rendering even on a terminal.
	Plain bool

	Stdin  io.Reader
	Stdout io.Writer
}

// Execute handles the root command, dispatching to direct or interactive mode.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	rt, err := NewRuntime(opts.GlobalOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if opts.Direct {
		return RunDirect(ctx, rt, opts.Base, opts.Height, opts.Stdout)
	}
	return RunInteractive(ctx, rt, opts)
}
