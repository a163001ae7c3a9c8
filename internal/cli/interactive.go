package cli

import (
	"context"
	"os"
	"strings"

	"github.com/aretw0/tetrator"
	"github.com/aretw0/tetrator/internal/presentation/tui"
	"github.com/aretw0/tetrator/pkg/runner"
)

// RunInteractive runs the menu loop until the user exits, input ends or ctx is
// cancelled. A ctx from WithSignals ends the loop on Ctrl+C.
func RunInteractive(ctx context.Context, rt *Runtime, opts RunOptions) error {
	handlerOpts := []runner.TextHandlerOption{
		runner.WithMaxInputSize(rt.Config.MaxInputSize),
	}

	if f, ok := opts.Stdout.(*os.File); ok && !opts.Plain && tui.IsTerminal(f) {
		tui.PrintBanner(f, strings.TrimSpace(tetrator.Version))
		render, err := tui.NewRenderer()
		if err != nil {
			rt.Logger.Warn("Markdown renderer unavailable", "error", err)
		} else {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
		}
	}

	handler := runner.NewTextHandler(opts.Stdin, opts.Stdout, handlerOpts...)
	defer handler.Close()
	session := runner.NewSession(rt.Service, handler, runner.WithSessionLogger(rt.Logger))

	err := session.Run(ctx)
	if sig := SignalFrom(ctx); sig != nil {
		rt.Logger.Debug("Interactive session interrupted", "signal", sig)
		handler.Println("")
		handler.Println(runner.Bye)
	}
	return handleExecutionError(err)
}
