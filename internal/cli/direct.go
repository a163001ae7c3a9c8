package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tetrator/internal/presentation/text"
	"github.com/aretw0/tetrator/pkg/runner"
)

// RunDirect evaluates a single tower from flag values and prints the result block.
// Invalid operands are reported once on w and are not fatal.
func RunDirect(ctx context.Context, rt *Runtime, base, height string, w io.Writer) error {
	var errs []error
	if _, err := runner.ParseOperand(base); err != nil {
		errs = append(errs, fmt.Errorf("invalid base %q: %w", base, err))
	}
	if _, err := runner.ParseOperand(height); err != nil {
		errs = append(errs, fmt.Errorf("invalid height %q: %w", height, err))
	}
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		rt.Logger.Debug("Direct mode rejected input", "error", errors.Join(errs...))
		return nil
	}

	req, err := runner.ParseRequest(base, height)
	if err != nil {
		return err
	}

	out := rt.Service.Compute(ctx, req)
	fmt.Fprintln(w, text.Plain(&out))
	return nil
}
