package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tetrator/internal/presentation/text"
	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/aretw0/tetrator/pkg/runner"
	"golang.org/x/sync/errgroup"
)

// BatchLine is one parsed line of a batch file.
type BatchLine struct {
	Number  int
	Request domain.Request
	Err     error
}

// ParseBatch reads "base height" pairs, one per line. Blank lines and lines
// starting with '#' are skipped; malformed lines are kept with Err set.
func ParseBatch(r io.Reader, maxInput int) ([]BatchLine, error) {
	var lines []BatchLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		raw, err := runner.CleanInput(scanner.Text(), maxInput)
		if err != nil {
			lines = append(lines, BatchLine{Number: n, Err: err})
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		fields := strings.Fields(raw)
		if len(fields) != 2 {
			lines = append(lines, BatchLine{Number: n, Err: fmt.Errorf("expected \"base height\", got %d fields", len(fields))})
			continue
		}
		req, err := runner.ParseRequest(fields[0], fields[1])
		lines = append(lines, BatchLine{Number: n, Request: req, Err: err})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}
	return lines, nil
}

// RunBatch evaluates every pair in r concurrently and prints one summary per
// line to w, in input order.
func RunBatch(ctx context.Context, rt *Runtime, r io.Reader, w io.Writer) error {
	lines, err := ParseBatch(r, rt.Config.MaxInputSize)
	if err != nil {
		return err
	}

	results := make([]string, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.Config.Batch.Workers)

	for i, line := range lines {
		if line.Err != nil {
			results[i] = fmt.Sprintf("line %d: %v", line.Number, line.Err)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := rt.Service.Compute(gctx, line.Request)
			results[i] = text.Summary(&out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	rt.Logger.Debug("Batch finished", "lines", len(lines), "workers", rt.Config.Batch.Workers)
	for _, res := range results {
		if _, err := fmt.Fprintln(w, res); err != nil {
			return err
		}
	}
	return nil
}
