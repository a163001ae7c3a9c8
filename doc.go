/*
Package tetrator computes tetration (iterated exponentiation) exactly.

base^^height is a power tower of height copies of base: 2^^3 = 2^(2^2) = 16. The
values explode quickly, so only small pairs are computable; for the rest tetrator
reports an overflow instead of an approximation.

# Architecture

The pure evaluator lives in pkg/tetration. The Service in this package wraps it with
the concerns every front end needs:

  - Result cache (in memory or Redis) through ports.ResultCache.
  - Prometheus metrics through observability.Metrics.
  - Structured logging with log/slog.
  - An optional size guard that rejects towers too large to hold in memory.

Front ends (the interactive prompt, the HTTP API, the MCP tool server and batch mode)
live in pkg/runner, pkg/adapters and cmd/tetrator.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/tetrator"
		"github.com/aretw0/tetrator/pkg/adapters/memory"
		"github.com/aretw0/tetrator/pkg/domain"
	)

	func main() {
		svc := tetrator.New(tetrator.WithCache(memory.NewCache(0)))

		out := svc.Compute(context.Background(), domain.NewRequest(3, 3))
		if out.Err != nil {
			fmt.Println("overflow:", out.Err)
			return
		}
		fmt.Println(out.Decimal(), out.Digits())
	}
*/
package tetrator
