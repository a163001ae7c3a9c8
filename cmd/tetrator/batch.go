package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tetrator/internal/cli"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [FILE|-]",
	Short: "Evaluate many towers from a file",
	Long: `Reads one "base height" pair per line (blank lines and # comments are skipped),
evaluates them concurrently and prints one summary line per pair in input order.
With no argument or "-" the pairs are read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := cli.NewRuntime(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer rt.Close()

		if cmd.Flags().Changed("workers") {
			rt.Config.Batch.Workers, _ = cmd.Flags().GetInt("workers")
			if rt.Config.Batch.Workers < 1 {
				return fmt.Errorf("--workers must be at least 1")
			}
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open batch file: %w", err)
			}
			defer f.Close()
			in = f
		}

		ctx, stop := cli.WithSignals(cmd.Context())
		defer stop()

		return cli.RunBatch(ctx, rt, in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntP("workers", "w", 4, "Number of concurrent evaluations (overrides batch.workers)")
}
