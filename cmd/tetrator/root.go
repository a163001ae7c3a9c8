package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tetrator/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tetrator",
	Short: "Tetrator computes exact tetration (iterated exponentiation)",
	Long: `Tetrator evaluates base^^height, a power tower of height copies of base,
exactly over non-negative integers.

With both --base and --height it prints one result and exits. Otherwise it
starts an interactive prompt.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		height, _ := cmd.Flags().GetString("height")
		plain, _ := cmd.Flags().GetBool("plain")

		baseSet := cmd.Flags().Changed("base")
		heightSet := cmd.Flags().Changed("height")

		ctx, stop := cli.WithSignals(cmd.Context())
		defer stop()

		return cli.Execute(ctx, cli.RunOptions{
			GlobalOptions: globalOptions(cmd),
			Base:          base,
			Height:        height,
			Direct:        baseSet && heightSet,
			Plain:         plain,
			Stdin:         cmd.InOrStdin(),
			Stdout:        cmd.OutOrStdout(),
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func globalOptions(cmd *cobra.Command) cli.GlobalOptions {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	redisURL, _ := cmd.Flags().GetString("redis")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	return cli.GlobalOptions{
		ConfigPath: configPath,
		Debug:      debug,
		RedisURL:   redisURL,
		NoCache:    noCache,
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default ./tetrator.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for the shared result cache (overrides config)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the result cache")

	// -h belongs to --height. Declaring "help" ourselves stops cobra from adding
	// its own flag, which would claim the same shorthand.
	rootCmd.Flags().Bool("help", false, "help for tetrator")
	rootCmd.Flags().StringP("base", "b", "", "Base of the tower (non-negative integer)")
	rootCmd.Flags().StringP("height", "h", "", "Height of the tower (non-negative integer)")
	rootCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")
}
