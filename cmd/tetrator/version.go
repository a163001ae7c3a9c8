package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tetrator"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tetrator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tetrator version %s\n", strings.TrimSpace(tetrator.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
