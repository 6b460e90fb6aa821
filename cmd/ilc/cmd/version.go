package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by build flags (`-ldflags "-X ...=..."`).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ilc's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ilc version %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
