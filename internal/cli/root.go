package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hologram",
	Short: "Context relevance and resilience for AI coding sessions",
	Long:  "Hologram tracks which files currently matter, survives conversation compaction through checkpoints, and degrades gracefully when its ranking sidecar is down.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(decayCmd)
	rootCmd.AddCommand(checkpointCmd)
}
