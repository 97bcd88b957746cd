package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// configPath is the node configuration file read by run. It is a
// persistent flag, so the intent subcommands accept it as well, but
// they do not read it: they address the daemon through --target.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "ilsrd",
	Short: "Intent-aware link-state routing daemon",
	Long: `ilsrd is a per-node routing daemon implementing a link-state
routing protocol with per-flow intent constraints (minimum bandwidth,
maximum latency) layered on top of ordinary shortest-path routing.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "daemon",
		Title: "Daemon",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "operator",
		Title: "Operator Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ilsrd.yaml", "node configuration file")
}
