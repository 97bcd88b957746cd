package cmd

import (
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/ilsrd/ilsrd/core"
	"github.com/ilsrd/ilsrd/state"
	"github.com/spf13/cobra"
)

// runCmd starts the routing daemon, per spec section 6.
var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Run the routing daemon",
	Long:    `This runs ilsrd on the current host, listening for HELLO/LSA/INTENT traffic on the configured control port and programming the host forwarding table.`,
	GroupID: "daemon",
	Run: func(cmd *cobra.Command, args []string) {
		file, err := os.ReadFile(configPath)
		if err != nil {
			panic(err)
		}

		var cfg state.LocalCfg
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			panic(err)
		}

		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}

		if err := core.Start(cfg, level); err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
}
