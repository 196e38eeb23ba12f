package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "pickupctl",
		Short:        "Operator tool for the farm stand pickup service",
		Version:      Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config file")

	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(generateCmd(&configPath))
	root.AddCommand(sweepCmd(&configPath))
	root.AddCommand(syncOccupancyCmd(&configPath))

	return root
}
