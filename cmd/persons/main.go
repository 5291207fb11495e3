package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaschaSchweitzer/persons/cmd/persons/commands"
	"github.com/SaschaSchweitzer/persons/cmd/persons/internal"
)

var (
	configPath string
	quiet      bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:     "persons",
	Short:   "Author disambiguation command-line tool",
	Long:    "A command-line tool for identifying unique persons in tables of name records",
	Version: commands.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config, err := internal.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
			config = internal.DefaultConfig()
		}

		if quiet {
			internal.SetQuietMode(true)
			config.Output.Progress = false
		}
		if noColor {
			config.Output.Color = false
		}

		internal.InitColor(config.Output.Color)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (suppress progress output)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.GetIdentifyCommand())
	rootCmd.AddCommand(commands.GetInteractiveCommand())
	rootCmd.AddCommand(commands.GetRunsCommand())
	rootCmd.AddCommand(commands.GetVersionCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
