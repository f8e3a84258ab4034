/*
Copyright © 2023 dimas maulana dimasmaulana0305@gmail.com
*/

// Package cmd provides command-line interface commands for starklings
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "5.3.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "starklings",
	Short: "Small exercises to get you used to reading and writing Cairo",
	Long: `starklings - An interactive tutorial to learn Cairo and Starknet

Exercises live in the exercises/ directory and are listed, in learning
order, in the info.toml manifest. Each one compiles (or passes its tests)
and has its "// I AM NOT DONE" marker removed before the next one starts.`,
	Example: `  # Work through the exercises, re-checking on every save
  starklings watch

  # Check every exercise once
  starklings verify

  # Run the first unfinished exercise
  starklings run next

  # Show a hint
  starklings hint intro1`,
	Version: Version,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", welcome)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", defaultOut)
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Enable debug mode if flag is set
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("v{{.Version}}\n")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default .starklings/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record verification attempts")
}
