package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Prints the path of every exercise",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		p := mustLoadProject(cmd, false)
		defer p.Close()

		for _, ex := range p.exercises {
			fmt.Fprintln(cmd.OutOrStdout(), ex.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
