package cmd

import (
	"github.com/spf13/cobra"
)

var hintCmd = &cobra.Command{
	Use:               "hint <name|next>",
	Short:             "Returns a hint for the given exercise",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: validExerciseNames,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustLoadProject(cmd, false)
		defer p.Close()

		ex := mustResolveExercise(p, args[0])
		p.ui.Println(ex.Hint)
	},
}

func init() {
	rootCmd.AddCommand(hintCmd)
}
