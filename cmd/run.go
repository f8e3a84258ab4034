package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <name|next>",
	Short: "Runs/Tests a single exercise",
	Long: `Compile and run, or test, a single exercise and show its output.

Use "next" for the first exercise that is not done yet.`,
	Example: `  starklings run intro1
  starklings run next`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: validExerciseNames,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustLoadProject(cmd, true)
		defer p.Close()

		ex := mustResolveExercise(p, args[0])
		if err := p.verifier().RunOne(commandContext(cmd), ex); err != nil {
			p.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
