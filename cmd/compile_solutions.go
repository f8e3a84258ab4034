package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
	"github.com/dimasma0305/starklings/internal/starklings/session"
)

var compileSolutionsCmd = &cobra.Command{
	Use:     "compile-solutions",
	Aliases: []string{"compile_solutions"},
	Short:   "Watches the solutions directory until every solution compiles",
	Long: `Run a watch session over the solutions instead of the exercises.

Every exercise path is moved from the exercises directory to the solutions
directory before verification.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		p := mustLoadProject(cmd, true)
		defer p.Close()
		applyWatchFlags(cmd, p)

		solutions := p.exercises.Rebase(p.cfg.ExercisesDir, p.cfg.SolutionsDir)
		outcome, err := runWatchSession(p, solutions, p.dir(p.cfg.SolutionsDir))
		if err != nil {
			log.Error("Error: %v", err)
			p.Close()
			os.Exit(1)
		}

		emoji := p.ui.Emoji("🎉", "★")
		if outcome == session.Finished {
			p.ui.Printf("%s All solutions compile! %s\n", emoji, emoji)
		} else {
			p.ui.Println("Stopped checking solutions.")
		}
	},
}

func init() {
	rootCmd.AddCommand(compileSolutionsCmd)
	addWatchFlags(compileSolutionsCmd)
}
