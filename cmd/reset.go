package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
	"github.com/dimasma0305/starklings/internal/starklings/git"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset <name|next>",
	Short: `Resets a single exercise using "git stash -- <filename>"`,
	Long: `Reset an exercise to its committed state.

Your changes are stashed, not lost: "git stash pop" brings them back.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: validExerciseNames,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustLoadProject(cmd, false)
		defer p.Close()

		ex := mustResolveExercise(p, args[0])

		if !resetYes {
			confirm := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Reset %s to its original state?", ex.Path),
			}
			if err := survey.AskOne(prompt, &confirm); err != nil {
				log.Error("Prompt failed: %v", err)
				p.Close()
				os.Exit(1)
			}
			if !confirm {
				log.Info("Reset cancelled")
				return
			}
		}

		if err := git.NewManager(p.root).Reset(commandContext(cmd), ex.Path); err != nil {
			log.Error("Failed to reset %s: %v", ex.Name, err)
			p.Close()
			os.Exit(1)
		}
		log.Success("Reset %s", ex.Path)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
}
