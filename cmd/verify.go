package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
	"github.com/dimasma0305/starklings/internal/starklings/ui"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verifies all exercises according to the recommended order",
	Long: `Verify every exercise in manifest order.

Stops at the first exercise that does not compile, fails its tests or still
carries its "I AM NOT DONE" marker, and exits with status 1.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		p := mustLoadProject(cmd, true)
		defer p.Close()

		err := p.verifier().Verify(commandContext(cmd), p.exercises, ui.Progress{Total: len(p.exercises)})
		if err != nil {
			log.Debug("verify: %v", err)
			p.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
