package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
	"github.com/dimasma0305/starklings/internal/starklings/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:               "history [exercise]",
	Short:             "Shows recent verification attempts",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: validExerciseNames,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustLoadProject(cmd, false)
		defer p.Close()

		if !p.history.IsEnabled() {
			log.Error("Attempt history is disabled")
			p.Close()
			os.Exit(1)
		}

		name := ""
		if len(args) == 1 {
			ex := mustResolveExercise(p, args[0])
			name = ex.Name
		}

		attempts, err := p.history.Recent(name, historyLimit)
		if err != nil {
			log.Error("Failed to read attempt history: %v", err)
			p.Close()
			os.Exit(1)
		}
		printAttempts(cmd.OutOrStdout(), attempts)
	},
}

func printAttempts(w io.Writer, attempts []history.Attempt) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No attempts recorded yet.")
		return
	}
	fmt.Fprintf(w, "%-19s  %-17s  %-7s  %-7s  %s\n", "Time", "Exercise", "Mode", "Outcome", "Duration")
	for _, a := range attempts {
		fmt.Fprintf(w, "%-19s  %-17s  %-7s  %s  %s\n",
			a.Timestamp.Local().Format(time.DateTime),
			a.Exercise,
			a.Mode,
			outcomeLabel(a.Outcome),
			a.Duration.Round(time.Millisecond),
		)
	}
}

func outcomeLabel(o history.Outcome) string {
	label := fmt.Sprintf("%-7s", o)
	switch o {
	case history.OutcomeDone:
		return color.GreenString(label)
	case history.OutcomePending:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of attempts to show")
}
