package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

// listOptions mirrors the list flags.
type listOptions struct {
	paths    bool
	names    bool
	filter   string
	unsolved bool
	solved   bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the exercises available in starklings",
	Example: `  # Everything, with status
  starklings list

  # Unsolved exercises about structs or traits
  starklings list -u -f structs,traits`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		p := mustLoadProject(cmd, false)
		defer p.Close()

		listExercises(cmd.OutOrStdout(), p.exercises, listOpts)
	},
}

// listExercises prints the exercises selected by opts followed by the
// overall progress line.
func listExercises(w io.Writer, exercises exercise.List, opts listOptions) {
	if !opts.paths && !opts.names {
		fmt.Fprintf(w, "%-17s\t%-46s\t%-7s\n", "Name", "Path", "Status")
	}

	var filters []string
	for _, f := range strings.Split(strings.ToLower(opts.filter), ",") {
		if f = strings.TrimSpace(f); f != "" {
			filters = append(filters, f)
		}
	}

	done := 0
	for _, ex := range exercises {
		isDone := ex.LooksDone()
		status := "Pending"
		if isDone {
			done++
			status = "Done"
		}

		if opts.solved || opts.unsolved {
			if !(isDone && opts.solved) && !(!isDone && opts.unsolved) {
				continue
			}
		}
		if opts.filter != "" && !matchesAny(ex, filters) {
			continue
		}

		switch {
		case opts.paths:
			fmt.Fprintln(w, ex.Path)
		case opts.names:
			fmt.Fprintln(w, ex.Name)
		default:
			fmt.Fprintf(w, "%-17s\t%-46s\t%-7s\n", ex.Name, ex.Path, status)
		}
	}

	percent := 0.0
	if len(exercises) > 0 {
		percent = float64(done) / float64(len(exercises)) * 100
	}
	fmt.Fprintf(w, "Progress: You completed %d / %d exercises (%.1f %%).\n", done, len(exercises), percent)
}

func matchesAny(ex *exercise.Exercise, filters []string) bool {
	for _, f := range filters {
		if strings.Contains(ex.Name, f) || strings.Contains(ex.Path, f) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listOpts.paths, "paths", "p", false, "Show only the paths of the exercises")
	listCmd.Flags().BoolVarP(&listOpts.names, "names", "n", false, "Show only the names of the exercises")
	listCmd.Flags().StringVarP(&listOpts.filter, "filter", "f", "", "Comma separated substrings matched against names and paths")
	listCmd.Flags().BoolVarP(&listOpts.unsolved, "unsolved", "u", false, "Display only exercises not yet solved")
	listCmd.Flags().BoolVarP(&listOpts.solved, "solved", "s", false, "Display only exercises that have been solved")
	listCmd.MarkFlagsMutuallyExclusive("paths", "names")
}
