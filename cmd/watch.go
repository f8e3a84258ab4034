package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
	"github.com/dimasma0305/starklings/internal/starklings/session"
	"github.com/dimasma0305/starklings/internal/starklings/watcher"
)

var (
	watchDebounce    time.Duration
	watchPollTimeout time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reruns `verify` when files were edited",
	Long: `Verify the exercises, then keep watching the exercises directory.

Every save re-checks the edited exercise first, then the remaining unfinished
ones. Type 'help' while watching to list the interactive commands.`,
	Example: `  # Start watching
  starklings watch

  # Wait less after each save
  starklings watch --debounce 500ms`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		p := mustLoadProject(cmd, true)
		defer p.Close()
		applyWatchFlags(cmd, p)

		outcome, err := runWatchSession(p, p.exercises, p.dir(p.cfg.ExercisesDir))
		if err != nil {
			log.Error("Error: Could not watch your progress. Error message was %v.", err)
			if serrors.Is(err, serrors.ErrWatchStart) {
				log.Error("Most likely you've run out of disk space or your 'inotify limit' has been reached.")
			}
			p.Close()
			os.Exit(1)
		}

		switch outcome {
		case session.Finished:
			emoji := p.ui.Emoji("🎉", "★")
			p.ui.Printf("%s All exercises completed! %s\n", emoji, emoji)
			p.ui.Printf("\n%s\n\n", finishLine)
		case session.Unfinished:
			p.ui.Println("We hope you're enjoying learning about Cairo and Starknet!")
			p.ui.Println("If you want to continue working on the exercises at a later point, you can simply run `starklings watch` again")
		}
	},
}

// applyWatchFlags lets explicit flags override the configuration file.
func applyWatchFlags(cmd *cobra.Command, p *project) {
	if cmd.Flags().Changed("debounce") {
		p.cfg.Debounce = watchDebounce
	}
	if cmd.Flags().Changed("poll-timeout") {
		p.cfg.PollTimeout = watchPollTimeout
	}
}

// runWatchSession watches root and drives a session over exercises until
// it finishes, the user quits or the process is interrupted.
func runWatchSession(p *project, exercises []*exercise.Exercise, root string) (session.Outcome, error) {
	w, err := watcher.New(root, watcher.Options{
		Debounce:   p.cfg.Debounce,
		Extensions: p.cfg.Extensions,
	})
	if err != nil {
		return session.Unfinished, err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Debug("closing watcher: %v", err)
		}
	}()
	log.Debug("watching %s (debounce %v)", root, p.cfg.Debounce)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(exercises, p.verifier(), w, p.ui, session.Options{
		Extensions:  p.cfg.Extensions,
		PollTimeout: p.cfg.PollTimeout,
		Input:       os.Stdin,
	})
	return sess.Run(ctx)
}

func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Quiet period after a change before re-verifying")
	cmd.Flags().DurationVar(&watchPollTimeout, "poll-timeout", session.DefaultPollTimeout, "How often the quit command is checked")
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addWatchFlags(watchCmd)
}
