package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/log"
	"github.com/dimasma0305/starklings/internal/starklings/config"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
	"github.com/dimasma0305/starklings/internal/starklings/history"
	"github.com/dimasma0305/starklings/internal/starklings/toolchain"
	"github.com/dimasma0305/starklings/internal/starklings/ui"
	"github.com/dimasma0305/starklings/internal/starklings/verify"
)

// project is everything a command needs from the working directory.
type project struct {
	root      string
	cfg       *config.Config
	exercises exercise.List
	ui        *ui.UI
	toolchain *toolchain.Command
	history   *history.DB
}

// loadProject reads the configuration and the manifest of the project in
// the current directory. With needToolchain set, a missing runner is an
// error.
func loadProject(cmd *cobra.Command, needToolchain bool) (*project, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	configPath, _ := cmd.Flags().GetString("config")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	return openProject(root, configPath, noHistory, needToolchain)
}

func openProject(root, configPath string, noHistory, needToolchain bool) (*project, error) {
	cfg, err := config.Load(root, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	manifestPath := cfg.Manifest
	if manifestPath == "" {
		manifestPath, err = exercise.FindManifest(root)
		if err != nil {
			return nil, fmt.Errorf("%s must be run from the starklings directory\nTry `cd starklings/`!", executable())
		}
	} else if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(root, manifestPath)
	}

	marker, err := cfg.MarkerMatcher()
	if err != nil {
		return nil, err
	}
	exercises, err := exercise.Load(manifestPath, marker)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded %d exercises from %s", len(exercises), manifestPath)

	tc := toolchain.NewCommand(cfg.Runner, cfg.Tester, root)
	if needToolchain {
		if err := tc.Available(); err != nil {
			return nil, fmt.Errorf("we cannot find the Cairo toolchain: %w\n"+
				"Make sure the starklings runner and tester are installed and on your PATH", err)
		}
	}

	historyPath := cfg.History.Path
	if !filepath.IsAbs(historyPath) {
		historyPath = filepath.Join(root, historyPath)
	}
	db := history.New(historyPath, cfg.History.IsEnabled() && !noHistory)
	if err := db.Init(); err != nil {
		log.Error("Attempt history unavailable: %v", err)
		db = history.New(historyPath, false)
	}

	return &project{
		root:      root,
		cfg:       cfg,
		exercises: exercises,
		ui:        ui.New(os.Stdout, cfg.NoEmoji),
		toolchain: tc,
		history:   db,
	}, nil
}

func (p *project) Close() {
	if err := p.history.Close(); err != nil {
		log.Error("Failed to close attempt history: %v", err)
	}
}

func (p *project) verifier() *verify.Verifier {
	return verify.New(p.toolchain, p.ui, verify.WithRecorder(p.history))
}

// dir resolves a configured directory against the project root.
func (p *project) dir(d string) string {
	if filepath.IsAbs(d) {
		return d
	}
	return filepath.Join(p.root, d)
}

// mustLoadProject exits the process when the project cannot be loaded.
func mustLoadProject(cmd *cobra.Command, needToolchain bool) *project {
	p, err := loadProject(cmd, needToolchain)
	if err != nil {
		log.Fatal(err)
	}
	return p
}

// resolveExercise finds an exercise by name. "next" selects the first
// exercise that is not done.
func resolveExercise(exercises exercise.List, name string) (*exercise.Exercise, error) {
	if name == "next" {
		return exercises.Next()
	}
	return exercises.Find(name)
}

// mustResolveExercise prints the outcome of a failed lookup and exits.
func mustResolveExercise(p *project, name string) *exercise.Exercise {
	ex, err := resolveExercise(p.exercises, name)
	if err == nil {
		return ex
	}
	if serrors.Is(err, serrors.ErrAllDone) {
		p.ui.Println(p.ui.Emoji("🎉", "★") + " Congratulations! You have done all the exercises!")
		p.ui.Println(p.ui.Emoji("🔚", "-") + " There are no more exercises to do next!")
	} else {
		log.Error("No exercise found for '%s'!", name)
	}
	p.Close()
	os.Exit(1)
	return nil
}

func executable() string {
	exe, err := os.Executable()
	if err != nil {
		return "starklings"
	}
	return exe
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
