package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dimasma0305/starklings/internal/starklings/config"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

// validExerciseNames returns exercise names for shell completion of the
// commands taking an exercise argument.
func validExerciseNames(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := getExerciseNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, n := range append([]string{"next"}, names...) {
		if strings.HasPrefix(n, toComplete) {
			out = append(out, n)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// getExerciseNames reads the manifest of the current directory. A missing
// manifest yields no names.
func getExerciseNames() ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd, "")
	if err != nil {
		return nil, err
	}
	manifestPath := cfg.Manifest
	if manifestPath == "" {
		manifestPath, err = exercise.FindManifest(cwd)
		if err != nil {
			return []string{}, nil
		}
	}

	exercises, err := exercise.Load(manifestPath, nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(exercises))
	for i, ex := range exercises {
		names[i] = ex.Name
	}
	return names, nil
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for starklings.

To load completions:

Bash:

  $ source <(starklings completion bash)

Zsh:

  $ starklings completion zsh > "${fpath[1]}/_starklings"

Fish:

  $ starklings completion fish | source

PowerShell:

  PS> starklings completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			err = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			err = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		if err != nil {
			cmd.PrintErrf("Error generating completion: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
