// Package cli implements the relnote command tree. Commands validate
// arguments, load configuration, invoke the retrieval collaborators, and
// hand raw entries to the note pipeline; all policy lives in the internal
// packages they compose.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cliErrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/git"
)

var (
	configFlag  string
	debugFlag   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "relnote",
	Short: "Generate deterministic release notes from repository history",
	Long: `relnote turns commit and pull request history into a structured,
deterministic release note document.

Changes are classified into a configurable category taxonomy
(breaking, feature, fix, ...) using an ordered rule list, duplicates
such as a commit and its squash-merged PR are collapsed, and the
result is rendered as markdown, styled terminal output, JSON, or a
custom template.

Examples:
  relnote generate --from v1.0.0                # Notes for v1.0.0..HEAD
  relnote generate --from v1.0.0 --to v1.1.0 -o NOTES.md
  relnote generate --github acme/widget --from v1.0.0 --to main
  relnote extract --version 1.1.0 --changes-file CHANGELOG.md
  relnote formats                               # List output formats`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
		if debugFlag {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: .relnote/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// Execute runs the command tree and returns the process exit code.
// Structured CLIErrors are printed with their remediation steps; the
// error category selects the exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, exitErr.Err)
		}
		return exitErr.Code
	}

	if cliErr := cliErrors.AsCLIError(err); cliErr != nil {
		cliErrors.PrintError(cliErr)
		return exitCodeFor(cliErr.Category)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitFailure
}

// exitCodeFor maps an error category to a process exit code.
func exitCodeFor(category cliErrors.ErrorCategory) int {
	switch category {
	case cliErrors.Argument:
		return ExitInvalidArguments
	case cliErrors.Configuration:
		return ExitConfigError
	default:
		return ExitFailure
	}
}
