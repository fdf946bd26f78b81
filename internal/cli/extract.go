package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	cliErrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/extract"
	"github.com/raveheart1/relnote/internal/output"
)

var (
	extractChangesFlag  string
	extractVersionFlag  string
	extractVerFileFlag  string
	extractStartFlag    string
	extractHeadFlag     string
	extractFixReFlag    string
	extractFixReplFlag  string
	extractCheckRefFlag string
	extractNameFlag     string
	extractOutputFlag   string
	extractWatchFlag    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one release's section from a changelog",
	Long: `Extract the newest release's section from an existing changelog.

The changelog is sliced after the start marker; the first head line must
belong to the given version, and the section runs until the next head
line. The declared version (from --version or a version file) must agree
with the changelog head, and with the pushed tag when --check-ref is set.

The head line template understands three placeholders:
  {version}  the bracketed release version, e.g. [1.2.0]
  {date}     a YYYY-MM-DD date
  {name}     the value of --name, quoted literally

With --watch the changelog is re-extracted every time the file changes,
which makes iterating on a release section cheap.

Examples:
  relnote extract --version 1.2.0 --changes-file CHANGELOG.md
  relnote extract --version-file version.py --changes-file CHANGES.rst \
      --start-line ".. towncrier release notes start" \
      --head-line '{name} {version} \({date}\)\n=+'
  relnote extract --version 1.2.0 --check-ref "$GITHUB_REF"
  relnote extract --version 1.2.0 --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractChangesFlag, "changes-file", "CHANGELOG.md", "Changelog file to extract from")
	extractCmd.Flags().StringVar(&extractVersionFlag, "version", "", "Release version to extract")
	extractCmd.Flags().StringVar(&extractVerFileFlag, "version-file", "", "File containing a version assignment (alternative to --version)")
	extractCmd.Flags().StringVar(&extractStartFlag, "start-line", "<!-- release notes start -->", "Marker after which release records begin")
	extractCmd.Flags().StringVar(&extractHeadFlag, "head-line", `## {version} - {date}`, "Head line template ({version}, {date}, {name})")
	extractCmd.Flags().StringVar(&extractFixReFlag, "fix-issue-regex", "", "Regexp rewriting issue references in the section")
	extractCmd.Flags().StringVar(&extractFixReplFlag, "fix-issue-repl", "", "Replacement for --fix-issue-regex ($1-style groups)")
	extractCmd.Flags().StringVar(&extractCheckRefFlag, "check-ref", "", "Git ref that must point at the release tag (e.g. refs/tags/v1.2.0)")
	extractCmd.Flags().StringVar(&extractNameFlag, "name", "", "Value for the {name} placeholder")
	extractCmd.Flags().StringVarP(&extractOutputFlag, "output", "o", "", "Write the section to a file instead of stdout")
	extractCmd.Flags().BoolVar(&extractWatchFlag, "watch", false, "Re-extract whenever the changelog changes")
}

func runExtract(cmd *cobra.Command) error {
	version, err := resolveVersion()
	if err != nil {
		return err
	}

	if err := extract.CheckRef(version, extractCheckRefFlag); err != nil {
		return cliErrors.Wrap(err, cliErrors.Input,
			"Push the release tag before extracting, or drop --check-ref")
	}

	opts := extract.Options{
		StartLine:     extractStartFlag,
		HeadLine:      extractHeadFlag,
		FixIssueRegex: extractFixReFlag,
		FixIssueRepl:  extractFixReplFlag,
		Name:          extractNameFlag,
	}

	if extractWatchFlag {
		return watchExtract(cmd, version, opts)
	}
	return extractOnce(cmd, version, opts)
}

// resolveVersion determines the declared release version from the flags.
func resolveVersion() (string, error) {
	var fileContent string
	if extractVerFileFlag != "" {
		data, err := os.ReadFile(extractVerFileFlag)
		if err != nil {
			return "", cliErrors.WrapWithMessage(err, cliErrors.Input, "reading version file")
		}
		fileContent = string(data)
	}

	version, err := extract.FindVersion(extractVersionFlag, fileContent)
	if err != nil {
		return "", cliErrors.Wrap(err, cliErrors.Argument,
			"Pass exactly one of --version or --version-file")
	}
	return version, nil
}

// extractOnce runs a single extraction and writes the section.
func extractOnce(cmd *cobra.Command, version string, opts extract.Options) error {
	data, err := os.ReadFile(extractChangesFlag)
	if err != nil {
		return cliErrors.WrapWithMessage(err, cliErrors.Input, "reading changelog",
			"Pass the changelog path with --changes-file")
	}

	section, err := extract.Extract(string(data), version, opts)
	if err != nil {
		return cliErrors.Wrap(err, cliErrors.Input,
			"Check --start-line and --head-line against the changelog contents")
	}

	kind, err := extract.Kind(version)
	if err == nil && kind.PreRelease {
		output.PrintWarning(cmd.ErrOrStderr(), "%s is a pre-release version", version)
	}

	if extractOutputFlag != "" {
		if err := os.WriteFile(extractOutputFlag, []byte(section+"\n"), 0o644); err != nil {
			return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "writing section")
		}
		output.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Wrote release %s section to %s", version, extractOutputFlag))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), section)
	return nil
}

// watchExtract re-runs the extraction on every write to the changelog.
// Editors that replace the file (rename + create) are handled by
// watching the parent directory.
func watchExtract(cmd *cobra.Command, version string, opts extract.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "starting file watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(extractChangesFlag)
	if err := watcher.Add(dir); err != nil {
		return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "watching "+dir)
	}

	target := filepath.Clean(extractChangesFlag)
	report := func() {
		if err := extractOnce(cmd, version, opts); err != nil {
			cliErrors.PrintError(cliErrors.AsCLIError(err))
		}
	}
	report()

	// Editors fire several events per save; coalesce them briefly.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(100 * time.Millisecond)
			}
		case <-pending:
			pending = nil
			report()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.PrintWarning(cmd.ErrOrStderr(), "watch error: %v", err)
		case <-cmd.Context().Done():
			return nil
		}
	}
}
