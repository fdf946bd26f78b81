package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/config"
	cliErrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/forge"
	"github.com/raveheart1/relnote/internal/git"
	"github.com/raveheart1/relnote/internal/note"
	"github.com/raveheart1/relnote/internal/output"
	"github.com/raveheart1/relnote/internal/render"
)

var (
	generateFromFlag     string
	generateToFlag       string
	generateRepoFlag     string
	generateGitHubFlag   string
	generateFormatFlag   string
	generateTemplateFlag string
	generateOutputFlag   string
	generatePlainFlag    bool
	generateStampFlag    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate release notes for a history range",
	Long: `Generate release notes for a range of repository history.

History is read from a local repository by default, or from the GitHub
API with --github. Entries are classified, deduplicated, grouped, and
rendered deterministically: the same history always produces the same
document, regardless of retrieval order.

An empty range is not an error; it renders a "no changes" document.

Examples:
  relnote generate --from v1.0.0
  relnote generate --from v1.0.0 --to v1.1.0 --format json
  relnote generate --from v1.0.0 -o NOTES.md
  relnote generate --github acme/widget --from v1.0.0 --to main
  relnote generate --from v1.0.0 --template release.tmpl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateFromFlag, "from", "", "Start ref, exclusive (tag, branch, or commit)")
	generateCmd.Flags().StringVar(&generateToFlag, "to", "HEAD", "End ref, inclusive")
	generateCmd.Flags().StringVar(&generateRepoFlag, "repo", "", "Repository path (default from config)")
	generateCmd.Flags().StringVar(&generateGitHubFlag, "github", "", "Read history from GitHub instead (owner/repo)")
	generateCmd.Flags().StringVar(&generateFormatFlag, "format", "", "Output format (default from config)")
	generateCmd.Flags().StringVar(&generateTemplateFlag, "template", "", "Render through a custom template file")
	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Write the document to a file instead of stdout")
	generateCmd.Flags().BoolVar(&generatePlainFlag, "plain", false, "Plain terminal output (no colors/icons)")
	generateCmd.Flags().BoolVar(&generateStampFlag, "show-timestamp", false, "Include the generation timestamp in the document")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	format := resolveFormat(cfg)
	if generateTemplateFlag != "" {
		text, err := os.ReadFile(generateTemplateFlag)
		if err != nil {
			return cliErrors.WrapWithMessage(err, cliErrors.Input, "reading template",
				"Check that the template file exists and is readable")
		}
		renderer, err := render.NewTemplateRenderer(generateTemplateFlag, string(text))
		if err != nil {
			return cliErrors.Wrap(err, cliErrors.Input,
				"Fix the template syntax; sprig functions are available")
		}
		registry.Register("template", renderer)
		if generateFormatFlag == "" {
			format = "template"
		}
	}

	entries, err := collectEntries(cmd, cfg)
	if err != nil {
		return err
	}

	opts := cfg.NoteOptions()
	opts.FromRef = generateFromFlag
	opts.ToRef = generateToFlag
	opts.GeneratedAt = time.Now()

	ropts := render.Options{Plain: generatePlainFlag || noColorFlag, ShowTimestamp: generateStampFlag}
	n, text, err := registry.Generate(entries, opts, format, ropts)
	if err != nil {
		return renderError(err, registry)
	}

	if generateOutputFlag == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}

	if err := os.WriteFile(generateOutputFlag, []byte(text), 0o644); err != nil {
		return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "writing release notes")
	}
	output.PrintSuccess(cmd.ErrOrStderr(),
		fmt.Sprintf("Wrote %d entries to %s", n.EntryCount(), generateOutputFlag))
	return nil
}

// collectEntries reads raw history from the configured provider. The
// provider's ordering is irrelevant; the pipeline re-sorts everything.
func collectEntries(cmd *cobra.Command, cfg *config.Configuration) ([]note.RawEntry, error) {
	stop := startSpinner(" Collecting history...")
	defer stop()

	if generateGitHubFlag != "" {
		owner, repo, ok := strings.Cut(generateGitHubFlag, "/")
		if !ok || owner == "" || repo == "" {
			return nil, cliErrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("invalid --github value %q", generateGitHubFlag),
				"relnote generate --github owner/repo --from <ref> [--to <ref>]")
		}
		if generateFromFlag == "" {
			return nil, cliErrors.NewArgumentError("--from is required with --github",
				"Pass the base ref of the comparison, e.g. --from v1.0.0")
		}
		provider := forge.NewGitHub(cfg.GitHubToken)
		entries, err := provider.EntriesBetween(cmd.Context(), owner, repo, generateFromFlag, generateToFlag)
		if err != nil {
			return nil, cliErrors.Wrap(err, cliErrors.Input,
				"Check the repository name and refs",
				"Set RELNOTE_GITHUB_TOKEN for private repositories or higher rate limits")
		}
		return entries, nil
	}

	repoPath := generateRepoFlag
	if repoPath == "" {
		repoPath = cfg.Repo
	}
	collector, err := git.Open(repoPath)
	if err != nil {
		return nil, cliErrors.Wrap(err, cliErrors.Input,
			"Run relnote inside a git repository or pass --repo")
	}
	entries, err := collector.EntriesBetween(generateFromFlag, generateToFlag)
	if err != nil {
		return nil, cliErrors.Wrap(err, cliErrors.Input,
			"Check that both refs exist, e.g. with 'git rev-parse <ref>'")
	}
	return entries, nil
}

// startSpinner shows a spinner on interactive terminals and returns a
// stop function. Non-TTY runs (CI, pipes) get no spinner.
func startSpinner(suffix string) func() {
	if !output.IsTerminal() || noColorFlag {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

// resolveFormat applies the flag > config precedence.
func resolveFormat(cfg *config.Configuration) string {
	if generateFormatFlag != "" {
		return generateFormatFlag
	}
	return cfg.Format
}

// renderError attaches remediation to unsupported-format errors.
func renderError(err error, registry *render.Registry) error {
	return cliErrors.Wrap(err, cliErrors.Runtime,
		fmt.Sprintf("Use one of the registered formats: %s", strings.Join(registry.Names(), ", ")))
}

// loadConfiguration loads and validates the layered configuration.
func loadConfiguration() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, cliErrors.Wrap(err, cliErrors.Configuration,
			"Check .relnote/config.yml against 'relnote config init' output",
			"Every rule category must be declared in the taxonomy")
	}
	return cfg, nil
}
