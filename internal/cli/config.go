package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raveheart1/relnote/internal/config"
	cliErrors "github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/output"
)

var configInitForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relnote configuration",
	Long: `Manage the relnote configuration.

Configuration is layered: environment variables (RELNOTE_*) override the
project config (.relnote/config.yml or .json), which overrides the user
config (~/.config/relnote/config.yml), which overrides the built-in
defaults.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default project config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after all layers are merged",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVar(&configInitForceFlag, "force", false, "Overwrite an existing project config")
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if configFlag != "" {
		path = configFlag
	}

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		return cliErrors.NewConfigError(
			fmt.Sprintf("config file %s already exists", path),
			"Pass --force to overwrite it",
			"Or edit the existing file directly")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "creating config directory")
		}
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "writing config file")
	}

	output.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Wrote %s", path))
	return nil
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return cliErrors.WrapWithMessage(err, cliErrors.Runtime, "marshaling config")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
