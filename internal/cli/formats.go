package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/render"
)

// formatDescriptions documents the built-in formats for the listing.
var formatDescriptions = map[string]string{
	"markdown": "CommonMark document with escaped entry text (default)",
	"terminal": "Styled terminal output with colors and icons",
	"json":     "Machine-readable document with a stable field order",
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available output formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range render.NewRegistry().Names() {
			desc := formatDescriptions[name]
			if desc == "" {
				fmt.Fprintln(cmd.OutOrStdout(), name)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, desc)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nCustom templates: relnote generate --template <file> (sprig functions available)")
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
