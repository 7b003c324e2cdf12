package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gohilite/pkg/reporter"
)

func newTokensCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [paths...]",
		Short: "Print the token stream of source files",
		Long: `Print the token stream of source files, one token per line with its
byte offsets, quoted text, and scope list. Fallback tokens print "-" as
their scope list.

Examples:
  gohilite tokens script.sflk              # List tokens
  gohilite tokens --format json script.sflk
  gohilite tokens --strict script.sflk     # Fail on unrecognized input`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, flags, reporter.FormatText)
		},
	}

	addHighlightFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json, summary")

	return cmd
}
