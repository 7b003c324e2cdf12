// Package cli provides the Cobra command structure for gohilite.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gohilite/internal/grammarset"
	"github.com/yaklabco/gohilite/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gohilite command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string
	var grammarDir string
	var grammarFiles []string

	rootCmd := &cobra.Command{
		Use:   "gohilite",
		Short: "A grammar-driven syntax highlighter",
		Long: `gohilite tokenizes source files against rule-table grammars and renders
them as highlighted terminal output, token listings, or JSON.

Grammars are ordered regular-expression rule tables with push/pop context
transitions, the model used by Sublime Text syntax definitions. Builtin
grammars can be extended or replaced with YAML grammar files.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&grammarDir, "grammar-dir", "",
		"directory of YAML grammar files (default $GOHILITE_GRAMMAR_DIR)")
	rootCmd.PersistentFlags().StringSliceVar(&grammarFiles, "grammar-file", nil,
		"YAML grammar files to load (may repeat)")

	// Add subcommands.
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newGrammarsCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadGrammarSet assembles the registry from the root command's persistent
// grammar flags and logs any warnings.
func loadGrammarSet(cmd *cobra.Command) (*grammarset.LoadResult, error) {
	grammarDir, err := cmd.Flags().GetString("grammar-dir")
	if err != nil {
		grammarDir = ""
	}
	grammarFiles, err := cmd.Flags().GetStringSlice("grammar-file")
	if err != nil {
		grammarFiles = nil
	}

	result, err := grammarset.Load(grammarset.LoadOptions{
		GrammarDir:    grammarDir,
		ExplicitPaths: grammarFiles,
	})
	if err != nil {
		return nil, err
	}

	logger := logging.Default()
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded grammars from", logging.FieldFiles, result.LoadedFrom)
	}

	return result, nil
}

// colorMode returns the persistent --color flag, defaulting to auto.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
