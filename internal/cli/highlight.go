package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gohilite/internal/logging"
	"github.com/yaklabco/gohilite/pkg/reporter"
	"github.com/yaklabco/gohilite/pkg/runner"
	"github.com/yaklabco/gohilite/pkg/theme"
)

// ErrRunFailures is returned when some files could not be processed.
var ErrRunFailures = errors.New("some files failed to process")

// ErrStrictFallback is returned in strict mode when fallback tokens were
// emitted.
var ErrStrictFallback = errors.New("unrecognized input in strict mode")

type highlightFlags struct {
	grammar   string
	themeName string
	themeFile string
	format    string
	ignore    []string
	jobs      int
	markdown  bool
	strict    bool
	summary   bool
	compact   bool
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "highlight [paths...]",
		Short: "Render highlighted source to the terminal",
		Long:  highlightLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, flags, reporter.FormatANSI)
		},
	}

	addHighlightFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.format, "format", "ansi",
		"output format: ansi, text, json, summary")

	return cmd
}

const highlightLongDescription = `Render highlighted source files to the terminal.

Each file is tokenized with the grammar registered for its file type, or
with a grammar detected from its content. Unknown input falls back to
plain text, so any file can be rendered.

Examples:
  gohilite highlight script.sflk           # Highlight one file
  gohilite highlight src/                  # Highlight a directory
  gohilite highlight --grammar sflk notes  # Force a grammar
  gohilite highlight --theme mono x.sflk   # Pick a builtin theme
  gohilite highlight --markdown README.md  # Highlight fenced code blocks
  gohilite highlight --format json x.sflk  # Token stream as JSON`

// runTokenize is the shared body of the highlight and tokens commands.
func runTokenize(cmd *cobra.Command, args []string, flags *highlightFlags, defaultFormat reporter.Format) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	grammars, err := loadGrammarSet(cmd)
	if err != nil {
		return errors.Join(errors.New("failed to load grammars"), err)
	}

	if flags.grammar != "" {
		if _, ok := grammars.Registry.Get(flags.grammar); !ok {
			return fmt.Errorf("grammar %q is not registered; run 'gohilite grammars' to list", flags.grammar)
		}
	}

	selectedTheme, err := resolveTheme(flags.themeName, flags.themeFile)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Registry:     grammars.Registry,
		Grammar:      flags.grammar,
		ExcludeGlobs: flags.ignore,
		Markdown:     flags.markdown,
		Jobs:         flags.jobs,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldGrammar, flags.grammar,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(runOpts).Run(ctx)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	format := defaultFormat
	if flags.format != "" {
		format, err = reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("invalid format: %w", err)
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Theme:       selectedTheme,
		Color:       colorMode(cmd),
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitRunErrors:
		return ErrRunFailures
	case ExitStrictFallback:
		return ErrStrictFallback
	}

	return nil
}

// resolveTheme picks the theme: an explicit file wins over a builtin name.
func resolveTheme(name, file string) (*theme.Theme, error) {
	if file != "" {
		t, err := theme.LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("load theme: %w", err)
		}
		return t, nil
	}

	if name == "" {
		name = theme.DefaultName
	}
	t, ok := theme.Builtin(name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q; builtin themes: %v", name, theme.BuiltinNames())
	}
	return t, nil
}

func addHighlightFlags(cmd *cobra.Command, flags *highlightFlags) {
	cmd.Flags().StringVar(&flags.grammar, "grammar", "", "force a grammar for every file")
	cmd.Flags().StringVar(&flags.themeName, "theme", "", "builtin theme name (default dark)")
	cmd.Flags().StringVar(&flags.themeFile, "theme-file", "", "YAML theme file")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false,
		"tokenize fenced code blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"fail when input falls back to unscoped tokens")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "append run statistics")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
}
