package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gohilite/internal/logging"
	"github.com/yaklabco/gohilite/pkg/grammar"
)

// ErrGrammarInvalid is returned when a checked grammar file fails to compile.
var ErrGrammarInvalid = errors.New("grammar check failed")

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <grammar-file>...",
		Short: "Validate grammar files",
		Long: `Parse and compile grammar files without tokenizing anything, reporting
every problem found: missing entry context, dangling push or include
targets, include cycles, and malformed patterns.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger := logging.NewInteractive()

			failed := 0
			for _, path := range args {
				compiled, err := grammar.LoadFile(path)
				if err != nil {
					failed++
					logger.Error(path, logging.FieldError, err)
					continue
				}
				logger.Info(path,
					logging.FieldGrammar, compiled.Name(),
					logging.FieldContexts, len(compiled.ContextNames()),
				)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files invalid", ErrGrammarInvalid, failed, len(args))
			}
			return nil
		},
	}

	return cmd
}
