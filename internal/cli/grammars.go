package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gohilite/internal/logging"
)

const formatJSON = "json"

// grammarInfo represents a grammar in JSON output.
type grammarInfo struct {
	Name      string   `json:"name"`
	FileTypes []string `json:"fileTypes"`
	Contexts  []string `json:"contexts"`
}

func newGrammarsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List available grammars",
		Long: `List every registered grammar with its file types and context names.
Includes builtin grammars plus any loaded via --grammar-dir or
--grammar-file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammars, err := loadGrammarSet(cmd)
			if err != nil {
				return err
			}

			infos := make([]grammarInfo, 0, grammars.Registry.Len())
			for _, name := range grammars.Registry.Names() {
				compiled, ok := grammars.Registry.Get(name)
				if !ok {
					continue
				}
				infos = append(infos, grammarInfo{
					Name:      compiled.Name(),
					FileTypes: compiled.FileTypes(),
					Contexts:  compiled.ContextNames(),
				})
			}

			if format == formatJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(infos); err != nil {
					return fmt.Errorf("encode grammars: %w", err)
				}
				return nil
			}

			logger := logging.NewInteractive()
			logger.Info("available grammars")
			for _, info := range infos {
				logger.Info(info.Name,
					logging.FieldFileTypes, strings.Join(info.FileTypes, ","),
					logging.FieldContexts, len(info.Contexts),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
