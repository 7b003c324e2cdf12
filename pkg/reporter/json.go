package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gohilite/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's token stream.
type JSONFileResult struct {
	Path           string      `json:"path"`
	Grammar        string      `json:"grammar,omitempty"`
	Tokens         []JSONToken `json:"tokens"`
	FallbackTokens int         `json:"fallbackTokens,omitempty"`
	UnbalancedPops int         `json:"unbalancedPops,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// JSONToken represents a single token.
type JSONToken struct {
	StartOffset int      `json:"startOffset"`
	EndOffset   int      `json:"endOffset"`
	Text        string   `json:"text"`
	Scopes      []string `json:"scopes"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesErrored    int            `json:"filesErrored"`
	TokensTotal     int            `json:"tokensTotal"`
	FallbackTokens  int            `json:"fallbackTokens"`
	UnbalancedPops  int            `json:"unbalancedPops"`
	ByGrammar       map[string]int `json:"byGrammar"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByGrammar: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:           displayPath(file.Path, r.opts.WorkingDir),
			Grammar:        file.Grammar,
			Tokens:         make([]JSONToken, 0, len(file.Tokens)),
			FallbackTokens: file.FallbackTokens,
			UnbalancedPops: file.UnbalancedPops,
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		for _, tok := range file.Tokens {
			scopes := make([]string, 0, len(tok.Scopes))
			for _, scope := range tok.Scopes {
				scopes = append(scopes, string(scope))
			}
			fileResult.Tokens = append(fileResult.Tokens, JSONToken{
				StartOffset: tok.StartOffset,
				EndOffset:   tok.EndOffset,
				Text:        string(tok.Text(file.Source)),
				Scopes:      scopes,
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesDiscovered: result.Stats.FilesDiscovered,
		FilesProcessed:  result.Stats.FilesProcessed,
		FilesErrored:    result.Stats.FilesErrored,
		TokensTotal:     result.Stats.TokensTotal,
		FallbackTokens:  result.Stats.FallbackTokens,
		UnbalancedPops:  result.Stats.UnbalancedPops,
		ByGrammar:       result.Stats.ByGrammar,
	}
	if output.Summary.ByGrammar == nil {
		output.Summary.ByGrammar = make(map[string]int)
	}

	return output
}
