package runner

import (
	"github.com/yaklabco/gohilite/pkg/lexer"
)

// FileOutcome is the tokenization result for a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Grammar is the name of the grammar the file was tokenized with.
	// Empty if the file could not be read.
	Grammar string

	// Source is the file content the tokens index into.
	Source []byte

	// Tokens covers Source completely and contiguously.
	// Nil if the file encountered an error during processing.
	Tokens []lexer.Token

	// FallbackTokens counts tokens emitted by the single-rune fallback
	// rather than a grammar rule.
	FallbackTokens int

	// UnbalancedPops counts pop operations that found only the entry
	// context on the stack.
	UnbalancedPops int

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully tokenized.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// TokensTotal is the total number of tokens across all files.
	TokensTotal int

	// FallbackTokens is the total number of fallback tokens emitted.
	FallbackTokens int

	// UnbalancedPops is the total number of unbalanced pop operations.
	UnbalancedPops int

	// ByGrammar maps grammar names to the number of files tokenized with them.
	ByGrammar map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasFallbacks reports whether any fallback tokens were emitted.
// Useful for strict mode, where unrecognized input is a failure.
func (r *Result) HasFallbacks() bool {
	if r == nil {
		return false
	}
	return r.Stats.FallbackTokens > 0
}

func newStats() Stats {
	return Stats{
		ByGrammar: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.TokensTotal += len(outcome.Tokens)
	r.Stats.FallbackTokens += outcome.FallbackTokens
	r.Stats.UnbalancedPops += outcome.UnbalancedPops

	if outcome.Grammar != "" {
		r.Stats.ByGrammar[outcome.Grammar]++
	}
}
