package cli

import "github.com/yaklabco/gohilite/pkg/runner"

// Exit codes for gohilite.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRunErrors indicates the run completed but some files failed.
	ExitRunErrors = 1

	// ExitStrictFallback indicates fallback tokens were emitted in strict mode.
	ExitStrictFallback = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitGrammarError indicates grammar file errors.
	ExitGrammarError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitRunErrors
	}

	if strict && result.HasFallbacks() {
		return ExitStrictFallback
	}

	return ExitSuccess
}
