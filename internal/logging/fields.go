package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Run fields.
	FieldGrammar = "grammar"
	FieldTheme   = "theme"
	FieldFormat  = "format"
	FieldJobs    = "jobs"

	// Grammar fields.
	FieldContexts  = "contexts"
	FieldFileTypes = "file_types"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldTokensTotal     = "tokens_total"
	FieldFallbackTokens  = "fallback_tokens"
	FieldUnbalancedPops  = "unbalanced_pops"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
