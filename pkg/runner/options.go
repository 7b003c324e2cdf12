// Package runner provides multi-file tokenization orchestration.
package runner

import "github.com/yaklabco/gohilite/pkg/grammar"

// Options controls multi-file tokenization behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Registry supplies the grammars available for this run.
	// If nil, grammar.DefaultRegistry is used.
	Registry *grammar.Registry

	// Grammar forces every file to be tokenized with the named grammar,
	// bypassing detection. Empty means "detect per file".
	Grammar string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir (e.g. --ignore).
	ExcludeGlobs []string

	// Markdown extracts fenced code blocks from Markdown files and
	// tokenizes each fence with the grammar named by its info string.
	// Bytes outside fences are emitted as unscoped tokens.
	Markdown bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// MarkdownExtensions returns the file extensions treated as Markdown
// when Options.Markdown is set.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// registry returns the grammar registry to use, defaulting if nil.
func (o Options) registry() *grammar.Registry {
	if o.Registry == nil {
		return grammar.DefaultRegistry
	}
	return o.Registry
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
