// Package grammarset assembles the grammar registry for a run. It layers
// user grammar files on top of the builtin set: a grammar directory
// (GOHILITE_GRAMMAR_DIR or --grammar-dir) is loaded in sorted order, then
// explicitly named grammar files, so later sources replace earlier ones.
package grammarset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/gohilite/pkg/grammar"
)

// EnvGrammarDir names the environment variable holding the default
// grammar directory.
const EnvGrammarDir = "GOHILITE_GRAMMAR_DIR"

// LoadOptions controls registry assembly.
type LoadOptions struct {
	// GrammarDir is a directory of *.yaml grammar files to load.
	// Empty falls back to the GOHILITE_GRAMMAR_DIR environment variable;
	// if that is unset too, no directory is loaded.
	GrammarDir string

	// ExplicitPaths are grammar files named directly (from --grammar-file).
	// These load last and take precedence over the directory.
	ExplicitPaths []string

	// SkipBuiltins leaves the builtin grammars out of the registry.
	// The plain fallback grammar is always kept.
	SkipBuiltins bool
}

// LoadResult contains the assembled registry and metadata.
type LoadResult struct {
	// Registry holds every grammar available for this run.
	Registry *grammar.Registry

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load assembles the grammar registry. Grammar files that fail to parse or
// compile abort the load with an error naming every offending file.
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Registry: grammar.NewRegistry()}

	if !opts.SkipBuiltins {
		for _, name := range grammar.DefaultRegistry.Names() {
			if compiled, ok := grammar.DefaultRegistry.Get(name); ok {
				result.Registry.Register(compiled)
			}
		}
	} else if plain, ok := grammar.DefaultRegistry.Get("plain"); ok {
		// The fallback grammar must exist for detection to be total.
		result.Registry.Register(plain)
	}

	dir := opts.GrammarDir
	if dir == "" {
		dir = os.Getenv(EnvGrammarDir)
	}

	var errs []error

	if dir != "" {
		if err := loadDirectory(result, dir); err != nil {
			errs = append(errs, err)
		}
	}

	for _, path := range opts.ExplicitPaths {
		if err := loadFile(result, path); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return result, nil
}

// loadDirectory loads every *.yaml grammar file under dir, sorted by name
// so replacement order is deterministic.
func loadDirectory(result *LoadResult, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("grammar directory %s does not exist", dir))
			return nil
		}
		return fmt.Errorf("read grammar directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := loadFile(result, filepath.Join(dir, name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadFile(result *LoadResult, path string) error {
	compiled, err := grammar.LoadFile(path)
	if err != nil {
		return err
	}

	if _, exists := result.Registry.Get(compiled.Name()); exists {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("grammar %q from %s replaces an earlier definition", compiled.Name(), path))
	}

	result.Registry.Register(compiled)
	result.LoadedFrom = append(result.LoadedFrom, path)
	return nil
}
