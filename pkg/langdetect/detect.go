// Package langdetect picks a grammar for a file. The registry's file-type
// table is consulted first; when the extension is unknown, go-enry detects
// the language from content and the result is mapped to a registered
// grammar name. Detection never fails: the fallback grammar covers
// everything as plain text.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gohilite/pkg/grammar"
)

// FallbackGrammar is returned when nothing better is known.
const FallbackGrammar = "plain"

// Detect returns the name of the grammar to tokenize path with.
// content may be nil when only the filename is available.
func Detect(reg *grammar.Registry, path string, content []byte) string {
	if ext := filepath.Ext(path); ext != "" {
		if compiled, ok := reg.ByFileType(ext); ok {
			return compiled.Name()
		}
	}

	if len(content) > 0 {
		if name := detectByContent(reg, path, content); name != "" {
			return name
		}
	}

	return FallbackGrammar
}

// detectByContent asks go-enry for a language and maps it onto the
// registry. Only confident answers are used.
func detectByContent(reg *grammar.Registry, path string, content []byte) string {
	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if name := registered(reg, lang); name != "" {
			return name
		}
	}

	if lang, safe := enry.GetLanguageByFilename(filepath.Base(path)); safe {
		if name := registered(reg, lang); name != "" {
			return name
		}
	}

	// The classifier needs candidates; offer every registered grammar name.
	candidates := reg.Names()
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		if name := registered(reg, lang); name != "" {
			return name
		}
	}

	return ""
}

// registered normalizes an enry language name and returns it only when a
// grammar of that name is registered.
func registered(reg *grammar.Registry, lang string) string {
	name := strings.ToLower(lang)
	if _, ok := reg.Get(name); ok {
		return name
	}
	return ""
}
