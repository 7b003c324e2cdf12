package grammar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gohilite/pkg/grammar"
)

const iniGrammarYAML = `name: ini
file_types: [".ini", ".cfg"]
contexts:
  main:
    rules:
      - match: '\[[^\]\n]*\]'
        scope: entity.name.section.ini
      - match: '([A-Za-z_][A-Za-z0-9_]*)(\s*=)'
        captures:
          1: variable.other.key.ini
          2: punctuation.separator.ini
      - match: ';'
        scope: punctuation.definition.comment.ini
        push: comment
      - match: '[ \t\n]+'
  comment:
    meta_scope: comment.line.ini
    rules:
      - match: '\n'
        pop: true
      - match: '[^\n]+'
`

func TestFromYAML(t *testing.T) {
	g, err := grammar.FromYAML([]byte(iniGrammarYAML))
	require.NoError(t, err)

	assert.Equal(t, "ini", g.Name)
	assert.Equal(t, []string{".ini", ".cfg"}, g.FileTypes)
	require.Contains(t, g.Contexts, "main")
	require.Contains(t, g.Contexts, "comment")

	main := g.Contexts["main"]
	require.Len(t, main.Rules, 4)
	assert.Equal(t, grammar.Scope("entity.name.section.ini"), main.Rules[0].Scope)
	assert.Equal(t, grammar.Scope("variable.other.key.ini"), main.Rules[1].Captures[1])
	assert.Equal(t, "comment", main.Rules[2].Push)

	comment := g.Contexts["comment"]
	assert.Equal(t, grammar.Scope("comment.line.ini"), comment.MetaScope)
	assert.True(t, comment.Rules[0].Pop)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := grammar.FromYAML([]byte("contexts: [not, a, map]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestYAMLRoundTrip(t *testing.T) {
	original, err := grammar.FromYAML([]byte(iniGrammarYAML))
	require.NoError(t, err)

	data, err := original.ToYAML()
	require.NoError(t, err)

	reparsed, err := grammar.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, original.Name, reparsed.Name)
	assert.Equal(t, original.FileTypes, reparsed.FileTypes)
	assert.Equal(t, original.Contexts, reparsed.Contexts)

	// Both sides must compile identically.
	_, err = grammar.Compile(reparsed)
	require.NoError(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Run("valid grammar file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ini.yaml")
		require.NoError(t, os.WriteFile(path, []byte(iniGrammarYAML), 0o644))

		compiled, err := grammar.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ini", compiled.Name())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := grammar.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read grammar file")
	})

	t.Run("grammar with load errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		broken := "name: broken\ncontexts:\n  main:\n    rules:\n      - match: 'a'\n        push: nowhere\n"
		require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

		_, err := grammar.LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown context")
	})
}
