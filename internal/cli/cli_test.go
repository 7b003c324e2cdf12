package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gohilite/pkg/runner"
)

func testInfo() BuildInfo {
	return BuildInfo{Version: "test", Commit: "abc123", Date: "today"}
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCommand(testInfo())
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	rootCmd := NewRootCommand(testInfo())

	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"highlight", "tokens", "grammars", "check", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestHighlightPassesSourceThrough(t *testing.T) {
	src := "pr 1+2\n"
	path := writeTempFile(t, "a.sflk", src)

	out, err := execute(t, "highlight", "--color", "never", path)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestHighlightUnknownGrammar(t *testing.T) {
	path := writeTempFile(t, "a.sflk", "pr 1\n")

	_, err := execute(t, "highlight", "--grammar", "no-such", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestHighlightUnknownTheme(t *testing.T) {
	path := writeTempFile(t, "a.sflk", "pr 1\n")

	_, err := execute(t, "highlight", "--theme", "no-such", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestHighlightStrictFailsOnFallback(t *testing.T) {
	path := writeTempFile(t, "a.sflk", "ABC")

	_, err := execute(t, "highlight", "--color", "never", "--strict", path)
	assert.ErrorIs(t, err, ErrStrictFallback)
}

func TestHighlightMissingPath(t *testing.T) {
	_, err := execute(t, "highlight", filepath.Join(t.TempDir(), "absent.sflk"))
	assert.Error(t, err)
}

func TestTokensListsScopes(t *testing.T) {
	path := writeTempFile(t, "a.sflk", "pr 1\n")

	out, err := execute(t, "tokens", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, out, "keyword.control.sflk")
	assert.Contains(t, out, `"pr"`)
}

func TestTokensJSONFormat(t *testing.T) {
	path := writeTempFile(t, "a.sflk", "pr 1\n")

	out, err := execute(t, "tokens", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"scopes"`)
	assert.Contains(t, out, `"startOffset"`)
}

func TestTokensInvalidFormat(t *testing.T) {
	path := writeTempFile(t, "a.sflk", "pr 1\n")

	_, err := execute(t, "tokens", "--format", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestGrammarsJSON(t *testing.T) {
	out, err := execute(t, "grammars", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "sflk"`)
	assert.Contains(t, out, `"fileTypes"`)
	assert.Contains(t, out, `"contexts"`)
}

func TestCheckValidGrammar(t *testing.T) {
	path := writeTempFile(t, "good.yaml", `name: good
contexts:
  main:
    rules:
      - match: '.+'
        scope: text.good
      - match: '\n'
`)

	_, err := execute(t, "check", path)
	assert.NoError(t, err)
}

func TestCheckInvalidGrammar(t *testing.T) {
	path := writeTempFile(t, "bad.yaml", "name: bad\ncontexts:\n  other:\n    rules: []\n")

	_, err := execute(t, "check", path)
	assert.ErrorIs(t, err, ErrGrammarInvalid)
}

func TestHighlightWithGrammarFile(t *testing.T) {
	grammarPath := writeTempFile(t, "shout.yaml", `name: shout
file_types: [".shout"]
contexts:
  main:
    rules:
      - match: '[A-Z]+'
        scope: entity.name.shout
      - match: '[^A-Z]+'
`)
	srcPath := writeTempFile(t, "x.shout", "HELLO there\n")

	out, err := execute(t, "tokens", "--grammar-file", grammarPath, "--color", "never", srcPath)
	require.NoError(t, err)
	assert.Contains(t, out, "entity.name.shout")
}

func TestExitCodeFromResult(t *testing.T) {
	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, false, ExitSuccess},
		{"clean run", &runner.Result{}, true, ExitSuccess},
		{
			"errored files",
			&runner.Result{Stats: runner.Stats{FilesErrored: 1}},
			false,
			ExitRunErrors,
		},
		{
			"fallback lenient",
			&runner.Result{Stats: runner.Stats{FallbackTokens: 3}},
			false,
			ExitSuccess,
		},
		{
			"fallback strict",
			&runner.Result{Stats: runner.Stats{FallbackTokens: 3}},
			true,
			ExitStrictFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrRunFailures, ErrStrictFallback))
	assert.False(t, errors.Is(ErrStrictFallback, ErrGrammarInvalid))
}
