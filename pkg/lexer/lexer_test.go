package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gohilite/pkg/grammar"
	"github.com/yaklabco/gohilite/pkg/lexer"
)

func sflk(t *testing.T) *grammar.Compiled {
	t.Helper()
	compiled, ok := grammar.DefaultRegistry.Get("sflk")
	require.True(t, ok)
	return compiled
}

// spans collects (text, innermost scope) pairs for readable assertions.
func spans(src []byte, tokens []lexer.Token) [][2]string {
	out := make([][2]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, [2]string{string(tok.Text(src)), string(tok.Innermost())})
	}
	return out
}

func TestCommentBeginBodyEnd(t *testing.T) {
	src := []byte("# hello #")
	tokens := lexer.New(sflk(t), src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	require.Len(t, tokens, 3)

	assert.Equal(t, [][2]string{
		{"#", "punctuation.definition.comment.sflk"},
		{" hello ", "comment.block.sflk"},
		{"#", "punctuation.definition.comment.sflk"},
	}, spans(src, tokens))

	// Begin and end delimiters carry the comment meta scope too.
	assert.Equal(t, grammar.Scope("comment.block.sflk"), tokens[0].Scopes[0])
	assert.Equal(t, grammar.Scope("comment.block.sflk"), tokens[2].Scopes[0])

	// After the comment pops, the entry context resumes.
	lx := lexer.New(sflk(t), []byte("# c # pr"))
	drained := lx.Tokens()
	last := drained[len(drained)-1]
	assert.Equal(t, grammar.Scope("keyword.control.sflk"), last.Innermost())
}

func TestParenExpression(t *testing.T) {
	src := []byte("(1+2)")
	tokens := lexer.New(sflk(t), src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	assert.Equal(t, [][2]string{
		{"(", "punctuation.section.group.begin.sflk"},
		{"1", "constant.numeric.integer.sflk"},
		{"+", "keyword.operator.arithmetic.sflk"},
		{"2", "constant.numeric.integer.sflk"},
		{")", "punctuation.section.group.end.sflk"},
	}, spans(src, tokens))

	// Every token, delimiters included, sits under the group meta scope.
	for _, tok := range tokens {
		assert.Equal(t, grammar.Scope("meta.group.sflk"), tok.Scopes[0])
	}
}

func TestUnmatchedCloserFallsBack(t *testing.T) {
	src := []byte(")pr")
	lx := lexer.New(sflk(t), src)
	tokens := lx.Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	require.Len(t, tokens, 2)

	assert.True(t, tokens[0].Unscoped())
	assert.Equal(t, ")", string(tokens[0].Text(src)))
	assert.Equal(t, 1, lx.FallbackTokens())

	// Tokenizing continues normally afterward.
	assert.Equal(t, grammar.Scope("keyword.control.sflk"), tokens[1].Innermost())
}

func TestRulePrecedenceDeclarationOrderWins(t *testing.T) {
	g := grammar.MustCompile(&grammar.Grammar{
		Name: "prec",
		Contexts: map[string]*grammar.Context{
			"main": {
				Rules: []grammar.Rule{
					{Pattern: `ab`, Scope: "short.first"},
					{Pattern: `abc`, Scope: "long.second"},
				},
			},
		},
	})

	src := []byte("abc")
	tokens := lexer.New(g, src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	require.Len(t, tokens, 2)

	// The earlier rule wins even though the later one matches a longer span.
	assert.Equal(t, "ab", string(tokens[0].Text(src)))
	assert.Equal(t, grammar.Scope("short.first"), tokens[0].Innermost())
	assert.True(t, tokens[1].Unscoped())
}

func TestNestedCommentMarkers(t *testing.T) {
	g := sflk(t)

	t.Run("two levels", func(t *testing.T) {
		src := []byte("#a##b##c#")
		tokens := lexer.New(g, src).Tokens()
		require.True(t, lexer.Validate(tokens, len(src)))

		assert.Equal(t, [][2]string{
			{"#", "punctuation.definition.comment.sflk"},
			{"a", "comment.block.sflk"},
			{"##", "punctuation.definition.comment.sflk"},
			{"b", "comment.block.sflk"},
			{"##", "punctuation.definition.comment.sflk"},
			{"c", "comment.block.sflk"},
			{"#", "punctuation.definition.comment.sflk"},
		}, spans(src, tokens))

		// "b" sits inside two comment frames: its meta scope appears twice.
		assert.Equal(t, []grammar.Scope{"comment.block.sflk", "comment.block.sflk"}, tokens[3].Scopes)

		// "c" is back to a single comment frame.
		assert.Equal(t, []grammar.Scope{"comment.block.sflk"}, tokens[5].Scopes)
	})

	t.Run("three levels close in order", func(t *testing.T) {
		src := []byte("#a##b###c###d##e#f")
		tokens := lexer.New(g, src).Tokens()
		require.True(t, lexer.Validate(tokens, len(src)))

		depthOf := map[string]int{"a": 1, "b": 2, "c": 3, "d": 2, "e": 1}
		for _, tok := range tokens {
			text := string(tok.Text(src))
			if depth, ok := depthOf[text]; ok {
				assert.Len(t, tok.Scopes, depth, "content %q", text)
			}
		}

		// "f" follows the final pop and is plain source again.
		last := tokens[len(tokens)-1]
		assert.Equal(t, "f", string(last.Text(src)))
		assert.Equal(t, grammar.Scope("variable.other.sflk"), last.Innermost())
	})

	t.Run("inner marker does not close outer context", func(t *testing.T) {
		// A lone '#' inside a ##-comment is content, not a closer.
		src := []byte("##a#b##")
		tokens := lexer.New(g, src).Tokens()
		require.True(t, lexer.Validate(tokens, len(src)))

		assert.Equal(t, [][2]string{
			{"##", "punctuation.definition.comment.sflk"},
			{"a", "comment.block.sflk"},
			{"#", "comment.block.sflk"},
			{"b", "comment.block.sflk"},
			{"##", "punctuation.definition.comment.sflk"},
		}, spans(src, tokens))
	})
}

func TestRecursiveContextUsesStackDepth(t *testing.T) {
	src := []byte("((1))")
	tokens := lexer.New(sflk(t), src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	require.Len(t, tokens, 5)

	// The inner "1" is under two group frames.
	assert.Equal(t, []grammar.Scope{
		"meta.group.sflk", "meta.group.sflk", "constant.numeric.integer.sflk",
	}, tokens[2].Scopes)

	// The final ')' closes the outermost frame only.
	assert.Equal(t, []grammar.Scope{
		"meta.group.sflk", "punctuation.section.group.end.sflk",
	}, tokens[4].Scopes)
}

func TestUnbalancedPopIsANoOp(t *testing.T) {
	g := grammar.MustCompile(&grammar.Grammar{
		Name: "poppy",
		Contexts: map[string]*grammar.Context{
			"main": {
				Rules: []grammar.Rule{
					{Pattern: `x`, Scope: "closer", Pop: true},
					{Pattern: `[a-w]+`, Scope: "word"},
				},
			},
		},
	})

	src := []byte("axbxc")
	lx := lexer.New(g, src)
	tokens := lx.Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	assert.Equal(t, 2, lx.UnbalancedPops())

	// The stream itself is unaffected: pops at the entry context degrade
	// to plain tokens.
	assert.Equal(t, [][2]string{
		{"a", "word"}, {"x", "closer"}, {"b", "word"}, {"x", "closer"}, {"c", "word"},
	}, spans(src, tokens))
}

func TestCaptureSplitsMatchIntoSubTokens(t *testing.T) {
	g := grammar.MustCompile(&grammar.Grammar{
		Name: "caps",
		Contexts: map[string]*grammar.Context{
			"main": {
				Rules: []grammar.Rule{
					{
						Pattern: `([a-z]+)(=)([0-9]+)`,
						Scope:   "meta.assignment",
						Captures: map[int]grammar.Scope{
							1: "variable.key",
							3: "constant.value",
						},
					},
					{Pattern: `\s+`},
				},
			},
		},
	})

	src := []byte("port=8080")
	tokens := lexer.New(g, src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	assert.Equal(t, [][2]string{
		{"port", "variable.key"},
		{"=", "meta.assignment"}, // uncaptured remainder keeps the rule scope
		{"8080", "constant.value"},
	}, spans(src, tokens))
}

func TestCaptureWithTransitionAppliesAfterWholeMatch(t *testing.T) {
	g := grammar.MustCompile(&grammar.Grammar{
		Name: "capspush",
		Contexts: map[string]*grammar.Context{
			"main": {
				Rules: []grammar.Rule{
					{
						Pattern:  `(<)([a-z]+)`,
						Captures: map[int]grammar.Scope{1: "punctuation.begin", 2: "entity.name"},
						Push:     "tag",
					},
				},
			},
			"tag": {
				MetaScope: "meta.tag",
				Rules: []grammar.Rule{
					{Pattern: `>`, Scope: "punctuation.end", Pop: true},
				},
			},
		},
	})

	src := []byte("<em>")
	tokens := lexer.New(g, src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	require.Len(t, tokens, 3)

	// Both capture sub-tokens already carry the pushed context's meta scope.
	assert.Equal(t, []grammar.Scope{"meta.tag", "punctuation.begin"}, tokens[0].Scopes)
	assert.Equal(t, []grammar.Scope{"meta.tag", "entity.name"}, tokens[1].Scopes)
	assert.Equal(t, []grammar.Scope{"meta.tag", "punctuation.end"}, tokens[2].Scopes)
}

func TestZeroWidthMatchesAreSkipped(t *testing.T) {
	g := grammar.MustCompile(&grammar.Grammar{
		Name: "zero",
		Contexts: map[string]*grammar.Context{
			"main": {
				Rules: []grammar.Rule{
					{Pattern: `x*`, Scope: "maybe"},
					{Pattern: `y`, Scope: "why"},
				},
			},
		},
	})

	src := []byte("yxx")
	tokens := lexer.New(g, src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	assert.Equal(t, [][2]string{
		{"y", "why"},
		{"xx", "maybe"},
	}, spans(src, tokens))
}

func TestCoverageAcrossArbitraryInput(t *testing.T) {
	inputs := []string{
		"",
		"pr 3",
		"?? unknown bytes \x00\x01 ??",
		"if (1+2) > x th { pr \"ok\" } el { nl }",
		"unterminated # comment runs to end of input",
		"unicode: héllo wörld ★",
		")))(((",
	}

	for _, input := range inputs {
		src := []byte(input)
		tokens := lexer.New(sflk(t), src).Tokens()
		assert.True(t, lexer.Validate(tokens, len(src)), "coverage broken for %q", input)

		// Reconstruct the input from the spans.
		var rebuilt []byte
		for _, tok := range tokens {
			rebuilt = append(rebuilt, tok.Text(src)...)
		}
		assert.Equal(t, src, append([]byte{}, rebuilt...), "reconstruction differs for %q", input)
	}
}

func TestDeterminism(t *testing.T) {
	src := []byte("do { pr 1+2 } # done # \"s\"")

	first := lexer.New(sflk(t), src).Tokens()
	second := lexer.New(sflk(t), src).Tokens()

	assert.Equal(t, first, second)
}

func TestStringContext(t *testing.T) {
	src := []byte(`pr "a\"b"`)
	tokens := lexer.New(sflk(t), src).Tokens()

	require.True(t, lexer.Validate(tokens, len(src)))
	assert.Equal(t, [][2]string{
		{"pr", "keyword.control.sflk"},
		{" ", ""},
		{`"`, "punctuation.definition.string.begin.sflk"},
		{"a", "string.quoted.double.sflk"},
		{`\"`, "constant.character.escape.sflk"},
		{"b", "string.quoted.double.sflk"},
		{`"`, "punctuation.definition.string.end.sflk"},
	}, spans(src, tokens))
}

func TestLexerStopsCleanlyMidStream(t *testing.T) {
	src := []byte("pr 12345 nl")
	lx := lexer.New(sflk(t), src)

	tok, ok := lx.Next()
	require.True(t, ok)
	assert.Equal(t, "pr", string(tok.Text(src)))
	// Abandoning the lexer here requires no cleanup; nothing else observes it.
}
