package grammar

// Builtin grammars, defined as Go rule tables and registered at init time.
// The same definitions could live in YAML grammar files; keeping them in Go
// means the binary always has a working grammar set.

//nolint:gochecknoinits // Builtin grammars register like builtin rules do
func init() {
	DefaultRegistry.Register(MustCompile(SFLK()))
	DefaultRegistry.Register(MustCompile(Plain()))
}

// SFLK returns the grammar for the SFLK scripting language.
//
// SFLK comments are delimited by runs of '#': a run of length k opens a
// comment that only a run of length k closes, and a longer run inside a
// comment opens a nested comment of its own depth. Rule order encodes run
// length precedence: the three-hash rule is declared before the two-hash
// rule, which is declared before the one-hash rule.
func SFLK() *Grammar {
	return &Grammar{
		Name:      "sflk",
		FileTypes: []string{".sflk"},
		Contexts: map[string]*Context{
			"main": {
				Rules: []Rule{
					{Pattern: `#{3}`, Scope: "punctuation.definition.comment.sflk", Push: "comment-3"},
					{Pattern: `#{2}`, Scope: "punctuation.definition.comment.sflk", Push: "comment-2"},
					{Pattern: `#`, Scope: "punctuation.definition.comment.sflk", Push: "comment-1"},
					{Pattern: `"`, Scope: "punctuation.definition.string.begin.sflk", Push: "string"},
					{Pattern: `\b(np|pr|nl|do|dh|fh|ev|if|th|el)\b`, Scope: "keyword.control.sflk"},
					{Pattern: `[0-9]+`, Scope: "constant.numeric.integer.sflk"},
					{Pattern: `[a-z]+`, Scope: "variable.other.sflk"},
					{Pattern: `[-+*/]`, Scope: "keyword.operator.arithmetic.sflk"},
					{Pattern: `>`, Scope: "keyword.operator.chain.sflk"},
					{Pattern: `<`, Scope: "keyword.operator.assignment.sflk"},
					{Pattern: `\(`, Scope: "punctuation.section.group.begin.sflk", Push: "group"},
					{Pattern: `\{`, Scope: "punctuation.section.block.begin.sflk", Push: "block"},
					{Pattern: `[ \t\r\n]+`},
				},
			},
			"group": {
				MetaScope: "meta.group.sflk",
				Rules: []Rule{
					{Pattern: `\)`, Scope: "punctuation.section.group.end.sflk", Pop: true},
					{Include: "main"},
				},
			},
			"block": {
				MetaScope: "meta.block.sflk",
				Rules: []Rule{
					{Pattern: `\}`, Scope: "punctuation.section.block.end.sflk", Pop: true},
					{Include: "main"},
				},
			},
			"string": {
				MetaScope: "string.quoted.double.sflk",
				Rules: []Rule{
					{Pattern: `\\.`, Scope: "constant.character.escape.sflk"},
					{Pattern: `"`, Scope: "punctuation.definition.string.end.sflk", Pop: true},
					{Pattern: `[^"\\]+`},
				},
			},
			// A run of k hashes closes only a comment opened by a run of k;
			// longer runs open nested comments on the stack.
			"comment-1": {
				MetaScope: "comment.block.sflk",
				Rules: []Rule{
					{Pattern: `#{3}`, Scope: "punctuation.definition.comment.sflk", Push: "comment-3"},
					{Pattern: `#{2}`, Scope: "punctuation.definition.comment.sflk", Push: "comment-2"},
					{Pattern: `#`, Scope: "punctuation.definition.comment.sflk", Pop: true},
					{Pattern: `[^#]+`},
				},
			},
			"comment-2": {
				MetaScope: "comment.block.sflk",
				Rules: []Rule{
					{Pattern: `#{3}`, Scope: "punctuation.definition.comment.sflk", Push: "comment-3"},
					{Pattern: `#{2}`, Scope: "punctuation.definition.comment.sflk", Pop: true},
					{Pattern: `#`},
					{Pattern: `[^#]+`},
				},
			},
			"comment-3": {
				MetaScope: "comment.block.sflk",
				Rules: []Rule{
					{Pattern: `#{3}`, Scope: "punctuation.definition.comment.sflk", Pop: true},
					{Pattern: `#{1,2}`},
					{Pattern: `[^#]+`},
				},
			},
		},
	}
}

// Plain returns a grammar that scopes every line as plain text. It is the
// fallback grammar when detection finds nothing better.
func Plain() *Grammar {
	return &Grammar{
		Name:      "plain",
		FileTypes: []string{".txt"},
		Contexts: map[string]*Context{
			"main": {
				Rules: []Rule{
					{Pattern: `[^\n]+`, Scope: "text.plain"},
					{Pattern: `\n`},
				},
			},
		},
	}
}
