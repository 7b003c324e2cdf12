// Package grammar defines the rule-table data model for tokenizing: ordered
// regular-expression rules grouped into named contexts, with push/pop
// transitions between them. A Grammar is loaded once, compiled, and is
// immutable afterwards; compiled grammars are safe for concurrent use by
// independent lexing passes.
package grammar

// EntryContext is the name of the distinguished context every grammar
// starts matching in.
const EntryContext = "main"

// Scope is a dotted highlighting category such as "comment.block.sflk".
// Scopes are opaque to the tokenizer; themes interpret them by prefix.
type Scope string

// Rule is one entry in a context's ordered rule list. Exactly one of
// Pattern or Include is set. Rules are tried in declaration order and the
// first match at the current offset wins, regardless of match length.
type Rule struct {
	// Pattern is a Go regular expression tried at the current offset.
	// It is anchored there at compile time; an explicit \A is not needed.
	Pattern string `yaml:"match,omitempty"`

	// Scope is the category assigned to the matched span.
	// Empty means the span carries only enclosing meta scopes.
	Scope Scope `yaml:"scope,omitempty"`

	// Captures maps capture-group numbers to scopes. When set, the matched
	// span is split into sub-tokens: group spans get the capture scope,
	// the uncovered remainder gets Scope.
	Captures map[int]Scope `yaml:"captures,omitempty"`

	// Push names the context entered after this rule matches.
	Push string `yaml:"push,omitempty"`

	// Pop leaves the current context after this rule matches.
	Pop bool `yaml:"pop,omitempty"`

	// Include splices another context's rules in at this position,
	// preserving order with sibling rules. Mutually exclusive with Pattern.
	Include string `yaml:"include,omitempty"`
}

// Context is a named, ordered rule set active while a lexical region is
// being scanned.
type Context struct {
	// MetaScope, when set, is layered onto every token produced while this
	// context is on the stack, including its own begin/end delimiters.
	MetaScope Scope `yaml:"meta_scope,omitempty"`

	// Rules are tried in order; earlier rules win.
	Rules []Rule `yaml:"rules"`
}

// Grammar is a complete, uncompiled grammar definition.
type Grammar struct {
	// Name identifies the grammar in the registry (e.g. "sflk").
	Name string `yaml:"name"`

	// FileTypes lists file extensions (with leading dot) this grammar
	// applies to.
	FileTypes []string `yaml:"file_types,omitempty"`

	// Contexts maps context names to their definitions. A "main" entry
	// context is required.
	Contexts map[string]*Context `yaml:"contexts"`
}
