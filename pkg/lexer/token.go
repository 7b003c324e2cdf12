// Package lexer implements the tokenizing engine: a single finite-state
// matcher driven by a compiled grammar and a stack of active contexts.
// Tokens are produced lazily and cover every byte of the input.
package lexer

import "github.com/yaklabco/gohilite/pkg/grammar"

// Token is a contiguous span of source bytes with its assigned scopes.
// Scopes are ordered outermost-first: the meta scopes of every enclosing
// context on the stack, then the matching rule's own scope. A fallback
// token carries no scopes at all.
type Token struct {
	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Scopes are the categories layered onto this span, outermost first.
	Scopes []grammar.Scope
}

// Text returns the source bytes of this token.
func (t Token) Text(src []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(src) || t.StartOffset > t.EndOffset {
		return nil
	}
	return src[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// Unscoped reports whether this token carries no scopes, which is true
// exactly for fallback tokens emitted when no rule matched.
func (t Token) Unscoped() bool {
	return len(t.Scopes) == 0
}

// Innermost returns the most specific scope of this token, or "" if it is
// unscoped.
func (t Token) Innermost() grammar.Scope {
	if len(t.Scopes) == 0 {
		return ""
	}
	return t.Scopes[len(t.Scopes)-1]
}

// Validate checks that a token slice exactly tiles the input:
// tokens are contiguous, non-overlapping, and cover [0, srcLen).
func Validate(tokens []Token, srcLen int) bool {
	if len(tokens) == 0 {
		return srcLen == 0
	}

	if tokens[0].StartOffset != 0 {
		return false
	}
	if tokens[len(tokens)-1].EndOffset != srcLen {
		return false
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
