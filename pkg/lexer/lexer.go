package lexer

import (
	"unicode/utf8"

	"github.com/yaklabco/gohilite/pkg/grammar"
)

// Lexer tokenizes one source text against one compiled grammar. It is a
// pull-based iterator: callers retrieve tokens with Next and may stop at
// any point. A Lexer owns its context stack exclusively; the grammar is
// shared and never mutated, so any number of Lexers may run concurrently
// over the same grammar.
type Lexer struct {
	g   *grammar.Compiled
	src []byte
	pos int

	// stack of active contexts; the entry context is always at the bottom.
	stack []*grammar.CompiledContext

	// pending holds sub-tokens of a capture split not yet returned.
	pending []Token

	unbalancedPops int
	fallbackTokens int
}

// New creates a Lexer over src starting in the grammar's entry context.
func New(g *grammar.Compiled, src []byte) *Lexer {
	return &Lexer{
		g:     g,
		src:   src,
		stack: []*grammar.CompiledContext{g.Entry()},
	}
}

// Next returns the next token. It reports false when the input is
// exhausted. Tokens tile the input: each token starts where the previous
// one ended, and the final token ends at the end of the input.
func (lx *Lexer) Next() (Token, bool) {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok, true
	}

	if lx.pos >= len(lx.src) {
		return Token{}, false
	}

	top := lx.stack[len(lx.stack)-1]
	for i := range top.Rules {
		rule := &top.Rules[i]

		loc := rule.Re.FindSubmatchIndex(lx.src[lx.pos:])
		if loc == nil || loc[1] == 0 {
			// No match, or a zero-width match that would not consume
			// input. Zero-width matches are skipped to guarantee progress.
			continue
		}

		return lx.emitMatch(rule, loc), true
	}

	// Fallback: no rule matched. Emit one unscoped rune and advance so the
	// stream still covers every byte.
	_, size := utf8.DecodeRune(lx.src[lx.pos:])
	tok := Token{StartOffset: lx.pos, EndOffset: lx.pos + size}
	lx.pos += size
	lx.fallbackTokens++
	return tok, true
}

// Tokens drains the lexer and returns all remaining tokens.
func (lx *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// UnbalancedPops returns the number of pop transitions that were ignored
// because only the entry context remained on the stack.
func (lx *Lexer) UnbalancedPops() int {
	return lx.unbalancedPops
}

// FallbackTokens returns the number of tokens emitted because no rule in
// the active context matched.
func (lx *Lexer) FallbackTokens() int {
	return lx.fallbackTokens
}

// Pending reports whether sub-tokens of a capture split are still queued.
// Snapshots should be taken only when this is false.
func (lx *Lexer) Pending() bool {
	return len(lx.pending) > 0
}

// Grammar returns the compiled grammar driving this lexer.
func (lx *Lexer) Grammar() *grammar.Compiled {
	return lx.g
}

// emitMatch produces the token(s) for a rule match, applies the rule's
// transition, and advances past the matched span. loc holds submatch
// indexes relative to the current offset; loc[0] is always 0 because
// patterns are anchored.
func (lx *Lexer) emitMatch(rule *grammar.CompiledRule, loc []int) Token {
	start := lx.pos
	end := lx.pos + loc[1]

	// Meta scopes of every context on the stack, outermost first. A pop
	// delimiter still carries the exiting context's meta scope because the
	// stack has not been popped yet; a push delimiter carries the entered
	// context's meta scope as well.
	metas := lx.metaScopes()
	if rule.Push != "" {
		if target, ok := lx.g.Context(rule.Push); ok && target.MetaScope != "" {
			metas = append(metas, target.MetaScope)
		}
	}

	tokens := splitCaptures(rule, metas, start, end, loc)

	switch {
	case rule.Pop:
		if len(lx.stack) == 1 {
			// Popping the entry context is illegal input; recover by
			// staying in it and recording the attempt.
			lx.unbalancedPops++
		} else {
			lx.stack = lx.stack[:len(lx.stack)-1]
		}
	case rule.Push != "":
		target, _ := lx.g.Context(rule.Push)
		lx.stack = append(lx.stack, target)
	}

	lx.pos = end

	if len(tokens) > 1 {
		lx.pending = tokens[1:]
	}
	return tokens[0]
}

// metaScopes collects the meta scopes of the active context stack,
// bottom of stack first.
func (lx *Lexer) metaScopes() []grammar.Scope {
	var metas []grammar.Scope
	for _, ctx := range lx.stack {
		if ctx.MetaScope != "" {
			metas = append(metas, ctx.MetaScope)
		}
	}
	return metas
}

// splitCaptures turns one rule match into its token(s). Without captures
// the whole span is a single token with the rule scope. With captures,
// capture-group spans get their mapped scope and the uncovered remainder
// gets the rule scope; the resulting sub-tokens stay contiguous.
func splitCaptures(rule *grammar.CompiledRule, metas []grammar.Scope, start, end int, loc []int) []Token {
	if len(rule.Captures) == 0 {
		return []Token{{
			StartOffset: start,
			EndOffset:   end,
			Scopes:      layer(metas, rule.Scope),
		}}
	}

	var tokens []Token
	cursor := start

	for _, capture := range rule.Captures {
		hi := 2*capture.Group + 1
		if hi >= len(loc) {
			break
		}
		gs, ge := loc[2*capture.Group], loc[hi]
		if gs < 0 || ge <= gs {
			continue
		}
		gs += start
		ge += start
		if gs < cursor {
			// Overlapping or nested groups: the earlier binding wins.
			continue
		}
		if gs > cursor {
			tokens = append(tokens, Token{
				StartOffset: cursor,
				EndOffset:   gs,
				Scopes:      layer(metas, rule.Scope),
			})
		}
		tokens = append(tokens, Token{
			StartOffset: gs,
			EndOffset:   ge,
			Scopes:      layer(metas, capture.Scope),
		})
		cursor = ge
	}

	if cursor < end {
		tokens = append(tokens, Token{
			StartOffset: cursor,
			EndOffset:   end,
			Scopes:      layer(metas, rule.Scope),
		})
	}

	return tokens
}

// layer copies metas and appends the specific scope beneath which they sit.
func layer(metas []grammar.Scope, scope grammar.Scope) []grammar.Scope {
	scopes := make([]grammar.Scope, len(metas), len(metas)+1)
	copy(scopes, metas)
	if scope != "" {
		scopes = append(scopes, scope)
	}
	return scopes
}
