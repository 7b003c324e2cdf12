package lexer

import (
	"fmt"

	"github.com/yaklabco/gohilite/pkg/grammar"
)

// Snapshot is the serializable resume state of a lexing pass: the offset of
// the next unread byte and the context stack by name. Together with the
// grammar it is sufficient to resume matching and produce the identical
// remaining token stream.
//
// Take snapshots at token boundaries: if capture sub-tokens are still
// pending (Lexer.Pending reports true), they are not represented here.
type Snapshot struct {
	// Offset is the byte index tokenizing resumes at.
	Offset int `json:"offset" yaml:"offset"`

	// Contexts is the active context stack, bottom first. The first entry
	// is always the grammar's entry context.
	Contexts []string `json:"contexts" yaml:"contexts"`

	// UnbalancedPops carries the diagnostic counter across the split.
	UnbalancedPops int `json:"unbalanced_pops,omitempty" yaml:"unbalanced_pops,omitempty"`
}

// Snapshot captures the lexer's current resume state.
func (lx *Lexer) Snapshot() Snapshot {
	contexts := make([]string, len(lx.stack))
	for i, ctx := range lx.stack {
		contexts[i] = ctx.Name
	}
	return Snapshot{
		Offset:         lx.pos,
		Contexts:       contexts,
		UnbalancedPops: lx.unbalancedPops,
	}
}

// Resume creates a Lexer over src continuing from a previously captured
// snapshot. The snapshot must have been taken against the same grammar;
// unknown context names and out-of-range offsets are rejected.
func Resume(g *grammar.Compiled, src []byte, snap Snapshot) (*Lexer, error) {
	if snap.Offset < 0 || snap.Offset > len(src) {
		return nil, fmt.Errorf("snapshot offset %d out of range [0, %d]", snap.Offset, len(src))
	}

	stack := make([]*grammar.CompiledContext, 0, len(snap.Contexts))
	for _, name := range snap.Contexts {
		ctx, ok := g.Context(name)
		if !ok {
			return nil, fmt.Errorf("snapshot references unknown context %q in grammar %q", name, g.Name())
		}
		stack = append(stack, ctx)
	}

	if len(stack) == 0 {
		stack = append(stack, g.Entry())
	} else if stack[0].Name != grammar.EntryContext {
		return nil, fmt.Errorf("snapshot stack bottom is %q, want %q", stack[0].Name, grammar.EntryContext)
	}

	return &Lexer{
		g:              g,
		src:            src,
		pos:            snap.Offset,
		stack:          stack,
		unbalancedPops: snap.UnbalancedPops,
	}, nil
}
