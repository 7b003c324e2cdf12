package grammar

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// LoadError describes one problem found while compiling a grammar.
type LoadError struct {
	// Grammar is the name of the offending grammar.
	Grammar string

	// Context is the context containing the problem, if any.
	Context string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	var parts []string
	if e.Grammar != "" {
		parts = append(parts, e.Grammar)
	}
	if e.Context != "" {
		parts = append(parts, "context "+e.Context)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// LoadErrors aggregates every problem found during a compile pass, so a
// grammar author sees all dangling references at once instead of one per
// attempt.
type LoadErrors []*LoadError

// Error implements the error interface.
func (e LoadErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, le := range e {
		msgs = append(msgs, le.Error())
	}
	return fmt.Sprintf("%d grammar load errors: %s", len(e), strings.Join(msgs, "; "))
}

// Capture is a compiled capture-group-to-scope binding, ordered by group.
type Capture struct {
	Group int
	Scope Scope
}

// CompiledRule is a matchable rule with its pattern anchored to the current
// offset. Fields are read-only after Compile.
type CompiledRule struct {
	// Re is the anchored pattern. It only ever matches at the start of the
	// slice it is applied to.
	Re *regexp.Regexp

	// Scope is the category for the matched span.
	Scope Scope

	// Captures are the capture bindings sorted by group number.
	Captures []Capture

	// Push is the target context name; empty for no push.
	Push string

	// Pop leaves the current context after the match.
	Pop bool
}

// CompiledContext is a context with its includes spliced in and patterns
// compiled. Fields are read-only after Compile.
type CompiledContext struct {
	Name      string
	MetaScope Scope
	Rules     []CompiledRule
}

// Compiled is an immutable, validated grammar ready for tokenizing.
type Compiled struct {
	// Source is the grammar this was compiled from.
	Source *Grammar

	contexts map[string]*CompiledContext
	entry    *CompiledContext
}

// Name returns the grammar name.
func (c *Compiled) Name() string {
	return c.Source.Name
}

// FileTypes returns the file extensions the grammar applies to.
func (c *Compiled) FileTypes() []string {
	return c.Source.FileTypes
}

// Entry returns the entry context.
func (c *Compiled) Entry() *CompiledContext {
	return c.entry
}

// Context looks up a compiled context by name.
func (c *Compiled) Context(name string) (*CompiledContext, bool) {
	ctx, ok := c.contexts[name]
	return ctx, ok
}

// ContextNames returns all context names in sorted order.
func (c *Compiled) ContextNames() []string {
	names := make([]string, 0, len(c.contexts))
	for name := range c.contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile validates a grammar and produces its immutable compiled form.
// Every push and include target must name an existing context, the entry
// context must exist, include chains must not cycle, and every pattern must
// compile. All problems are collected and returned together as LoadErrors.
func Compile(g *Grammar) (*Compiled, error) {
	var errs LoadErrors

	if g.Name == "" {
		errs = append(errs, &LoadError{Message: "grammar has no name"})
	}
	if _, ok := g.Contexts[EntryContext]; !ok {
		errs = append(errs, &LoadError{
			Grammar: g.Name,
			Message: fmt.Sprintf("missing entry context %q", EntryContext),
		})
	}

	compiled := &Compiled{
		Source:   g,
		contexts: make(map[string]*CompiledContext, len(g.Contexts)),
	}

	// Deterministic compile order so error output is stable.
	names := make([]string, 0, len(g.Contexts))
	for name := range g.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cc := &CompiledContext{
			Name:      name,
			MetaScope: g.Contexts[name].MetaScope,
		}
		visiting := map[string]bool{}
		cc.Rules = spliceRules(g, name, name, visiting, &errs)
		compiled.contexts[name] = cc
	}

	if len(errs) > 0 {
		return nil, errs
	}

	compiled.entry = compiled.contexts[EntryContext]
	return compiled, nil
}

// MustCompile is like Compile but panics on error. Intended for builtin
// grammar tables registered at init time.
func MustCompile(g *Grammar) *Compiled {
	compiled, err := Compile(g)
	if err != nil {
		panic(fmt.Sprintf("grammar %q: %v", g.Name, err))
	}
	return compiled
}

// spliceRules flattens a context's rule list, expanding includes in place.
// visiting tracks the include chain to reject cycles.
func spliceRules(g *Grammar, origin, name string, visiting map[string]bool, errs *LoadErrors) []CompiledRule {
	if visiting[name] {
		*errs = append(*errs, &LoadError{
			Grammar: g.Name,
			Context: origin,
			Message: fmt.Sprintf("include cycle through %q", name),
		})
		return nil
	}
	visiting[name] = true
	defer delete(visiting, name)

	ctx, ok := g.Contexts[name]
	if !ok {
		*errs = append(*errs, &LoadError{
			Grammar: g.Name,
			Context: origin,
			Message: fmt.Sprintf("include of unknown context %q", name),
		})
		return nil
	}

	var rules []CompiledRule
	for i, rule := range ctx.Rules {
		if rule.Include != "" {
			if rule.Pattern != "" {
				*errs = append(*errs, &LoadError{
					Grammar: g.Name,
					Context: name,
					Message: fmt.Sprintf("rule %d sets both match and include", i),
				})
				continue
			}
			rules = append(rules, spliceRules(g, origin, rule.Include, visiting, errs)...)
			continue
		}

		compiled, ruleErrs := compileRule(g, name, i, rule)
		*errs = append(*errs, ruleErrs...)
		if len(ruleErrs) == 0 {
			rules = append(rules, compiled)
		}
	}
	return rules
}

func compileRule(g *Grammar, ctxName string, index int, rule Rule) (CompiledRule, LoadErrors) {
	var errs LoadErrors

	if rule.Pattern == "" {
		errs = append(errs, &LoadError{
			Grammar: g.Name,
			Context: ctxName,
			Message: fmt.Sprintf("rule %d has no match pattern", index),
		})
		return CompiledRule{}, errs
	}

	// Anchor at the current offset: matching is never a free search.
	re, err := regexp.Compile(`\A(?:` + rule.Pattern + `)`)
	if err != nil {
		errs = append(errs, &LoadError{
			Grammar: g.Name,
			Context: ctxName,
			Message: fmt.Sprintf("rule %d pattern %q: %v", index, rule.Pattern, err),
		})
	}

	if rule.Push != "" && rule.Pop {
		errs = append(errs, &LoadError{
			Grammar: g.Name,
			Context: ctxName,
			Message: fmt.Sprintf("rule %d sets both push and pop", index),
		})
	}
	if rule.Push != "" {
		if _, ok := g.Contexts[rule.Push]; !ok {
			errs = append(errs, &LoadError{
				Grammar: g.Name,
				Context: ctxName,
				Message: fmt.Sprintf("rule %d pushes unknown context %q", index, rule.Push),
			})
		}
	}

	captures := make([]Capture, 0, len(rule.Captures))
	for group, scope := range rule.Captures {
		if group < 1 {
			errs = append(errs, &LoadError{
				Grammar: g.Name,
				Context: ctxName,
				Message: fmt.Sprintf("rule %d captures group %d; groups are numbered from 1", index, group),
			})
			continue
		}
		captures = append(captures, Capture{Group: group, Scope: scope})
	}
	sort.Slice(captures, func(i, j int) bool { return captures[i].Group < captures[j].Group })

	if len(errs) > 0 {
		return CompiledRule{}, errs
	}

	return CompiledRule{
		Re:       re,
		Scope:    rule.Scope,
		Captures: captures,
		Push:     rule.Push,
		Pop:      rule.Pop,
	}, nil
}
