// Package theme maps token scopes to terminal styles. Selectors are dotted
// scope prefixes: the setting with the longest selector matching the most
// specific scope of a token wins.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gohilite/pkg/grammar"
)

// Setting is one scope-to-style rule in a theme definition.
type Setting struct {
	// Scope is the selector, a dotted prefix such as "comment" or
	// "constant.numeric".
	Scope string `yaml:"scope"`

	// Foreground and Background are lipgloss color values
	// (ANSI number or hex string).
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`

	Bold      bool `yaml:"bold,omitempty"`
	Italic    bool `yaml:"italic,omitempty"`
	Underline bool `yaml:"underline,omitempty"`
	Faint     bool `yaml:"faint,omitempty"`
}

type entry struct {
	selector string
	style    lipgloss.Style
}

// Theme is a compiled, immutable set of style rules.
type Theme struct {
	name    string
	entries []entry
}

// New builds a theme from settings. Later settings for the same selector
// replace earlier ones.
func New(name string, settings []Setting) *Theme {
	t := &Theme{name: name}
	for _, setting := range settings {
		t.add(setting)
	}
	return t
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.name
}

func (t *Theme) add(setting Setting) {
	style := lipgloss.NewStyle()
	if setting.Foreground != "" {
		style = style.Foreground(lipgloss.Color(setting.Foreground))
	}
	if setting.Background != "" {
		style = style.Background(lipgloss.Color(setting.Background))
	}
	if setting.Bold {
		style = style.Bold(true)
	}
	if setting.Italic {
		style = style.Italic(true)
	}
	if setting.Underline {
		style = style.Underline(true)
	}
	if setting.Faint {
		style = style.Faint(true)
	}

	for i := range t.entries {
		if t.entries[i].selector == setting.Scope {
			t.entries[i].style = style
			return
		}
	}
	t.entries = append(t.entries, entry{selector: setting.Scope, style: style})
}

// StyleFor returns the style for a token's scope list. Scopes are searched
// innermost first, so the most specific category decides; within one scope
// the longest matching selector wins. The second result reports whether any
// selector matched.
func (t *Theme) StyleFor(scopes []grammar.Scope) (lipgloss.Style, bool) {
	for i := len(scopes) - 1; i >= 0; i-- {
		if style, ok := t.styleForScope(string(scopes[i])); ok {
			return style, true
		}
	}
	return lipgloss.NewStyle(), false
}

func (t *Theme) styleForScope(scope string) (lipgloss.Style, bool) {
	best := -1
	bestLen := -1
	for i, e := range t.entries {
		if !selectorMatches(e.selector, scope) {
			continue
		}
		if len(e.selector) > bestLen {
			best = i
			bestLen = len(e.selector)
		}
	}
	if best < 0 {
		return lipgloss.Style{}, false
	}
	return t.entries[best].style, true
}

// selectorMatches reports whether a selector covers a scope: exact match or
// dotted-prefix match ("comment" covers "comment.block.sflk").
func selectorMatches(selector, scope string) bool {
	if selector == scope {
		return true
	}
	return strings.HasPrefix(scope, selector+".")
}
