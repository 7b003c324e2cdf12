package theme

// DefaultName is the theme used when none is requested.
const DefaultName = "dark"

// Builtin returns a builtin theme by name.
func Builtin(name string) (*Theme, bool) {
	switch name {
	case "dark":
		return Dark(), true
	case "mono":
		return Mono(), true
	default:
		return nil, false
	}
}

// BuiltinNames lists the builtin themes.
func BuiltinNames() []string {
	return []string{"dark", "mono"}
}

// Dark is the default ANSI-256 theme.
func Dark() *Theme {
	return New("dark", []Setting{
		{Scope: "comment", Foreground: "8", Italic: true},
		{Scope: "punctuation.definition.comment", Foreground: "8"},
		{Scope: "string", Foreground: "10"},
		{Scope: "constant.character.escape", Foreground: "14"},
		{Scope: "constant.numeric", Foreground: "13"},
		{Scope: "keyword.control", Foreground: "12", Bold: true},
		{Scope: "keyword.operator", Foreground: "9"},
		{Scope: "variable", Foreground: "7"},
		{Scope: "entity.name", Foreground: "11"},
		{Scope: "punctuation", Foreground: "8"},
		{Scope: "text", Foreground: "7"},
		{Scope: "invalid", Foreground: "0", Background: "9"},
	})
}

// Mono styles nothing; useful for piping rendered output.
func Mono() *Theme {
	return New("mono", nil)
}
