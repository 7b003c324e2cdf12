package grammar

import (
	"sort"
	"strings"
	"sync"
)

// Registry holds compiled grammars keyed by name, with file-type lookup.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]*Compiled
	byFileType map[string]string // extension -> grammar name
}

// NewRegistry creates an empty grammar registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]*Compiled),
		byFileType: make(map[string]string),
	}
}

// Register adds a compiled grammar to the registry.
// A grammar with the same name replaces the previous one; its file types
// take over the extension mapping.
func (r *Registry) Register(compiled *Compiled) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[compiled.Name()] = compiled
	for _, ext := range compiled.FileTypes() {
		r.byFileType[normalizeExt(ext)] = compiled.Name()
	}
}

// Get retrieves a grammar by name.
func (r *Registry) Get(name string) (*Compiled, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	compiled, ok := r.byName[name]
	return compiled, ok
}

// ByFileType retrieves the grammar registered for a file extension.
// The extension may be given with or without the leading dot.
func (r *Registry) ByFileType(ext string) (*Compiled, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byFileType[normalizeExt(ext)]
	if !ok {
		return nil, false
	}
	compiled, ok := r.byName[name]
	return compiled, ok
}

// Names returns all registered grammar names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns all file extensions with a registered grammar,
// sorted, each with a leading dot.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byFileType))
	for ext := range r.byFileType {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Len returns the number of registered grammars.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// DefaultRegistry is the registry builtin grammars register into.
//
//nolint:gochecknoglobals // Package-level registry mirrors rule registration
var DefaultRegistry = NewRegistry()
