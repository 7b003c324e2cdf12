package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/gohilite/internal/logging"
	"github.com/yaklabco/gohilite/pkg/grammar"
	"github.com/yaklabco/gohilite/pkg/langdetect"
	"github.com/yaklabco/gohilite/pkg/lexer"
	"github.com/yaklabco/gohilite/pkg/markdown"
)

// Runner orchestrates multi-file tokenization.
type Runner struct {
	opts Options
}

// New creates a Runner with the given options.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run discovers files under opts.Paths and tokenizes them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logging.FromContext(ctx).Debug("discovery complete",
		logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; rebuild in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker tokenizes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.tokenizeFile(path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// tokenizeFile produces the outcome for a single file.
func (r *Runner) tokenizeFile(path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}
	outcome.Source = content

	if r.opts.Markdown && isMarkdownPath(path) {
		r.tokenizeMarkdown(&outcome, content)
		return outcome
	}

	reg := r.opts.registry()

	name := r.opts.Grammar
	if name == "" {
		name = langdetect.Detect(reg, path, content)
	}

	compiled, ok := reg.Get(name)
	if !ok {
		outcome.Error = fmt.Errorf("grammar %q is not registered", name)
		return outcome
	}

	lx := lexer.New(compiled, content)
	outcome.Grammar = compiled.Name()
	outcome.Tokens = lx.Tokens()
	outcome.FallbackTokens = lx.FallbackTokens()
	outcome.UnbalancedPops = lx.UnbalancedPops()

	return outcome
}

// tokenizeMarkdown tokenizes only the fenced code blocks of a Markdown
// file, each with the grammar named by its info string. Bytes outside
// fences become unscoped tokens, so the stream still covers the file.
func (r *Runner) tokenizeMarkdown(outcome *FileOutcome, content []byte) {
	reg := r.opts.registry()
	outcome.Grammar = "markdown"

	var tokens []lexer.Token
	cursor := 0

	for _, fence := range markdown.ExtractFences(content) {
		if fence.Len() == 0 {
			continue
		}

		if fence.StartOffset > cursor {
			tokens = append(tokens, lexer.Token{
				StartOffset: cursor,
				EndOffset:   fence.StartOffset,
			})
		}

		compiled := r.fenceGrammar(reg, fence.Language)
		lx := lexer.New(compiled, content[fence.StartOffset:fence.EndOffset])
		for _, tok := range lx.Tokens() {
			tok.StartOffset += fence.StartOffset
			tok.EndOffset += fence.StartOffset
			tokens = append(tokens, tok)
		}
		outcome.FallbackTokens += lx.FallbackTokens()
		outcome.UnbalancedPops += lx.UnbalancedPops()

		cursor = fence.EndOffset
	}

	if cursor < len(content) {
		tokens = append(tokens, lexer.Token{
			StartOffset: cursor,
			EndOffset:   len(content),
		})
	}

	outcome.Tokens = tokens
}

// fenceGrammar resolves a fence info-string language to a registered
// grammar, falling back to plain text.
func (r *Runner) fenceGrammar(reg *grammar.Registry, language string) *grammar.Compiled {
	if language != "" {
		if compiled, ok := reg.Get(language); ok {
			return compiled
		}
	}
	if compiled, ok := reg.Get(langdetect.FallbackGrammar); ok {
		return compiled
	}
	// A registry without the fallback grammar is a programming error.
	return grammar.MustCompile(grammar.Plain())
}

func isMarkdownPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range MarkdownExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}
