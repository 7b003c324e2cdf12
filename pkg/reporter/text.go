package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gohilite/internal/ui/pretty"
	"github.com/yaklabco/gohilite/pkg/lexer"
	"github.com/yaklabco/gohilite/pkg/runner"
)

// TextReporter writes a human-readable token listing, one token per line:
// offset range, quoted text, and the scope list.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		return nil
	}

	for i, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		header := fmt.Sprintf("%s (%s, %d tokens)",
			displayPath(file.Path, r.opts.WorkingDir), file.Grammar, len(file.Tokens))
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(header))

		for _, tok := range file.Tokens {
			r.writeToken(tok, file.Source)
		}

		if i < len(result.Files)-1 {
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		writeSummaryLine(r.bw, r.styles, result.Stats)
	}

	return nil
}

func (r *TextReporter) writeToken(tok lexer.Token, src []byte) {
	location := fmt.Sprintf("%6d..%-6d", tok.StartOffset, tok.EndOffset)
	text := strconv.Quote(string(tok.Text(src)))

	// Keep long tokens on one terminal line; the offsets still identify the
	// full span.
	if maxText := r.width / 2; maxText >= 8 && len(text) > maxText {
		text = text[:maxText-4] + `..."`
	}

	scopeList := "-"
	scopeStyle := r.styles.Fallback
	if !tok.Unscoped() {
		parts := make([]string, 0, len(tok.Scopes))
		for _, scope := range tok.Scopes {
			parts = append(parts, string(scope))
		}
		scopeList = strings.Join(parts, " ")
		scopeStyle = r.styles.ScopeName
	}

	fmt.Fprintf(r.bw, "  %s %s %s\n",
		r.styles.Location.Render(location),
		r.styles.TokenText.Render(text),
		scopeStyle.Render(scopeList),
	)
}
