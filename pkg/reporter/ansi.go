package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gohilite/internal/ui/pretty"
	"github.com/yaklabco/gohilite/pkg/runner"
	"github.com/yaklabco/gohilite/pkg/theme"
)

// ANSIReporter renders highlighted source to the terminal. Each token is
// styled by the theme; unmatched tokens pass through unstyled, so the
// rendered text is byte-for-byte the input when stripped of escapes.
type ANSIReporter struct {
	opts         Options
	theme        *theme.Theme
	styles       *pretty.Styles
	colorEnabled bool
	bw           *bufio.Writer
}

// NewANSIReporter creates a new ANSI reporter.
func NewANSIReporter(opts Options) *ANSIReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &ANSIReporter{
		opts:         opts,
		theme:        opts.theme(),
		styles:       pretty.NewStyles(colorEnabled),
		colorEnabled: colorEnabled,
		bw:           bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ANSIReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	showHeaders := len(result.Files) > 1

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %v\n",
				displayPath(file.Path, r.opts.WorkingDir), file.Error)
			continue
		}

		if showHeaders {
			header := fmt.Sprintf("==> %s <==", displayPath(file.Path, r.opts.WorkingDir))
			fmt.Fprintln(r.bw, r.styles.FilePath.Render(header))
		}

		for _, tok := range file.Tokens {
			text := string(tok.Text(file.Source))
			if !r.colorEnabled {
				r.bw.WriteString(text)
				continue
			}
			if style, ok := r.theme.StyleFor(tok.Scopes); ok {
				r.bw.WriteString(style.Render(text))
			} else {
				r.bw.WriteString(text)
			}
		}

		if showHeaders {
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		writeSummaryLine(r.bw, r.styles, result.Stats)
	}

	return nil
}
