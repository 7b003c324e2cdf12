package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/yaklabco/gohilite/internal/ui/pretty"
	"github.com/yaklabco/gohilite/pkg/runner"
)

// SummaryReporter writes aggregate statistics only.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	stats := result.Stats

	fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render("Run summary"))
	fmt.Fprintf(r.bw, "  files discovered: %d\n", stats.FilesDiscovered)
	fmt.Fprintf(r.bw, "  files processed:  %d\n", stats.FilesProcessed)
	if stats.FilesErrored > 0 {
		fmt.Fprintf(r.bw, "  files errored:    %s\n",
			r.styles.Failure.Render(fmt.Sprintf("%d", stats.FilesErrored)))
	}
	fmt.Fprintf(r.bw, "  tokens:           %d\n", stats.TokensTotal)
	fmt.Fprintf(r.bw, "  fallback tokens:  %d\n", stats.FallbackTokens)
	if stats.UnbalancedPops > 0 {
		fmt.Fprintf(r.bw, "  unbalanced pops:  %d\n", stats.UnbalancedPops)
	}

	if len(stats.ByGrammar) > 0 {
		fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render("By grammar"))
		names := make([]string, 0, len(stats.ByGrammar))
		for name := range stats.ByGrammar {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.bw, "  %-16s %d\n", name, stats.ByGrammar[name])
		}
	}

	return nil
}

// writeSummaryLine writes the one-line summary appended by other formats.
func writeSummaryLine(w io.Writer, styles *pretty.Styles, stats runner.Stats) {
	line := fmt.Sprintf("%d files, %d tokens, %d fallback, %d errors",
		stats.FilesProcessed, stats.TokensTotal, stats.FallbackTokens, stats.FilesErrored)
	if stats.FilesErrored > 0 {
		fmt.Fprintln(w, styles.Failure.Render(line))
		return
	}
	fmt.Fprintln(w, styles.Dim.Render(line))
}
