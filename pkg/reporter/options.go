package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gohilite/pkg/theme"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Theme styles ANSI output. Nil selects the default builtin theme.
	Theme *theme.Theme

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatANSI,
		Color:       "auto",
		ShowSummary: false,
	}
}

// theme returns the theme to style with, defaulting if nil.
func (o Options) theme() *theme.Theme {
	if o.Theme != nil {
		return o.Theme
	}
	t, _ := theme.Builtin(theme.DefaultName)
	return t
}
