package pretty

import (
	"io"
	"os"

	"golang.org/x/term"
)

// defaultWidth is assumed when the writer is not a terminal.
const defaultWidth = 80

// TerminalWidth returns the column width of the terminal behind writer,
// or a default when the writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
