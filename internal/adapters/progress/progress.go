package progress

import (
	"io"
	"os"

	"github.com/bnema/page-migration/internal/ports"
	"golang.org/x/term"
)

// New picks an animated bar for terminals and a line tracker otherwise.
func New(out io.Writer, label string) ports.Progress {
	if IsTerminal(out) {
		return NewBar(out, label)
	}
	return NewLines(out, label)
}

// IsTerminal reports whether out is a terminal file descriptor.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
