package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Anything exposing Fd() is checked.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI colors should be written to w.
// NO_COLOR (https://no-color.org) and PKGMETA_NO_COLOR disable color,
// as do TERM=dumb and non-terminal writers.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	for _, env := range []string{"NO_COLOR", "PKGMETA_NO_COLOR"} {
		if _, ok := os.LookupEnv(env); ok {
			return false
		}
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// ConfigureColor sets fatih/color's global switch from w, so command output
// written with color.* follows the same rules as the log handler.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
