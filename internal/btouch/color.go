package btouch

import (
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette styles status output. ok and dim are written to stdout, warn and
// fail to stderr; each side is plain unless its own stream is a terminal.
type palette struct {
	ok   *color.Color
	warn *color.Color
	fail *color.Color
	dim  *color.Color
}

// newPalette returns a palette for the given streams. Colour also requires
// enabled, and fatih/color still applies its NO_COLOR and TERM=dumb checks.
func newPalette(enabled bool, stdout, stderr io.Writer) palette {
	p := palette{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.FgHiBlack),
	}
	if !enabled || !isTerminal(stdout) {
		p.ok.DisableColor()
		p.dim.DisableColor()
	}
	if !enabled || !isTerminal(stderr) {
		p.warn.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
