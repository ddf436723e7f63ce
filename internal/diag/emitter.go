package diag

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ColorMode selects whether the emitter uses ANSI colors.
type ColorMode int

const (
	ColorAuto ColorMode = iota // color when writing to a terminal
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiCyan   = "\x1b[36m"
	ansiFaint  = "\x1b[2m"
	ansiBoldRd = ansiBold + ansiRed
)

// Emitter renders diagnostics as text.
type Emitter struct {
	w     io.Writer
	color bool
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer, mode ColorMode) *Emitter {
	return &Emitter{w: w, color: useColor(w, mode)}
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (e *Emitter) paint(code, s string) string {
	if !e.color {
		return s
	}
	return code + s + ansiReset
}

// Emit writes one diagnostic.
func (e *Emitter) Emit(d *Diagnostic) {
	fmt.Fprintf(e.w, "%s: %s %s\n",
		e.paint(ansiBold, d.Pos.String()),
		e.paint(ansiBoldRd, "error["+d.Kind.Code()+"]:"),
		d.Msg)
	if d.Related.IsValid() {
		fmt.Fprintf(e.w, "  %s: %s %s\n",
			e.paint(ansiFaint, d.Related.String()),
			e.paint(ansiCyan, "note:"),
			d.RelatedMsg)
	}
}

// EmitAll writes every diagnostic in l followed by a summary line.
// Nothing is written for an empty list.
func (e *Emitter) EmitAll(l *List) {
	for _, d := range l.Items() {
		e.Emit(d)
	}
	if n := l.Len(); n > 0 {
		fmt.Fprintf(e.w, "%s\n", e.paint(ansiBoldRd, plural(n, "error")))
	}
}
