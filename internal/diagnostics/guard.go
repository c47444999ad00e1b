package diagnostics

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// UseColor mirrors the language's global `USE_COLOR` binding (§4.3
// global_env): when nil, color is auto-detected from the output stream;
// when non-nil, it forces color on or off regardless of TTY detection.
var UseColor *bool

// StackTrace mirrors the `TOMO_STACKTRACE` environment variable: when true,
// Guard prints a Go stack trace below the diagnostic.
var StackTrace = os.Getenv("TOMO_STACKTRACE") != ""

// Guard runs fn, recovering a *FatalError raised via Fatal and printing it
// to out in the `file:line.column: message` form (followed by the
// diagnostic code in brackets) with a caret-highlighted
// source excerpt, colorized via fatih/color when color is enabled. Returns
// true if fn completed without a fatal diagnostic.
func Guard(out io.Writer, fn func()) (ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			ok = true
			return
		}
		fe, isFatal := r.(*FatalError)
		if !isFatal {
			panic(r)
		}
		printReport(out, fe.Report)
		ok = false
	}()
	fn()
	return
}

func colorEnabled(out io.Writer) bool {
	if UseColor != nil {
		return *UseColor
	}
	f, ok := out.(*os.File)
	return ok && color.NoColor == false && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func printReport(out io.Writer, r Report) {
	useColor := colorEnabled(out)
	sev := color.New(color.FgRed, color.Bold)
	loc := color.New(color.FgCyan)
	if !useColor {
		sev.DisableColor()
		loc.DisableColor()
	}

	line, col := 0, 0
	if r.Span.Start.File != nil {
		line, col = r.Span.Start.File.LineCol(r.Span.Start.Offset)
	}
	name := "?"
	if r.Span.Start.File != nil {
		name = r.Span.Start.File.RelativeFilename
		if name == "" {
			name = r.Span.Start.File.Name
		}
	}

	fmt.Fprintf(out, "%s: %s %s\n",
		loc.Sprintf("%s:%d.%d", name, line, col), r.Message, sev.Sprintf("[%s]", r.Code))

	if r.Span.Start.File != nil {
		excerpt, prefix, width := r.Span.Start.File.Excerpt(r.Span.Start.Offset, r.Span.End.Offset)
		fmt.Fprintln(out, "  "+excerpt)
		fmt.Fprintln(out, "  "+strings.Repeat(" ", prefix)+sev.Sprint(strings.Repeat("^", width)))
	}

	if r.Fix != "" {
		fmt.Fprintln(out, "  fix: "+r.Fix)
	}

	if StackTrace {
		fmt.Fprintln(out, string(debug.Stack()))
	}
}
