package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Status tags printed in front of check results.
const (
	TagOK   = "[ OK ]"
	TagWarn = "[WARN]"
)

// hintIndent lines a hint up under the text of the preceding status line.
const hintIndent = "         "

// Color palette, 256-color codes.
const (
	colorGreen   = "2"
	colorRed     = "1"
	colorMagenta = "5"
	colorWhite   = "15"
)

// Styles holds the styles for each kind of line.
type Styles struct {
	Header lipgloss.Style
	OK     lipgloss.Style
	Warn   lipgloss.Style
	Hint   lipgloss.Style
}

// ColorStyles returns the terminal palette: green for OK, red for WARN,
// magenta for remediation hints.
func ColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)),
		OK:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Hint:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMagenta)),
	}
}

// PlainStyles returns unstyled components.
func PlainStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		OK:     lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle(),
		Hint:   lipgloss.NewStyle(),
	}
}

// Writer prints status lines. Write errors are ignored; this is console output.
type Writer struct {
	out    io.Writer
	styles Styles
	color  bool

	warnings int
}

// New returns a Writer on out. Color is enabled when out is a terminal,
// NO_COLOR is unset and noColor is false.
func New(out io.Writer, noColor bool) *Writer {
	color := !noColor && os.Getenv("NO_COLOR") == "" && isTerminal(out)
	w := &Writer{out: out, color: color, styles: PlainStyles()}
	if color {
		w.styles = ColorStyles()
	}
	return w
}

// Plain returns a Writer that never emits escape sequences.
func Plain(out io.Writer) *Writer {
	return &Writer{out: out, styles: PlainStyles()}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Color reports whether escape sequences are emitted.
func (w *Writer) Color() bool { return w.color }

// Out returns the underlying writer.
func (w *Writer) Out() io.Writer { return w.out }

// Warnings returns the number of WARN lines written so far.
func (w *Writer) Warnings() int { return w.warnings }

func (w *Writer) line(style lipgloss.Style, text string) {
	if w.color {
		text = style.Render(text)
	}
	_, _ = fmt.Fprintln(w.out, text)
}

// Header prints a section header at column zero.
func (w *Writer) Header(title string) {
	w.line(w.styles.Header, title)
}

// Println prints an unstyled line.
func (w *Writer) Println(text string) {
	_, _ = fmt.Fprintln(w.out, text)
}

// Printf prints an unstyled formatted line.
func (w *Writer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
}

// OK prints an indented passing status line.
func (w *Writer) OK(msg string) {
	w.line(w.styles.OK, "  "+TagOK+" "+msg)
}

// OKf prints a formatted passing status line.
func (w *Writer) OKf(format string, args ...any) {
	w.OK(fmt.Sprintf(format, args...))
}

// Warn prints an indented warning status line.
func (w *Writer) Warn(msg string) {
	w.warnings++
	w.line(w.styles.Warn, "  "+TagWarn+" "+msg)
}

// Warnf prints a formatted warning status line.
func (w *Writer) Warnf(format string, args ...any) {
	w.Warn(fmt.Sprintf(format, args...))
}

// Hint prints a remediation line aligned under the previous status text.
func (w *Writer) Hint(msg string) {
	w.line(w.styles.Hint, hintIndent+msg)
}

// Hintf prints a formatted remediation line.
func (w *Writer) Hintf(format string, args ...any) {
	w.Hint(fmt.Sprintf(format, args...))
}
