package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

var colorEnabled = true

// DisableColors turns off ANSI escapes in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { colorEnabled = true }

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error for a terminal: a header, the source excerpt
// with a caret under the column, then detail, cause and hint.
func (e *SprigError) Format() string {
	var b strings.Builder

	title := "ERROR: "
	if e.Code != "" {
		title = "ERROR " + e.Code + ": "
	}
	fmt.Fprintf(&b, "\n%s%s\n\n", paint(title, ansiBold, ansiRed), paint(e.Message, ansiBold))

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
		e.writeExcerpt(&b)
	}

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Cause: ", ansiGray), paint(e.Wrapped.Error(), ansiYellow))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiCyan), e.Suggestion)
	}
	return b.String()
}

func (e *SprigError) writeExcerpt(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}
	bar := paint(" │ ", ansiGray)
	first := max(e.Location.Line-contextLines/2, 1)
	for i, text := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, text)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", paint("→ ", ansiRed), n, bar, text)
		if e.Location.Column > 0 {
			pad := strings.Repeat(" ", e.Location.Column-1)
			fmt.Fprintf(b, "       %s%s%s\n", paint("│ ", ansiGray), pad, paint("^", ansiRed))
		}
	}
	b.WriteString("\n")
}

// FormatCompact returns the error on one line, prefixed with its location
// and followed by its cause.
func (e *SprigError) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	return strings.Join(parts, ": ")
}

type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Cause      string    `json:"cause,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// FormatJSON returns the error as a JSON object, for tooling.
func (e *SprigError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes, splitting on
// whitespace. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := []string{words[0]}
	for _, w := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(w) > width {
			lines = append(lines, w)
			continue
		}
		*last += " " + w
	}
	return lines
}

// FprintError writes err to w, formatted when it is a SprigError.
func FprintError(w io.Writer, err error) {
	var se *SprigError
	if stderrors.As(err, &se) {
		fmt.Fprint(w, se.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", ansiBold, ansiRed), err)
}

// PrintError writes err to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}
