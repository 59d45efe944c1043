package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Sprint functions for the diagnostic layout. They honor the package
// global color.NoColor flag, so the gates below switch every formatted
// diagnostic at once.
var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	boldText   = color.New(color.Bold).SprintFunc()
	hintText   = color.New(color.FgCyan).SprintFunc()
	dimText    = color.New(color.FgHiBlack).SprintFunc()
	markText   = color.New(color.FgRed).SprintFunc()
)

// DisableColors disables color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// AutoColors enables color output exactly when f is a terminal.
// Commands call this with the stream their diagnostics go to.
func AutoColors(f *os.File) {
	color.NoColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// Format returns a formatted error message for terminal display.
func (e *EaselError) Format() string {
	var b strings.Builder

	// Header line
	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(errorLabel("ERROR "))
		b.WriteString(boldText(e.Code + ": "))
		b.WriteString(e.Message)
	} else {
		b.WriteString(errorLabel("ERROR: "))
		b.WriteString(e.Message)
	}
	b.WriteString("\n\n")

	// Location
	if e.Location != nil {
		b.WriteString("  ")
		b.WriteString(hintText(e.Location.String()))
		b.WriteString("\n\n")

		// Context with line numbers and arrow
		if len(e.Context) > 0 {
			startLine := e.Location.Line - len(e.Context)/2
			for i, line := range e.Context {
				lineNum := startLine + i
				if lineNum == e.Location.Line {
					// Highlighted line with arrow
					b.WriteString("  ")
					b.WriteString(markText("→ "))
					b.WriteString(fmt.Sprintf("%4d", lineNum))
					b.WriteString(dimText(" │ "))
					b.WriteString(line)
					b.WriteString("\n")

					// Column indicator
					if e.Location.Column > 0 {
						b.WriteString("       ")
						b.WriteString(dimText("│ "))
						b.WriteString(strings.Repeat(" ", e.Location.Column-1))
						b.WriteString(markText("^"))
						b.WriteString("\n")
					}
				} else {
					// Normal line
					b.WriteString("    ")
					b.WriteString(fmt.Sprintf("%4d", lineNum))
					b.WriteString(dimText(" │ "))
					b.WriteString(line)
					b.WriteString("\n")
				}
			}
			b.WriteString("\n")
		}
	}

	// Detail
	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Suggestion
	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(hintText("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *EaselError) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	return b.String()
}

// FormatJSON returns the error as a JSON object.
func (e *EaselError) FormatJSON() string {
	wire := struct {
		Code       string    `json:"code,omitempty"`
		Category   Category  `json:"category"`
		Message    string    `json:"message"`
		Detail     string    `json:"detail,omitempty"`
		Location   *Location `json:"location,omitempty"`
		Suggestion string    `json:"suggestion,omitempty"`
	}{e.Code, e.Category, e.Message, e.Detail, e.Location, e.Suggestion}
	data, err := json.Marshal(wire)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// MarshalJSON makes the wire form of Location lower-cased and stable.
func (l *Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		File   string `json:"file"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}{l.File, l.Line, l.Column})
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 > width {
			if current.Len() > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	if ee, ok := err.(*EaselError); ok {
		fmt.Fprint(os.Stderr, ee.Format())
	} else {
		fmt.Fprintf(os.Stderr, "\n%s %s\n", errorLabel("ERROR:"), err.Error())
	}
}
