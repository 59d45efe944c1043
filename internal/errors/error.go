package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryHydration  Category = "hydration"
	CategoryProtocol   Category = "protocol"
	CategoryValidation Category = "validation"
	CategoryCLI        Category = "cli"
)

// Location represents a position in a page or payload file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// EaselError is a structured diagnostic for a contract violation
// between a page, its hydration payload and the runtime.
type EaselError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (hydration, protocol, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where in the checked file the error was found.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *EaselError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *EaselError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location to the error and, when the file
// is readable, the lines around it.
func (e *EaselError) WithLocation(file string, line, column int) *EaselError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *EaselError) WithSuggestion(s string) *EaselError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *EaselError) WithDetail(d string) *EaselError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *EaselError) WithContext(lines []string) *EaselError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *EaselError) Wrap(err error) *EaselError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an EaselError from a registered error code.
func New(code string) *EaselError {
	template, ok := registry[code]
	if !ok {
		return &EaselError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &EaselError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new EaselError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *EaselError {
	return &EaselError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an EaselError.
func FromError(err error, code string) *EaselError {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EaselError); ok {
		return ee
	}
	return New(code).Wrap(err)
}
