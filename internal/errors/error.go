package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/vango-dev/sprig/pkg/render"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryVNode   Category = "vnode"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
	CategoryPublish Category = "publish"
)

// Location represents a source location.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
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

// SprigError is a coded error with an optional location and fix suggestion.
type SprigError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	Location *Location

	// Context contains the lines around Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SprigError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SprigError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *SprigError) WithLocation(file string, line, column int) *SprigError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, contextLines)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SprigError) WithSuggestion(s string) *SprigError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SprigError) WithDetail(d string) *SprigError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SprigError) Wrap(err error) *SprigError {
	e.Wrapped = err
	return e
}

// contextLines is how many lines around a location are shown.
const contextLines = 5

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

// New creates a SprigError from a registered error code.
func New(code string) *SprigError {
	template, ok := registry[code]
	if !ok {
		return &SprigError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SprigError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *SprigError {
	return &SprigError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError converts err into a SprigError. Errors that already are one
// are returned unchanged, known runtime errors get their own code, and
// anything else gets code.
func FromError(err error, code string) *SprigError {
	if err == nil {
		return nil
	}
	var se *SprigError
	if stderrors.As(err, &se) {
		return se
	}
	var propErr *vdom.InvalidPropError
	if stderrors.As(err, &propErr) {
		return New("E101").Wrap(err)
	}
	var nodeErr *vdom.InvalidVnodeError
	if stderrors.As(err, &nodeErr) {
		return New("E100").Wrap(err)
	}
	var compErr *render.ComponentError
	if stderrors.As(err, &compErr) {
		return New("E102").Wrap(err)
	}
	return New(code).Wrap(err)
}
