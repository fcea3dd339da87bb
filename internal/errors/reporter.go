package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"quartz/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// Error makes a CompilerError usable as a Go error
func (e CompilerError) Error() string {
	if e.Position.Line > 0 {
		return fmt.Sprintf("%s[%s] %d:%d: %s", e.Level, e.Code, e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
}

// List collects every diagnostic of one compilation
type List []CompilerError

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// HasErrors reports whether any diagnostic is at error level
func (l List) HasErrors() bool {
	for _, e := range l {
		if e.Level == Error {
			return true
		}
	}
	return false
}

// Err returns the list as an error, or nil when it holds no errors
func (l List) Err() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}

// ErrorReporter renders diagnostics against the source they point into
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{filename: filename, lines: strings.Split(source, "\n")}
}

var (
	levelColors = map[ErrorLevel]*color.Color{
		Error:   color.New(color.FgRed, color.Bold),
		Warning: color.New(color.FgYellow, color.Bold),
		Note:    color.New(color.FgBlue, color.Bold),
		Help:    color.New(color.FgGreen, color.Bold),
	}
	gutterColor = color.New(color.Faint)
	hintColor   = color.New(color.FgCyan)
)

func levelColor(level ErrorLevel) *color.Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return levelColors[Error]
}

// FormatError renders one diagnostic with the source lines around it
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder
	level := levelColor(err.Level).Sprint(err.Level)
	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", level, err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", level, err.Message)
	}

	line := err.Position.Line
	w := gutterWidth(line)
	pad := strings.Repeat(" ", w)
	bar := gutterColor.Sprint("│")
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", pad, gutterColor.Sprint("-->"), er.filename, line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", pad, bar)

	if text, ok := er.line(line - 1); ok {
		fmt.Fprintf(&b, "%s %s %s\n", gutterColor.Sprintf("%*d", w, line-1), bar, text)
	}
	if text, ok := er.line(line); ok {
		fmt.Fprintf(&b, "%s %s %s\n", color.New(color.Bold).Sprintf("%*d", w, line), bar, text)
		fmt.Fprintf(&b, "%s %s %s\n", pad, bar, marker(err.Position.Column, err.Length, err.Level))
	}
	if text, ok := er.line(line + 1); ok {
		fmt.Fprintf(&b, "%s %s %s\n", gutterColor.Sprintf("%*d", w, line+1), bar, text)
	}

	for i, s := range err.Suggestions {
		if i == 0 {
			fmt.Fprintf(&b, "%s %s\n%s %s: %s\n", pad, bar, pad, hintColor.Sprint("help try"), s.Message)
		} else {
			fmt.Fprintf(&b, "%s          %s\n", pad, s.Message)
		}
		if s.Replacement != "" {
			for _, r := range strings.Split(s.Replacement, "\n") {
				fmt.Fprintf(&b, "%s %s %s\n", pad, hintColor.Sprint("│"), hintColor.Sprint(r))
			}
		}
	}
	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", pad, bar, levelColors[Note].Sprint("note:"), note)
	}
	if err.HelpText != "" {
		fmt.Fprintf(&b, "%s %s %s %s\n", pad, bar, levelColors[Help].Sprint("help:"), err.HelpText)
	}
	b.WriteString("\n")
	return b.String()
}

// FormatAll formats every diagnostic in order
func (er *ErrorReporter) FormatAll(list List) string {
	var b strings.Builder
	for _, err := range list {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}

// line returns the 1-based source line n
func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

// marker underlines length columns starting at column
func marker(column, length int, level ErrorLevel) string {
	return strings.Repeat(" ", max(0, column-1)) + levelColor(level).Sprint(strings.Repeat("^", max(1, length)))
}

// gutterWidth is the width of the line number column, at least 3
func gutterWidth(line int) int {
	return max(3, len(strconv.Itoa(line)))
}
