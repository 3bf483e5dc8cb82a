package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured pipeline error
type CompilerError struct {
	Level     ErrorLevel
	Code      string   // Error code like E0701
	Message   string   // Primary error message
	Pass      string   // Pass that raised the error
	Function  string   // Function being translated
	Construct string   // Rendering of the offending node
	Notes     []string // Additional context notes
	HelpText  string   // Help text for the error
}

func (e *CompilerError) Error() string {
	var b strings.Builder

	if e.Pass != "" {
		b.WriteString(e.Pass)
		b.WriteString(": ")
	}

	if e.Function != "" {
		fmt.Fprintf(&b, "function %s: ", e.Function)
	}

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Construct != "" {
		fmt.Fprintf(&b, ": %s", e.Construct)
	}

	return b.String()
}

// ErrorReporter formats pipeline errors for the terminal
type ErrorReporter struct {
	program string
}

// NewErrorReporter creates a new error reporter for a named program
func NewErrorReporter(program string) *ErrorReporter {
	return &ErrorReporter{program: program}
}

// FormatError formats a compiler error with Rust-like styling
func (er *ErrorReporter) FormatError(err *CompilerError) string {
	var result strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0701]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			paint(err.Level, string(err.Level), color.Bold), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			paint(err.Level, string(err.Level), color.Bold), err.Message))
	}

	indent := "   "

	// Location line: --> program:function (pass)
	location := er.program
	if err.Function != "" {
		location += ":" + err.Function
	}
	if err.Pass != "" {
		location += fmt.Sprintf(" (%s)", err.Pass)
	}
	result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("-->"), location))

	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("="), GetErrorDescription(err.Code)))
	}

	if err.Construct != "" {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		for _, line := range strings.Split(err.Construct, "\n") {
			result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), bold(line)))
		}
	}

	for _, note := range err.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), paint(Note, "note:"), note))
	}

	if err.HelpText != "" {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), paint(Help, "help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// levelColors maps a level to its foreground; unknown levels print as errors
var levelColors = map[ErrorLevel]color.Attribute{
	Error:   color.FgRed,
	Warning: color.FgYellow,
	Note:    color.FgBlue,
	Help:    color.FgGreen,
}

func paint(level ErrorLevel, s string, attrs ...color.Attribute) string {
	fg, ok := levelColors[level]
	if !ok {
		fg = color.FgRed
	}
	return color.New(append([]color.Attribute{fg}, attrs...)...).Sprint(s)
}
