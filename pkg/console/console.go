// Package console formats user-facing CLI output: status messages with
// icon prefixes, compiler-style diagnostics with source context, tables,
// and trees. Everything here renders to a string; callers decide whether
// it goes to stdout or stderr.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luca-della-vedova/rmf-workcell/pkg/styles"
)

// ErrorPosition identifies a location in a source file.
type ErrorPosition struct {
	File   string
	Line   int
	Column int
}

// CompilerError is a diagnostic tied to a position in a source document,
// rendered in the familiar file:line:col compiler format.
type CompilerError struct {
	Position ErrorPosition
	Type     string // "error" or "warning"
	Message  string
	Context  []string // Source lines surrounding the error, centered on it
	Hint     string
}

// FormatError renders a CompilerError as
//
//	file:line:col: type: message
//	  2 | ...
//	  3 | ...
//
// with the context lines numbered around the error position.
func FormatError(err CompilerError) string {
	var b strings.Builder

	typeStyle := styles.ErrorStyle
	if err.Type == "warning" {
		typeStyle = styles.WarningStyle
	}

	position := fmt.Sprintf("%s:%d:%d:", ToRelativePath(err.Position.File), err.Position.Line, err.Position.Column)
	b.WriteString(styles.BoldStyle.Render(position))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(err.Type + ":"))
	b.WriteString(" ")
	b.WriteString(err.Message)
	b.WriteString("\n")

	if len(err.Context) > 0 {
		// Context lines are centered on the error line.
		startLine := err.Position.Line - len(err.Context)/2
		if startLine < 1 {
			startLine = 1
		}
		for i, line := range err.Context {
			lineNum := startLine + i
			gutter := fmt.Sprintf("%4d | ", lineNum)
			b.WriteString(styles.MutedStyle.Render(gutter))
			b.WriteString(line)
			b.WriteString("\n")
			if lineNum == err.Position.Line && err.Position.Column > 0 {
				marker := strings.Repeat(" ", len(gutter)+err.Position.Column-1) + "^"
				b.WriteString(typeStyle.Render(marker))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// FormatErrorMessage renders a one-line error with a ✗ prefix.
func FormatErrorMessage(message string) string {
	return styles.ErrorStyle.Render("✗") + " " + message
}

// FormatErrorWithSuggestions renders an error followed by a bulleted
// suggestion list when suggestions are present.
func FormatErrorWithSuggestions(message string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(FormatErrorMessage(message))
	if len(suggestions) > 0 {
		b.WriteString("\n\nSuggestions:\n")
		for _, suggestion := range suggestions {
			b.WriteString("  • ")
			b.WriteString(suggestion)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatSuccessMessage renders a one-line success message with a ✓ prefix.
func FormatSuccessMessage(message string) string {
	return styles.SuccessStyle.Render("✓") + " " + message
}

// FormatWarningMessage renders a one-line warning with a ⚠ prefix.
func FormatWarningMessage(message string) string {
	return styles.WarningStyle.Render("⚠") + " " + message
}

// FormatInfoMessage renders a one-line informational message with an ℹ prefix.
func FormatInfoMessage(message string) string {
	return styles.InfoStyle.Render("ℹ") + " " + message
}

// FormatLocationMessage renders a message that points at a filesystem
// location.
func FormatLocationMessage(message string) string {
	return "📁 " + message
}

// FormatCommandMessage renders a shell command the user is being asked to
// run.
func FormatCommandMessage(message string) string {
	return styles.BoldStyle.Render(message)
}

// FormatVerboseMessage renders low-priority detail output.
func FormatVerboseMessage(message string) string {
	return styles.MutedStyle.Render(message)
}

// ToRelativePath converts an absolute path to one relative to the current
// working directory when possible. Relative paths pass through unchanged.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// IsAccessibleMode reports whether accessible (screen-reader friendly)
// prompting should be used, following the ACCESSIBLE convention.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}
