package parser

import (
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
)

// DocumentKind tells the validator how a workcell document is encoded.
type DocumentKind int

const (
	DocumentJSON DocumentKind = iota
	DocumentYAML
)

// ValidateDocument runs the full validation pipeline over a workcell
// document: syntax, schema, decoding, then hierarchy checks. It returns
// one compiler error per finding, each positioned in the source where a
// position could be derived. An empty slice means the document is valid.
func ValidateDocument(path string, data []byte, kind DocumentKind) []console.CompilerError {
	source := string(data)

	// Syntax first, nothing else is meaningful on top of a parse error.
	jsonData := data
	if kind == DocumentYAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			line, column, message := ExtractYAMLError(err)
			return []console.CompilerError{newDiagnostic(path, source, line, column, message)}
		}
		jsonData = converted
	} else {
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			line, column, message := ExtractJSONError(err, data)
			return []console.CompilerError{newDiagnostic(path, source, line, column, message)}
		}
	}

	// Schema violations, each mapped back to its instance location.
	if err := ValidateWorkcellJSON(jsonData); err != nil {
		var diagnostics []console.CompilerError
		violations := ExtractJSONPathFromValidationError(err)
		if len(violations) == 0 {
			return []console.CompilerError{newDiagnostic(path, source, 0, 0, err.Error())}
		}
		for _, violation := range violations {
			var location JSONPathLocation
			if kind == DocumentYAML {
				location = LocateJSONPathInYAML(source, violation.Path)
			} else {
				location = LocateJSONPathInJSON(data, violation.Path)
			}
			message := violation.Message
			if violation.Path != "" {
				message = violation.Path + ": " + lastErrorLine(violation.Message)
			}
			diagnostics = append(diagnostics, newDiagnostic(path, source, location.Line, location.Column, message))
		}
		return diagnostics
	}

	// The document is schema valid, so decoding failures point at values
	// the schema cannot see, such as mutually exclusive variants.
	doc, err := workcell.FromBytes(jsonData)
	if err != nil {
		return []console.CompilerError{newDiagnostic(path, source, 0, 0, err.Error())}
	}

	var diagnostics []console.CompilerError
	for _, issue := range doc.Validate() {
		diagnostics = append(diagnostics, newDiagnostic(path, source, 0, 0, issue.Error()))
	}

	// Duplicate frame names are legal but break URDF export, where frame
	// names become link names. Surface them as warnings.
	seen := map[string]bool{}
	for _, frame := range doc.Frames {
		name := frame.Bundle.Name
		if seen[name] {
			warning := newDiagnostic(path, source, 0, 0, "duplicate frame name \""+name+"\"")
			warning.Type = "warning"
			diagnostics = append(diagnostics, warning)
		}
		seen[name] = true
	}
	return diagnostics
}

func newDiagnostic(path, source string, line, column int, message string) console.CompilerError {
	return console.CompilerError{
		Position: console.ErrorPosition{File: path, Line: line, Column: column},
		Type:     "error",
		Message:  message,
		Context:  contextLines(source, line),
	}
}

// contextLines returns up to three source lines centered on the error
// line, the window the console error renderer assumes.
func contextLines(source string, line int) []string {
	if line < 1 {
		return nil
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return nil
	}
	if line == 1 {
		return lines[0:1]
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}
	start := line - 2
	if start < 0 {
		start = 0
	}
	return lines[start:end]
}

// lastErrorLine trims a nested jsonschema error down to its final, most
// specific line.
func lastErrorLine(message string) string {
	lines := strings.Split(strings.TrimSpace(message), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	last = strings.TrimPrefix(last, "- ")
	return last
}
