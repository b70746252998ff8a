package parser

import (
	"fmt"
	"strings"

	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
)

var yamlErrorLog = logger.New("parser:yaml_error")

// ExtractYAMLError extracts line and column information from a YAML
// parsing error so it can be rendered as a source diagnostic. Both values
// are zero when the error carries no usable location.
func ExtractYAMLError(err error) (line int, column int, message string) {
	errStr := err.Error()

	// goccy/go-yaml reports locations as "[line:column] message".
	line, column, message = extractFromGoccyFormat(errStr)
	if line > 0 || column > 0 {
		yamlErrorLog.Printf("extracted goccy error location: line=%d, column=%d", line, column)
		return line, column, message
	}

	// Fall back to the "yaml: line X: message" convention other YAML
	// libraries use.
	if strings.Contains(errStr, "yaml: line ") {
		rest := strings.SplitN(errStr, "yaml: line ", 2)[1]
		if colon := strings.Index(rest, ":"); colon > 0 {
			if _, parseErr := fmt.Sscanf(rest[:colon], "%d", &line); parseErr == nil {
				return line, 0, strings.TrimSpace(rest[colon+1:])
			}
		}
	}

	return 0, 0, errStr
}

func extractFromGoccyFormat(errStr string) (line int, column int, message string) {
	start := strings.Index(errStr, "[")
	end := strings.Index(errStr, "]")
	if start < 0 || end <= start {
		return 0, 0, ""
	}
	location := errStr[start+1 : end]
	parts := strings.Split(location, ":")
	if len(parts) != 2 {
		return 0, 0, ""
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &line); err != nil {
		return 0, 0, ""
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &column); err != nil {
		return 0, 0, ""
	}
	return line, column, strings.TrimSpace(errStr[end+1:])
}
