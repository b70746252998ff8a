package parser

import (
	"encoding/json"
	"errors"
)

// ExtractJSONError extracts line and column information from an
// encoding/json error given the source it was produced from. Syntax and
// type errors carry a byte offset which is mapped onto the source text;
// other errors yield a zero position.
func ExtractJSONError(err error, source []byte) (line int, column int, message string) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, column = offsetToPosition(source, syntaxErr.Offset)
		return line, column, syntaxErr.Error()
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, column = offsetToPosition(source, typeErr.Offset)
		return line, column, typeErr.Error()
	}
	return 0, 0, err.Error()
}

// offsetToPosition converts a byte offset into 1-based line and column
// numbers. The offset points just past the offending byte.
func offsetToPosition(source []byte, offset int64) (line int, column int) {
	if offset < 1 || offset > int64(len(source)) {
		return 0, 0
	}
	line, column = 1, 1
	for _, b := range source[:offset-1] {
		if b == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
