package parser

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	goccyparser "github.com/goccy/go-yaml/parser"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
)

var jsonPathLog = logger.New("parser:json_path_locator")

// JSONPathLocation is a position in source text corresponding to a JSON
// path.
type JSONPathLocation struct {
	Line   int
	Column int
	Found  bool
}

// JSONPathInfo describes a single schema violation and where it occurred
// in the instance document.
type JSONPathInfo struct {
	Path     string   // JSON path like "/frames/1/name"
	Message  string   // Error message
	Location []string // Instance location from jsonschema (e.g. ["frames", "1"])
}

// ExtractJSONPathFromValidationError flattens a jsonschema validation
// error into the individual violations with their instance paths. A
// violation without causes is reported as itself.
func ExtractJSONPathFromValidationError(err error) []JSONPathInfo {
	validationError, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil
	}
	var paths []JSONPathInfo
	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			paths = append(paths, JSONPathInfo{
				Path:     convertInstanceLocationToJSONPath(ve.InstanceLocation),
				Message:  ve.Error(),
				Location: ve.InstanceLocation,
			})
			return
		}
		for _, cause := range ve.Causes {
			walk(cause)
		}
	}
	walk(validationError)
	return paths
}

func convertInstanceLocationToJSONPath(location []string) string {
	if len(location) == 0 {
		return ""
	}
	return "/" + strings.Join(location, "/")
}

// PathSegment is one step of a JSON path: an object key or an array
// index. Numeric segments keep their raw value so they can also match
// objects keyed by numbers, as the workcell element maps are.
type PathSegment struct {
	Type  string // "key" or "index"
	Value string
	Index int
}

func parseJSONPath(path string) []PathSegment {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	var segments []PathSegment
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if index, err := strconv.Atoi(part); err == nil {
			segments = append(segments, PathSegment{Type: "index", Value: part, Index: index})
		} else {
			segments = append(segments, PathSegment{Type: "key", Value: part})
		}
	}
	return segments
}

// LocateJSONPathInJSON finds the position of a JSON path in JSON source
// by walking the token stream. The reported position is on the line of
// the matching object key or value.
func LocateJSONPathInJSON(source []byte, jsonPath string) JSONPathLocation {
	segments := parseJSONPath(jsonPath)
	if len(segments) == 0 {
		return JSONPathLocation{Line: 1, Column: 1, Found: true}
	}
	jsonPathLog.Printf("locating %s in json source", jsonPath)

	type frame struct {
		object bool
		key    string
		hasKey bool
		index  int
	}
	var stack []frame

	matches := func() bool {
		if len(stack) != len(segments) {
			return false
		}
		for i, fr := range stack {
			seg := segments[i]
			if fr.object {
				if fr.key != seg.Value {
					return false
				}
			} else if seg.Type != "index" || fr.index != seg.Index {
				return false
			}
		}
		return true
	}
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.hasKey = false
		} else {
			top.index++
		}
	}

	dec := json.NewDecoder(bytes.NewReader(source))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				if matches() {
					line, column := offsetToPosition(source, dec.InputOffset())
					return JSONPathLocation{Line: line, Column: column, Found: true}
				}
				stack = append(stack, frame{object: delim == '{'})
			case '}', ']':
				stack = stack[:len(stack)-1]
				valueDone()
			}
			continue
		}
		if len(stack) == 0 {
			continue
		}
		top := &stack[len(stack)-1]
		if top.object && !top.hasKey {
			key, _ := tok.(string)
			top.key = key
			top.hasKey = true
			if matches() {
				line, column := offsetToPosition(source, dec.InputOffset())
				return JSONPathLocation{Line: line, Column: column, Found: true}
			}
			continue
		}
		// Scalar value.
		if matches() {
			line, column := offsetToPosition(source, dec.InputOffset())
			return JSONPathLocation{Line: line, Column: column, Found: true}
		}
		valueDone()
	}
	return JSONPathLocation{Line: 1, Column: 1, Found: false}
}

// LocateJSONPathInYAML finds the position of a JSON path in YAML source
// using the parsed syntax tree, so quoting and nesting styles don't
// matter.
func LocateJSONPathInYAML(source string, jsonPath string) JSONPathLocation {
	segments := parseJSONPath(jsonPath)
	if len(segments) == 0 {
		return JSONPathLocation{Line: 1, Column: 1, Found: true}
	}
	jsonPathLog.Printf("locating %s in yaml source", jsonPath)

	file, err := goccyparser.ParseBytes([]byte(source), 0)
	if err != nil || len(file.Docs) == 0 {
		return JSONPathLocation{Line: 1, Column: 1, Found: false}
	}
	node := file.Docs[0].Body
	var lastKey ast.Node
	for _, segment := range segments {
		next, keyNode := descendYAMLNode(node, segment)
		if next == nil {
			return JSONPathLocation{Line: 1, Column: 1, Found: false}
		}
		node = next
		lastKey = keyNode
	}
	// Report the key position for the final segment when available.
	if lastKey != nil {
		node = lastKey
	}
	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return JSONPathLocation{Line: 1, Column: 1, Found: false}
	}
	return JSONPathLocation{Line: tok.Position.Line, Column: tok.Position.Column, Found: true}
}

// descendYAMLNode resolves one path segment against a YAML node,
// returning the value node and, for mappings, the matching key node.
func descendYAMLNode(node ast.Node, segment PathSegment) (ast.Node, ast.Node) {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, value := range n.Values {
			if yamlKeyEquals(value.Key, segment.Value) {
				return value.Value, value.Key
			}
		}
	case *ast.MappingValueNode:
		if yamlKeyEquals(n.Key, segment.Value) {
			return n.Value, n.Key
		}
	case *ast.SequenceNode:
		if segment.Type == "index" && segment.Index >= 0 && segment.Index < len(n.Values) {
			return n.Values[segment.Index], nil
		}
	}
	return nil, nil
}

func yamlKeyEquals(key ast.Node, want string) bool {
	tok := key.GetToken()
	if tok == nil {
		return false
	}
	return strings.Trim(tok.Value, `"'`) == want
}
