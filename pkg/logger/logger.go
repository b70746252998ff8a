// Package logger provides namespaced debug loggers gated by the DEBUG
// environment variable, in the style of the npm debug package.
//
// Loggers are created with a namespace like "cli:convert" and only emit
// output when the DEBUG variable matches that namespace. Patterns are
// comma or space separated, support '*' wildcards, and a leading '-'
// excludes a pattern:
//
//	DEBUG=*                  enable everything
//	DEBUG=workcell:*         enable one package
//	DEBUG=cli:*,parser:*     enable several
//	DEBUG=*,-parser:schema   enable everything except one logger
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes debug messages for a single namespace to stderr.
type Logger struct {
	namespace string
	enabled   bool

	mu   sync.Mutex
	last time.Time
}

// New creates a logger for the given namespace. The DEBUG variable is
// consulted at creation time.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   matches(os.Getenv("DEBUG"), namespace),
	}
}

// Enabled reports whether this logger's namespace is selected by DEBUG.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message when the logger is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print logs its arguments, concatenated like fmt.Sprint, when the logger
// is enabled.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

func (l *Logger) emit(message string) {
	l.mu.Lock()
	now := time.Now()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, elapsed)
}

func matches(debug, namespace string) bool {
	if debug == "" {
		return false
	}
	var enabled bool
	for _, pattern := range strings.FieldsFunc(debug, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if negated := strings.TrimPrefix(pattern, "-"); negated != pattern {
			if matchPattern(negated, namespace) {
				return false
			}
		} else if matchPattern(pattern, namespace) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern matches namespace against a pattern where '*' matches any
// run of characters, including the empty run.
func matchPattern(pattern, namespace string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == namespace
	}
	if !strings.HasPrefix(namespace, parts[0]) {
		return false
	}
	namespace = namespace[len(parts[0]):]
	for i := 1; i < len(parts)-1; i++ {
		idx := strings.Index(namespace, parts[i])
		if idx < 0 {
			return false
		}
		namespace = namespace[idx+len(parts[i]):]
	}
	return strings.HasSuffix(namespace, parts[len(parts)-1])
}
