package console

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// stdoutIsTTY reports whether stdout is attached to a terminal.
func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func writeStderr(s string) {
	fmt.Fprint(os.Stderr, s)
}

// ClearScreen clears the terminal and homes the cursor. No-op when stdout
// is not a TTY.
func ClearScreen() {
	if !stdoutIsTTY() {
		return
	}
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
