// Package util contains small helpers shared by the CLI commands.
package util

import (
	"os"

	"golang.org/x/term"
)

// Interactive reports whether stdout is attached to a terminal. Interactive
// runs get progress warnings that would be noise in scripts or service
// units.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
