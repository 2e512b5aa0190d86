// Package console describes the terminal envwizard runs in and asks the
// user to confirm writes.
package console

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Session is the console a command runs in. The zero value is not a console
// session; only command-line entry points build one with NewSession.
type Session struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Console marks a command-line invocation. Code embedded elsewhere
	// leaves it false.
	Console bool
	// IsTTY returns true if stdin and stdout are terminals.
	// Tests inject their own.
	IsTTY func() bool
}

// NewSession returns a console session bound to the process stdio.
func NewSession() *Session {
	return &Session{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Console: true,
		IsTTY:   defaultIsTTY,
	}
}

// defaultIsTTY checks if both stdin and stdout are terminals.
func defaultIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// IsConsole reports whether the session is a command-line session.
func (s *Session) IsConsole() bool {
	return s != nil && s.Console
}

// Interactive reports whether a user can answer prompts on a terminal.
func (s *Session) Interactive() bool {
	return s.IsConsole() && s.IsTTY != nil && s.IsTTY()
}
