package envupdate

import "errors"

var (
	// ErrNotConsole is wrapped by the PreconditionError New returns outside a
	// console session.
	ErrNotConsole = errors.New("can only be used in a console session")
	// ErrNoPrompter is recorded when a prompt method runs on an Updater built
	// without a prompter.
	ErrNoPrompter = errors.New("no prompter configured")
	// ErrNoEditor is returned by New when the line editor is missing.
	ErrNoEditor = errors.New("no line editor configured")
)

// PreconditionError reports that an Updater was used in a mode it does not
// support.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}
