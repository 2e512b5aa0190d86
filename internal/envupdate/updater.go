// Package envupdate collects configuration values from prompts and writes
// them into an env file as KEY=VALUE lines.
package envupdate

import (
	"fmt"
	"io"
	"sort"

	"github.com/payram/envwizard/internal/console"
	"github.com/payram/envwizard/internal/logger"
	"github.com/payram/envwizard/internal/prompt"
)

const component = "Updater"

// customChoice is the menu value that switches SelectOne to free text.
const customChoice = "envwizard-custom"

// LineEditor edits the target file in memory and writes it back.
type LineEditor interface {
	// Replace swaps the first line starting with prefix for line, or
	// appends line when nothing matches.
	Replace(prefix, line string)
	// Save persists the buffer.
	Save() error
}

// Prompter asks the user for values.
type Prompter interface {
	Text(label, defaultValue string, required bool) (string, error)
	Select(label string, choices []prompt.Choice, defaultValue string, required bool) (string, error)
}

// Updater accumulates pending changes for one env file and flushes them with
// Save. Prompt methods chain; the first prompt error sticks and is reported
// by Err.
type Updater struct {
	path     string
	editor   LineEditor
	prompter Prompter

	keys   []string
	values map[string]string
	err    error
}

// New returns an Updater for the env file at path. It fails with a
// *PreconditionError when session is not a console session. prompter may be
// nil when only SetChanges/AppendChanges are used.
func New(path string, session *console.Session, editor LineEditor, prompter Prompter) (*Updater, error) {
	if !session.IsConsole() {
		return nil, &PreconditionError{Op: "envupdate.New", Err: ErrNotConsole}
	}
	if editor == nil {
		return nil, &PreconditionError{Op: "envupdate.New", Err: ErrNoEditor}
	}

	return &Updater{
		path:     path,
		editor:   editor,
		prompter: prompter,
		values:   make(map[string]string),
	}, nil
}

// Path returns the env file this Updater writes to.
func (u *Updater) Path() string {
	return u.path
}

// Err returns the first prompt error, if any.
func (u *Updater) Err() error {
	return u.err
}

// Set records value for key, replacing any pending value. A new key goes to
// the end of the pending order; an existing key keeps its place.
func (u *Updater) Set(key, value string) *Updater {
	if _, ok := u.values[key]; !ok {
		u.keys = append(u.keys, key)
	}
	u.values[key] = value
	return u
}

// Text asks for a free-text value and records it under key.
func (u *Updater) Text(key, label, defaultValue string, required bool) *Updater {
	if !u.ready(key) {
		return u
	}

	value, err := u.prompter.Text(label, defaultValue, required)
	if err != nil {
		u.fail(key, err)
		return u
	}
	return u.Set(key, value)
}

// Bool asks a yes/no question and records "true" or "false" under key.
func (u *Updater) Bool(key, label string, defaultValue bool) *Updater {
	if !u.ready(key) {
		return u
	}

	def := "no"
	if defaultValue {
		def = "yes"
	}
	choice, err := u.prompter.Select(label, []prompt.Choice{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}, def, true)
	if err != nil {
		u.fail(key, err)
		return u
	}

	if choice == "yes" {
		return u.Set(key, "true")
	}
	return u.Set(key, "false")
}

// SelectOne shows options and records the chosen value under key.
// defaultValue is offered as an extra option when it is not already one.
// A non-empty customLabel adds a "Custom" entry that asks for free text
// under that label; the typed value is stored as-is.
func (u *Updater) SelectOne(key, label string, options []prompt.Choice, defaultValue string, required bool, customLabel string) *Updater {
	if !u.ready(key) {
		return u
	}

	choices := make([]prompt.Choice, 0, len(options)+2)
	choices = append(choices, options...)
	if defaultValue != "" && !hasChoice(choices, defaultValue) {
		choices = append(choices, prompt.Choice{Value: defaultValue, Label: defaultValue})
	}
	if customLabel != "" {
		choices = append(choices, prompt.Choice{Value: customChoice, Label: "Custom"})
	}

	value, err := u.prompter.Select(label, choices, defaultValue, required)
	if err != nil {
		u.fail(key, err)
		return u
	}

	if value == customChoice {
		value, err = u.prompter.Text(customLabel, defaultValue, required)
		if err != nil {
			u.fail(key, err)
			return u
		}
	}

	return u.Set(key, value)
}

// SetChanges replaces all pending changes with changes.
func (u *Updater) SetChanges(changes map[string]string) *Updater {
	u.keys = nil
	u.values = make(map[string]string, len(changes))
	return u.AppendChanges(changes)
}

// AppendChanges merges changes into the pending set; colliding keys take the
// new value. Keys not yet pending are added in sorted order.
func (u *Updater) AppendChanges(changes map[string]string) *Updater {
	keys := make([]string, 0, len(changes))
	for key := range changes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		u.Set(key, changes[key])
	}
	return u
}

// Changes returns a copy of the pending changes.
func (u *Updater) Changes() map[string]string {
	out := make(map[string]string, len(u.values))
	for k, v := range u.values {
		out[k] = v
	}
	return out
}

// Keys returns the pending keys in the order they will be written.
func (u *Updater) Keys() []string {
	out := make([]string, len(u.keys))
	copy(out, u.keys)
	return out
}

// Len returns the number of pending changes.
func (u *Updater) Len() int {
	return len(u.keys)
}

// DumpChanges writes the pending changes to w as the lines Save would write.
func (u *Updater) DumpChanges(w io.Writer) *Updater {
	for _, key := range u.keys {
		fmt.Fprintln(w, Line(key, u.values[key]))
	}
	return u
}

// ClearChanges drops all pending changes and any recorded prompt error.
func (u *Updater) ClearChanges() *Updater {
	u.keys = nil
	u.values = make(map[string]string)
	u.err = nil
	return u
}

// Apply hands every pending change to the line editor without persisting.
func (u *Updater) Apply() {
	for _, key := range u.keys {
		u.editor.Replace(key+"=", Line(key, u.values[key]))
	}
}

// Save applies the pending changes and persists the file. It returns false
// when a prompt failed earlier or the file could not be written; lines
// already replaced in memory are not rolled back. Pending changes are cleared
// after a successful write.
func (u *Updater) Save() bool {
	if u.err != nil {
		logger.Error(component, "Save", fmt.Errorf("refusing to write %s: %w", u.path, u.err))
		return false
	}

	u.Apply()

	if err := u.editor.Save(); err != nil {
		logger.Error(component, "Save", fmt.Errorf("failed to write %s: %w", u.path, err))
		return false
	}

	logger.Infof(component, "Save", "wrote %d change(s) to %s", len(u.keys), u.path)
	u.keys = nil
	u.values = make(map[string]string)
	return true
}

// ready reports whether a prompt for key may run.
func (u *Updater) ready(key string) bool {
	if u.err != nil {
		logger.Debugf(component, "prompt", "skipping %s after earlier error", key)
		return false
	}
	if u.prompter == nil {
		u.fail(key, ErrNoPrompter)
		return false
	}
	return true
}

func (u *Updater) fail(key string, err error) {
	u.err = fmt.Errorf("prompt for %s: %w", key, err)
}

func hasChoice(choices []prompt.Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
