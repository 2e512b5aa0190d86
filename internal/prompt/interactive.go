package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

const maxVisibleChoices = 10

var errValueRequired = errors.New("a value is required")

// Interactive draws prompts with promptui. It needs a real terminal.
type Interactive struct {
	// Stdin and Stdout default to the process streams when nil.
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewInteractive returns a promptui-backed prompter on the process stdio.
func NewInteractive() *Interactive {
	return &Interactive{}
}

// Text asks for a free-text value, pre-filled with defaultValue.
func (p *Interactive) Text(label, defaultValue string, required bool) (string, error) {
	pr := promptui.Prompt{
		Label:     label,
		Default:   defaultValue,
		AllowEdit: true,
		Stdin:     p.Stdin,
		Stdout:    p.Stdout,
	}
	if required {
		pr.Validate = requireValue
	}

	value, err := pr.Run()
	if err != nil {
		return "", translate(err)
	}
	return value, nil
}

// Select shows a menu and returns the Value of the picked choice. The cursor
// starts on defaultValue when it is one of the choices.
func (p *Interactive) Select(label string, choices []Choice, defaultValue string, required bool) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	items := make([]string, len(choices))
	for i, c := range choices {
		items[i] = c.Display()
	}

	size := len(items)
	if size > maxVisibleChoices {
		size = maxVisibleChoices
	}

	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   size,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}

	cursor := defaultIndex(choices, defaultValue)
	if cursor < 0 {
		cursor = 0
	}
	scroll := 0
	if cursor >= size {
		scroll = cursor - size + 1
	}

	idx, _, err := sel.RunCursorAt(cursor, scroll)
	if err != nil {
		return "", translate(err)
	}
	return choices[idx].Value, nil
}

func requireValue(input string) error {
	if strings.TrimSpace(input) == "" {
		return errValueRequired
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, promptui.ErrInterrupt),
		errors.Is(err, promptui.ErrEOF),
		errors.Is(err, promptui.ErrAbort):
		return fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return fmt.Errorf("prompt failed: %w", err)
}
