// Package prompt renders the questions envwizard asks on the terminal.
package prompt

import "errors"

// ErrAborted is returned when the user interrupts a prompt or input ends.
var ErrAborted = errors.New("prompt aborted")

// ErrNoChoices is returned by Select when there is nothing to pick from.
var ErrNoChoices = errors.New("no choices to select from")

// Choice is one entry of a selection menu.
type Choice struct {
	Value string
	Label string
}

// Display returns the text shown for the choice.
func (c Choice) Display() string {
	if c.Label == "" {
		return c.Value
	}
	return c.Label
}

func defaultIndex(choices []Choice, defaultValue string) int {
	for i, c := range choices {
		if c.Value == defaultValue {
			return i
		}
	}
	return -1
}
