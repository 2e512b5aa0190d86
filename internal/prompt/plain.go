package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Plain asks questions one line at a time. It works on dumb terminals and
// with piped input, where promptui cannot draw.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain returns a line-based prompter reading from in and writing to out.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

// Text asks for a value. Empty input takes defaultValue; a required question
// is asked again until it has a non-empty answer.
func (p *Plain) Text(label, defaultValue string, required bool) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(p.out, "%s (default: %s): ", label, defaultValue)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}

		input, err := p.readLine()
		if err != nil {
			return "", err
		}
		if input == "" {
			input = defaultValue
		}
		if input == "" && required {
			fmt.Fprintln(p.out, "A value is required.")
			continue
		}
		return input, nil
	}
}

// Select lists numbered choices and accepts either a number or a choice
// value. Empty input takes defaultValue when it is listed.
func (p *Plain) Select(label string, choices []Choice, defaultValue string, required bool) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	def := defaultIndex(choices, defaultValue)

	fmt.Fprintln(p.out, label)
	for i, c := range choices {
		marker := ""
		if i == def {
			marker = " [default]"
		}
		fmt.Fprintf(p.out, "  %d) %s%s\n", i+1, c.Display(), marker)
	}

	for {
		if def >= 0 {
			fmt.Fprintf(p.out, "Select [1-%d] (default: %d): ", len(choices), def+1)
		} else {
			fmt.Fprintf(p.out, "Select [1-%d]: ", len(choices))
		}

		input, err := p.readLine()
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		if input == "" {
			if def >= 0 {
				return choices[def].Value, nil
			}
			if !required {
				return "", nil
			}
			fmt.Fprintln(p.out, "Please choose one of the listed options.")
			continue
		}

		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1].Value, nil
		}
		for _, c := range choices {
			if input == c.Value || strings.EqualFold(input, c.Label) {
				return c.Value, nil
			}
		}
		fmt.Fprintln(p.out, "Please choose one of the listed options.")
	}
}

// readLine returns the next line without its line ending. A final line
// without a newline is still returned; only an empty read at EOF aborts.
func (p *Plain) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if line == "" {
			fmt.Fprintln(p.out)
			if err == io.EOF {
				return "", ErrAborted
			}
			return "", fmt.Errorf("%w: %v", ErrAborted, err)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
