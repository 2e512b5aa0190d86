package console

import (
	"bufio"
	"fmt"
	"strings"
)

// ConfirmResult represents the result of a confirmation prompt.
type ConfirmResult int

const (
	// ConfirmYes means the user confirmed.
	ConfirmYes ConfirmResult = iota
	// ConfirmNo means the user declined.
	ConfirmNo
	// ConfirmNonInteractive means there is no terminal and --yes was not set.
	ConfirmNonInteractive
)

// ChangeSummary is what the confirmation box shows before a write.
type ChangeSummary struct {
	File       string
	Keys       []string
	NewFile    bool
	BackupPath string
}

// Confirmer handles interactive confirmation prompts.
type Confirmer struct {
	Session *Session
}

// NewConfirmer creates a Confirmer on the given session.
func NewConfirmer(s *Session) *Confirmer {
	return &Confirmer{Session: s}
}

// Confirm asks the user to approve writing summary.
// Returns ConfirmYes if confirmed, ConfirmNo if declined, or
// ConfirmNonInteractive if there is no terminal and yesFlag is false.
func (c *Confirmer) Confirm(summary *ChangeSummary, yesFlag bool) ConfirmResult {
	if yesFlag {
		return ConfirmYes
	}

	if !c.Session.Interactive() {
		return ConfirmNonInteractive
	}

	c.printSummary(summary)

	fmt.Fprint(c.Session.Stdout, "Write changes? (y/N): ")

	reader := bufio.NewReader(c.Session.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(c.Session.Stdout)
		return ConfirmNo
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "y" || input == "yes" {
		return ConfirmYes
	}

	return ConfirmNo
}

const boxWidth = 62

func (c *Confirmer) printSummary(summary *ChangeSummary) {
	out := c.Session.Stdout
	rule := strings.Repeat("═", boxWidth)
	row := func(label, value string) {
		fmt.Fprintf(out, "║  %-12s %-*s  ║\n", label, boxWidth-17, truncate(value, boxWidth-17))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "╔%s╗\n", rule)
	fmt.Fprintf(out, "║%s║\n", center("PENDING CHANGES", boxWidth))
	fmt.Fprintf(out, "╠%s╣\n", rule)
	row("File:", summary.File)
	if summary.NewFile {
		row("", "(will be created)")
	}
	row("Changes:", fmt.Sprintf("%d", len(summary.Keys)))
	for _, key := range summary.Keys {
		row("", "• "+key)
	}
	if summary.BackupPath != "" {
		row("Backup:", summary.BackupPath)
	}
	fmt.Fprintf(out, "╚%s╝\n", rule)
	fmt.Fprintln(out)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func center(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
