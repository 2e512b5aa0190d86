package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// ErrIncompatible is returned when a script requires another envwizard version.
var ErrIncompatible = errors.New("wizard requires a different envwizard version")

// NormalizeVersion trims whitespace and a leading "v" prefix.
func NormalizeVersion(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "v")
	return value
}

// IsDevBuild reports whether current carries no release version.
func IsDevBuild(current string) bool {
	current = NormalizeVersion(current)
	return current == "" || current == "dev"
}

// CheckVersion verifies that current satisfies constraint. An empty
// constraint always passes, and development builds skip the check.
func CheckVersion(constraint, current string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || IsDevBuild(current) {
		return nil
	}

	c, err := version.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := version.NewVersion(NormalizeVersion(current))
	if err != nil {
		return fmt.Errorf("invalid current version %q: %w", current, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("%w: needs %s, running %s", ErrIncompatible, constraint, v)
	}
	return nil
}
