// Package wizard loads question scripts and runs them against an Updater.
package wizard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/payram/envwizard/internal/prompt"
)

// StepType selects how a step asks for its value.
type StepType string

const (
	StepText   StepType = "text"
	StepBool   StepType = "bool"
	StepSelect StepType = "select"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Definition is a wizard script.
type Definition struct {
	Name string `yaml:"name"`
	// Requires is a version constraint on envwizard itself, e.g. ">= 1.2".
	Requires string `yaml:"requires"`
	// File is the env file the script targets when none is given.
	File  string `yaml:"file"`
	Steps []Step `yaml:"steps"`
}

// Step is one question.
type Step struct {
	Key         string   `yaml:"key"`
	Type        StepType `yaml:"type"`
	Label       string   `yaml:"label"`
	Default     string   `yaml:"default"`
	Required    *bool    `yaml:"required"`
	Options     []Option `yaml:"options"`
	CustomLabel string   `yaml:"custom_label"`
}

// Option is a select entry. In YAML it is either a bare value or a
// {value, label} mapping.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// UnmarshalYAML accepts the bare-scalar shorthand.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Value = node.Value
		return nil
	}
	type plain Option
	return node.Decode((*plain)(o))
}

// IsRequired defaults to true.
func (s Step) IsRequired() bool {
	return s.Required == nil || *s.Required
}

// Prompt returns the label shown to the user, falling back to the key.
func (s Step) Prompt() string {
	if s.Label == "" {
		return s.Key
	}
	return s.Label
}

// Choices converts the options for the prompt package.
func (s Step) Choices() []prompt.Choice {
	choices := make([]prompt.Choice, len(s.Options))
	for i, o := range s.Options {
		choices[i] = prompt.Choice{Value: o.Value, Label: o.Label}
	}
	return choices
}

// Load reads and validates a wizard script from path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wizard: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a wizard script. Unknown fields are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse wizard: %w", err)
	}
	for i := range def.Steps {
		if def.Steps[i].Type == "" {
			def.Steps[i].Type = StepText
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ValidKey reports whether key is usable as an env variable name.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Validate checks the script for mistakes that would only show up halfway
// through a run.
func (d *Definition) Validate() error {
	if len(d.Steps) == 0 {
		return errors.New("wizard has no steps")
	}

	seen := make(map[string]bool, len(d.Steps))
	for i, step := range d.Steps {
		where := fmt.Sprintf("step %d", i+1)
		if step.Key != "" {
			where = fmt.Sprintf("step %d (%s)", i+1, step.Key)
		}

		if !ValidKey(step.Key) {
			return fmt.Errorf("%s: invalid key %q", where, step.Key)
		}
		if seen[step.Key] {
			return fmt.Errorf("%s: duplicate key", where)
		}
		seen[step.Key] = true

		switch step.Type {
		case StepText:
		case StepBool:
			if step.Default != "" {
				if _, ok := parseBool(step.Default); !ok {
					return fmt.Errorf("%s: default %q is not a boolean", where, step.Default)
				}
			}
		case StepSelect:
			if len(step.Options) == 0 && step.CustomLabel == "" {
				return fmt.Errorf("%s: select needs options or custom_label", where)
			}
			for _, o := range step.Options {
				if o.Value == "" {
					return fmt.Errorf("%s: option with empty value", where)
				}
			}
		default:
			return fmt.Errorf("%s: unknown type %q", where, step.Type)
		}
	}
	return nil
}

// parseBool reads the boolean spellings found in env files.
func parseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off", "":
		return false, true
	}
	return false, false
}
