package wizard

import (
	"github.com/payram/envwizard/internal/envupdate"
	"github.com/payram/envwizard/internal/logger"
)

// Run asks every step of def through u. A value in current (usually the
// target file's present contents) replaces the step's default. It stops at
// the first prompt error.
func Run(def *Definition, u *envupdate.Updater, current map[string]string) error {
	for _, step := range def.Steps {
		defaultValue := step.Default
		if value, ok := current[step.Key]; ok {
			defaultValue = value
		}

		switch step.Type {
		case StepBool:
			b, _ := parseBool(defaultValue)
			u.Bool(step.Key, step.Prompt(), b)
		case StepSelect:
			u.SelectOne(step.Key, step.Prompt(), step.Choices(), defaultValue, step.IsRequired(), step.CustomLabel)
		default:
			u.Text(step.Key, step.Prompt(), defaultValue, step.IsRequired())
		}

		if err := u.Err(); err != nil {
			return err
		}
		logger.Debugf("Wizard", "Run", "answered %s", step.Key)
	}
	return nil
}
