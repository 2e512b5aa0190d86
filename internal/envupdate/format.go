package envupdate

import "strings"

// quoteTriggers are the substrings that force a value into double quotes.
// `\n` is the two-character escape text, not a newline byte.
var quoteTriggers = []string{" ", "#", "=", "$", `\n`, `"`}

// trimSet matches the characters stripped when checking for surrounding
// whitespace: space, tab, LF, CR, NUL and vertical tab.
const trimSet = " \t\n\r\x00\x0B"

// FormatValue returns value as it should appear after KEY= in an env file.
// Values containing a quote trigger, or starting or ending with whitespace,
// are wrapped in double quotes with inner double quotes escaped. Everything
// else is returned unchanged.
func FormatValue(value string) string {
	for _, trigger := range quoteTriggers {
		if strings.Contains(value, trigger) {
			return quote(value)
		}
	}

	// Reached for tabs, newline bytes, carriage returns, NUL and vertical
	// tabs at either end; a plain space was caught above.
	if strings.Trim(value, trimSet) != value {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// Line renders a complete KEY=VALUE line.
func Line(key, value string) string {
	return key + "=" + FormatValue(value)
}
