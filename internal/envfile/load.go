// Package envfile reads and edits line-oriented KEY=VALUE environment files.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads an environment file and returns its assignments.
// It supports KEY=value, KEY="value", KEY='value' and an optional leading
// "export ". Lines starting with # and blank lines are ignored.
// A missing file yields an empty map.
func Load(path string) (map[string]string, error) {
	values := make(map[string]string)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid line %d: missing '=' separator", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("invalid line %d: empty key", lineNum)
		}
		values[key] = Unquote(strings.TrimSpace(parts[1]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	return values, nil
}

// Unquote strips one level of surrounding quotes from a stored value.
// Double-quoted values also have their \" escapes undone.
func Unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	switch {
	case first == '"' && last == '"':
		return strings.ReplaceAll(value[1:len(value)-1], `\"`, `"`)
	case first == '\'' && last == '\'':
		return value[1 : len(value)-1]
	}
	return value
}

// Apply exports values into the process environment.
// Variables that are already set keep their value.
func Apply(values map[string]string) {
	for key, value := range values {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
