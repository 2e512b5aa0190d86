package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMode is used for env files that do not exist yet.
const DefaultMode os.FileMode = 0600

// Editor holds an env file as a slice of lines and writes it back in one go.
type Editor struct {
	// Mode applies when the file is created. Existing files keep their mode.
	Mode os.FileMode

	path     string
	lines    []string
	eol      string
	original string
	exists   bool
}

// Open reads path into an Editor. A missing file gives an empty buffer; the
// file is created by Save.
func Open(path string) (*Editor, error) {
	e := &Editor{Mode: DefaultMode, path: path, eol: "\n"}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return e, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	e.exists = true
	e.original = string(data)
	if strings.Contains(e.original, "\r\n") {
		e.eol = "\r\n"
	}
	// Mixed endings are split on LF; the buffer is written back with eol.
	if e.original != "" {
		e.lines = strings.Split(strings.TrimSuffix(e.original, "\n"), "\n")
		for i, line := range e.lines {
			e.lines[i] = strings.TrimSuffix(line, "\r")
		}
	}
	return e, nil
}

// Path returns the file the editor writes to.
func (e *Editor) Path() string {
	return e.path
}

// Exists reports whether the file was present when it was opened or last saved.
func (e *Editor) Exists() bool {
	return e.exists
}

// Lines returns a copy of the current buffer.
func (e *Editor) Lines() []string {
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Original returns the file content as it was read by Open.
func (e *Editor) Original() string {
	return e.original
}

// String renders the buffer the way Save would write it.
func (e *Editor) String() string {
	if len(e.lines) == 0 {
		return ""
	}
	return strings.Join(e.lines, e.eol) + e.eol
}

// Replace swaps the first line starting with prefix for line, or appends
// line when no line matches.
func (e *Editor) Replace(prefix, line string) {
	for i, existing := range e.lines {
		if strings.HasPrefix(existing, prefix) {
			e.lines[i] = line
			return
		}
	}
	e.lines = append(e.lines, line)
}

// Save writes the buffer back to disk atomically.
func (e *Editor) Save() error {
	mode := e.Mode
	if mode == 0 {
		mode = DefaultMode
	}
	if info, err := os.Stat(e.path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat env file: %w", err)
	}

	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create env file directory: %w", err)
	}

	content := e.String()
	if err := atomicWrite(e.path, []byte(content), mode); err != nil {
		return err
	}

	e.exists = true
	e.original = content
	return nil
}

// atomicWrite writes data to a temporary file next to path and renames it
// into place.
func atomicWrite(path string, data []byte, mode os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".envwizard-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
