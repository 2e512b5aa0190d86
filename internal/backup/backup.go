// Package backup keeps timestamped copies of env files taken before writes.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const timestampLayout = "20060102-150405"

// maxSequence bounds the suffixes tried for backups taken in the same second.
const maxSequence = 999

// Item describes one backup file found on disk.
type Item struct {
	File      string    // Full path
	Filename  string    // Basename
	Source    string    // Basename of the env file it was taken from
	CreatedAt time.Time // Parsed from the filename, zero if unparseable
	Seq       int       // Suffix of a backup taken in the same second as another
	SizeBytes int64
}

// Logger defines the interface for logging.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Config holds backup configuration.
type Config struct {
	Dir       string
	Retention int
}

// Manager creates, lists and prunes env file backups.
type Manager struct {
	Config Config
	Logger Logger
	// Now is the clock used for backup names. Tests replace it.
	Now func() time.Time
}

// NewManager creates a new backup manager.
func NewManager(cfg Config, logger Logger) *Manager {
	return &Manager{
		Config: cfg,
		Logger: logger,
		Now:    time.Now,
	}
}

// PathFor returns the backup path a Create call at the current time would use.
func (m *Manager) PathFor(source string) string {
	timestamp := m.Now().UTC().Format(timestampLayout)
	return filepath.Join(m.Config.Dir, fmt.Sprintf("%s-backup-%s", filepath.Base(source), timestamp))
}

// Create copies source into the backup directory and returns the new path.
// It returns "" and no error when source does not exist yet.
func (m *Manager) Create(source string) (string, error) {
	return m.CreateAt(source, m.PathFor(source))
}

// CreateAt is Create with the backup path chosen up front, usually by an
// earlier PathFor call. When path is taken, "-1", "-2", ... is appended
// until a free name is found.
func (m *Manager) CreateAt(source, path string) (string, error) {
	in, err := os.Open(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", source, err)
	}

	if err := os.MkdirAll(m.Config.Dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	out, backupPath, err := createUnique(path, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}

	m.Logger.Printf("Backup created: %s", backupPath)
	return backupPath, nil
}

// List returns the backups of the env file named source (a basename or a
// path), newest first.
func (m *Manager) List(source string) ([]Item, error) {
	base := filepath.Base(source)
	prefix := base + "-backup-"

	entries, err := os.ReadDir(m.Config.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		fullPath := filepath.Join(m.Config.Dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			m.Logger.Printf("Warning: failed to stat backup %s: %v", entry.Name(), err)
			continue
		}

		createdAt, seq := parseName(strings.TrimPrefix(entry.Name(), prefix))
		items = append(items, Item{
			File:      fullPath,
			Filename:  entry.Name(),
			Source:    base,
			CreatedAt: createdAt,
			Seq:       seq,
			SizeBytes: info.Size(),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].CreatedAt, items[j].CreatedAt
		if !ti.IsZero() && !tj.IsZero() {
			if ti.Equal(tj) {
				return items[i].Seq > items[j].Seq
			}
			return ti.After(tj)
		}
		// Fallback: lexicographic by filename (descending)
		return items[i].Filename > items[j].Filename
	})

	return items, nil
}

// Prune removes all but the newest retention backups of source and returns
// the removed items.
func (m *Manager) Prune(source string, retention int) ([]Item, error) {
	if retention < 1 {
		return nil, fmt.Errorf("retention must be at least 1")
	}

	items, err := m.List(source)
	if err != nil {
		return nil, err
	}

	if len(items) <= retention {
		return nil, nil
	}

	var pruned []Item
	for _, item := range items[retention:] {
		if err := os.Remove(item.File); err != nil && !os.IsNotExist(err) {
			m.Logger.Printf("Warning: failed to remove backup file %s: %v", item.File, err)
			continue
		}
		m.Logger.Printf("Pruned backup: %s", item.Filename)
		pruned = append(pruned, item)
	}

	return pruned, nil
}

func createUnique(path string, perm os.FileMode) (*os.File, string, error) {
	candidate := path
	for seq := 1; ; seq++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err == nil {
			return f, candidate, nil
		}
		if !os.IsExist(err) || seq > maxSequence {
			return nil, "", err
		}
		candidate = fmt.Sprintf("%s-%d", path, seq)
	}
}

// parseName splits the part of a backup name after "-backup-" into its
// timestamp and collision sequence. Unparseable names give a zero time.
func parseName(s string) (time.Time, int) {
	seq := 0
	if len(s) > len(timestampLayout) && s[len(timestampLayout)] == '-' {
		n, err := strconv.Atoi(s[len(timestampLayout)+1:])
		if err != nil || n < 1 {
			return time.Time{}, 0
		}
		seq = n
		s = s[:len(timestampLayout)]
	}
	return parseTimestamp(s), seq
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
