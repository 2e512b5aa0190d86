// Package config loads envwizard's own settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/payram/envwizard/internal/envfile"
)

const (
	// SystemFile is the lowest-priority settings file.
	SystemFile = "/etc/envwizard/envwizard.env"
	// LocalFile is read from the working directory.
	LocalFile = "envwizard.env"

	DefaultTargetFile      = ".env"
	DefaultBackupDir       = ".envwizard/backups"
	DefaultBackupRetention = 5
	DefaultFileMode        = os.FileMode(0600)
)

// Config holds envwizard settings. Command-line flags override these.
type Config struct {
	TargetFile string
	FileMode   os.FileMode
	Plain      bool
	Backup     BackupConfig
}

// BackupConfig controls the copies taken before each write.
type BackupConfig struct {
	Enabled   bool
	Dir       string
	Retention int
}

// Load reads configuration with the following precedence order:
//  1. OS environment variables (highest priority)
//  2. envwizard.env in the current working directory (if present)
//  3. /etc/envwizard/envwizard.env (if present)
//  4. Default values (lowest priority)
func Load() (*Config, error) {
	return LoadFrom(LocalFile, SystemFile)
}

// LoadFrom is Load with explicit settings files, highest priority first.
// Missing files are skipped.
func LoadFrom(files ...string) (*Config, error) {
	// Values already in the environment win, so applying files in priority
	// order lets each file fill only what is still unset.
	for _, path := range files {
		values, err := envfile.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		envfile.Apply(values)
	}

	mode, err := getEnvFileMode("ENVWIZARD_FILE_MODE", DefaultFileMode)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TargetFile: getEnvString("ENVWIZARD_FILE", DefaultTargetFile),
		FileMode:   mode,
		Plain:      getEnvBool("ENVWIZARD_PLAIN", false),
		Backup: BackupConfig{
			Enabled:   getEnvBool("ENVWIZARD_BACKUP", true),
			Dir:       getEnvString("ENVWIZARD_BACKUP_DIR", DefaultBackupDir),
			Retention: getEnvInt("ENVWIZARD_BACKUP_RETENTION", DefaultBackupRetention),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no sensible fallback.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TargetFile) == "" {
		return fmt.Errorf("ENVWIZARD_FILE must not be empty")
	}
	if c.Backup.Enabled {
		if c.Backup.Dir == "" {
			return fmt.Errorf("ENVWIZARD_BACKUP_DIR is required when backups are enabled")
		}
		if c.Backup.Retention < 1 {
			return fmt.Errorf("ENVWIZARD_BACKUP_RETENTION must be at least 1, got %d", c.Backup.Retention)
		}
	}
	return nil
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an integer or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvBool returns the environment variable as a boolean or a default.
// Accepts "true", "1", "yes" as true and "false", "0", "no" as false
// (case-insensitive); anything else keeps the default.
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

// getEnvFileMode parses an octal permission such as 0640.
func getEnvFileMode(key string, defaultValue os.FileMode) (os.FileMode, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(valueStr, 8, 32)
	if err != nil || value > 0777 {
		return 0, fmt.Errorf("%s must be an octal file mode like 0600, got %q", key, valueStr)
	}
	return os.FileMode(value), nil
}
