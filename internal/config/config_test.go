package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var configKeys = []string{
	"ENVWIZARD_FILE",
	"ENVWIZARD_FILE_MODE",
	"ENVWIZARD_PLAIN",
	"ENVWIZARD_BACKUP",
	"ENVWIZARD_BACKUP_DIR",
	"ENVWIZARD_BACKUP_RETENTION",
}

// clearEnv empties every setting and restores it when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "envwizard.env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TargetFile != ".env" {
		t.Errorf("expected default target .env, got %s", cfg.TargetFile)
	}
	if cfg.FileMode != 0600 {
		t.Errorf("expected default mode 0600, got %o", cfg.FileMode)
	}
	if cfg.Plain {
		t.Error("expected plain prompts to be off by default")
	}
	if !cfg.Backup.Enabled {
		t.Error("expected backups to be enabled by default")
	}
	if cfg.Backup.Dir != ".envwizard/backups" {
		t.Errorf("expected default backup dir, got %s", cfg.Backup.Dir)
	}
	if cfg.Backup.Retention != 5 {
		t.Errorf("expected default retention 5, got %d", cfg.Backup.Retention)
	}
}

func TestLoad_FilePrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVWIZARD_BACKUP_RETENTION", "9")

	local := writeSettings(t, "ENVWIZARD_FILE=.env.local\n")
	system := writeSettings(t, "ENVWIZARD_FILE=/etc/app/.env\nENVWIZARD_BACKUP_DIR=/var/backups/envwizard\nENVWIZARD_BACKUP_RETENTION=2\n")

	cfg, err := LoadFrom(local, system)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TargetFile != ".env.local" {
		t.Errorf("expected local file to win over system file, got %s", cfg.TargetFile)
	}
	if cfg.Backup.Dir != "/var/backups/envwizard" {
		t.Errorf("expected system file to fill unset values, got %s", cfg.Backup.Dir)
	}
	if cfg.Backup.Retention != 9 {
		t.Errorf("expected environment to win over files, got %d", cfg.Backup.Retention)
	}
}

func TestLoad_ParsesTypes(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVWIZARD_PLAIN", "YES")
	t.Setenv("ENVWIZARD_BACKUP", "false")
	t.Setenv("ENVWIZARD_FILE_MODE", "0640")
	t.Setenv("ENVWIZARD_BACKUP_RETENTION", "not-a-number")

	cfg, err := LoadFrom()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Plain {
		t.Error("expected plain prompts")
	}
	if cfg.Backup.Enabled {
		t.Error("expected backups to be disabled")
	}
	if cfg.FileMode != 0640 {
		t.Errorf("expected mode 0640, got %o", cfg.FileMode)
	}
	if cfg.Backup.Retention != DefaultBackupRetention {
		t.Errorf("expected invalid retention to fall back to default, got %d", cfg.Backup.Retention)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "bad file mode",
			env:    map[string]string{"ENVWIZARD_FILE_MODE": "rw-r--r--"},
			errMsg: "ENVWIZARD_FILE_MODE must be an octal file mode",
		},
		{
			name:   "file mode out of range",
			env:    map[string]string{"ENVWIZARD_FILE_MODE": "7777"},
			errMsg: "ENVWIZARD_FILE_MODE must be an octal file mode",
		},
		{
			name:   "zero retention",
			env:    map[string]string{"ENVWIZARD_BACKUP_RETENTION": "0"},
			errMsg: "ENVWIZARD_BACKUP_RETENTION must be at least 1, got 0",
		},
		{
			name:   "blank target",
			env:    map[string]string{"ENVWIZARD_FILE": "   "},
			errMsg: "ENVWIZARD_FILE must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFrom()
			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestLoad_RetentionIgnoredWhenBackupsDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVWIZARD_BACKUP", "no")
	t.Setenv("ENVWIZARD_BACKUP_RETENTION", "0")

	if _, err := LoadFrom(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidSettingsFile(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, "NOT A SETTING\n")

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed settings file")
	}
}
