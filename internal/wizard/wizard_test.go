package wizard

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/payram/envwizard/internal/console"
	"github.com/payram/envwizard/internal/envfile"
	"github.com/payram/envwizard/internal/envupdate"
	"github.com/payram/envwizard/internal/logger"
	"github.com/payram/envwizard/internal/prompt"
)

func init() {
	logger.SetOutput(io.Discard)
}

const sampleWizard = `
name: Application setup
requires: ">= 1.0"
file: .env
steps:
  - key: APP_NAME
    label: Application name
    default: Acme
  - key: APP_DEBUG
    type: bool
    label: Enable debug mode?
    default: false
  - key: DB_CONNECTION
    type: select
    label: Database driver
    options:
      - value: mysql
        label: MySQL
      - pgsql
    default: mysql
    custom_label: Driver name
  - key: APP_SUFFIX
    required: false
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(sampleWizard))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if def.Name != "Application setup" || def.Requires != ">= 1.0" || def.File != ".env" {
		t.Errorf("unexpected header %+v", def)
	}
	if len(def.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(def.Steps))
	}

	if def.Steps[0].Type != StepText {
		t.Errorf("expected missing type to default to text, got %q", def.Steps[0].Type)
	}
	if !def.Steps[0].IsRequired() {
		t.Error("expected steps to be required by default")
	}
	if def.Steps[3].IsRequired() {
		t.Error("expected APP_SUFFIX to be optional")
	}
	if def.Steps[3].Prompt() != "APP_SUFFIX" {
		t.Errorf("expected label to fall back to key, got %q", def.Steps[3].Prompt())
	}
	if def.Steps[1].Default != "false" {
		t.Errorf("expected bool default to be kept as text, got %q", def.Steps[1].Default)
	}

	want := []prompt.Choice{{Value: "mysql", Label: "MySQL"}, {Value: "pgsql"}}
	if got := def.Steps[2].Choices(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected choices %v, got %v", want, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{name: "no steps", yaml: "name: x\n", errMsg: "wizard has no steps"},
		{name: "bad key", yaml: "steps:\n  - key: 1ABC\n", errMsg: `invalid key "1ABC"`},
		{name: "missing key", yaml: "steps:\n  - label: Name\n", errMsg: `invalid key ""`},
		{name: "duplicate key", yaml: "steps:\n  - key: A\n  - key: A\n", errMsg: "duplicate key"},
		{name: "unknown type", yaml: "steps:\n  - key: A\n    type: number\n", errMsg: `unknown type "number"`},
		{name: "select without options", yaml: "steps:\n  - key: A\n    type: select\n", errMsg: "select needs options"},
		{name: "empty option", yaml: "steps:\n  - key: A\n    type: select\n    options: ['']\n", errMsg: "option with empty value"},
		{name: "bad bool default", yaml: "steps:\n  - key: A\n    type: bool\n    default: maybe\n", errMsg: "not a boolean"},
		{name: "unknown field", yaml: "steps:\n  - key: A\n    colour: red\n", errMsg: "failed to parse wizard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.yaml")
	if err := os.WriteFile(path, []byte(sampleWizard), 0644); err != nil {
		t.Fatal(err)
	}

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(def.Steps) != 4 {
		t.Errorf("expected 4 steps, got %d", len(def.Steps))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing wizard file")
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		constraint string
		current    string
		wantErr    bool
		incompat   bool
	}{
		{constraint: "", current: "1.0.0"},
		{constraint: ">= 1.0", current: "dev"},
		{constraint: ">= 1.0", current: ""},
		{constraint: ">= 1.0", current: "v1.2.3"},
		{constraint: ">= 1.0, < 2.0", current: "1.9.9"},
		{constraint: ">= 2.0", current: "1.2.3", wantErr: true, incompat: true},
		{constraint: "~> 1.2", current: "1.3.0", wantErr: false},
		{constraint: "not a constraint", current: "1.0.0", wantErr: true},
		{constraint: ">= 1.0", current: "banana", wantErr: true},
	}

	for _, tt := range tests {
		err := CheckVersion(tt.constraint, tt.current)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckVersion(%q, %q) error = %v, wantErr %v", tt.constraint, tt.current, err, tt.wantErr)
			continue
		}
		if tt.incompat && !errors.Is(err, ErrIncompatible) {
			t.Errorf("CheckVersion(%q, %q) expected ErrIncompatible, got %v", tt.constraint, tt.current, err)
		}
	}
}

func TestNormalizeVersion(t *testing.T) {
	if got := NormalizeVersion("  v1.2.3 "); got != "1.2.3" {
		t.Errorf("expected 1.2.3, got %q", got)
	}
}

func newUpdater(t *testing.T, input string) (*envupdate.Updater, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	editor, err := envfile.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	session := &console.Session{Console: true, IsTTY: func() bool { return false }}
	u, err := envupdate.New(path, session, editor, prompt.NewPlain(strings.NewReader(input), &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return u, path
}

func TestRun_AcceptsDefaults(t *testing.T) {
	def, err := Parse([]byte(sampleWizard))
	if err != nil {
		t.Fatal(err)
	}
	u, _ := newUpdater(t, "\n\n\n\n")

	if err := Run(def, u, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := map[string]string{
		"APP_NAME":      "Acme",
		"APP_DEBUG":     "false",
		"DB_CONNECTION": "mysql",
		"APP_SUFFIX":    "",
	}
	if got := u.Changes(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := u.Keys(); !reflect.DeepEqual(got, []string{"APP_NAME", "APP_DEBUG", "DB_CONNECTION", "APP_SUFFIX"}) {
		t.Errorf("expected step order, got %v", got)
	}
}

func TestRun_CurrentValuesBecomeDefaults(t *testing.T) {
	def, err := Parse([]byte(sampleWizard))
	if err != nil {
		t.Fatal(err)
	}
	u, _ := newUpdater(t, "\n\n\n\n")

	current := map[string]string{
		"APP_NAME":      "Existing App",
		"APP_DEBUG":     "true",
		"DB_CONNECTION": "sqlite",
	}
	if err := Run(def, u, current); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := u.Changes()
	if got["APP_NAME"] != "Existing App" || got["APP_DEBUG"] != "true" || got["DB_CONNECTION"] != "sqlite" {
		t.Errorf("expected current values to be kept, got %v", got)
	}
}

func TestRun_CustomSelectAndSave(t *testing.T) {
	def, err := Parse([]byte(sampleWizard))
	if err != nil {
		t.Fatal(err)
	}
	// Menu for DB_CONNECTION is: 1) MySQL 2) pgsql 3) Custom.
	u, path := newUpdater(t, "My App\nyes\n3\nsql server\n\n")

	if err := Run(def, u, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !u.Save() {
		t.Fatal("expected save to succeed")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "APP_NAME=\"My App\"\nAPP_DEBUG=true\nDB_CONNECTION=\"sql server\"\nAPP_SUFFIX=\n"
	if string(data) != want {
		t.Errorf("unexpected file content %q, want %q", data, want)
	}
}

func TestRun_StopsOnAbort(t *testing.T) {
	def, err := Parse([]byte(sampleWizard))
	if err != nil {
		t.Fatal(err)
	}
	u, _ := newUpdater(t, "only one answer\n")

	err = Run(def, u, nil)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if got := u.Keys(); !reflect.DeepEqual(got, []string{"APP_NAME"}) {
		t.Errorf("expected only the answered step, got %v", got)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "1", "on"} {
		if v, ok := parseBool(s); !ok || !v {
			t.Errorf("parseBool(%q) = %v, %v", s, v, ok)
		}
	}
	for _, s := range []string{"false", "no", "0", "off", ""} {
		if v, ok := parseBool(s); !ok || v {
			t.Errorf("parseBool(%q) = %v, %v", s, v, ok)
		}
	}
	if _, ok := parseBool("maybe"); ok {
		t.Error("expected maybe to be rejected")
	}
}
