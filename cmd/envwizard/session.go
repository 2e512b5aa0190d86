package main

import (
	"errors"
	"fmt"

	"github.com/payram/envwizard/internal/backup"
	"github.com/payram/envwizard/internal/console"
	"github.com/payram/envwizard/internal/envfile"
	"github.com/payram/envwizard/internal/envupdate"
	"github.com/payram/envwizard/internal/logger"
	"github.com/payram/envwizard/internal/preview"
	"github.com/payram/envwizard/internal/prompt"
)

var errNonInteractive = errors.New("refusing to write without confirmation in non-interactive mode; re-run with --yes")

// editSession is one open env file plus the Updater collecting changes for it.
type editSession struct {
	path    string
	editor  *envfile.Editor
	updater *envupdate.Updater
}

// targetFile picks the env file: --file, then fallback, then config.
func (a *app) targetFile(fallback string) string {
	if a.opts.file != "" {
		return a.opts.file
	}
	if fallback != "" {
		return fallback
	}
	return a.cfg.TargetFile
}

// prompter returns menus on a terminal and line prompts everywhere else.
func (a *app) prompter() envupdate.Prompter {
	if a.cfg.Plain || !a.session.Interactive() {
		return prompt.NewPlain(a.session.Stdin, a.session.Stdout)
	}
	return prompt.NewInteractive()
}

func (a *app) backupManager() *backup.Manager {
	return backup.NewManager(backup.Config{
		Dir:       a.cfg.Backup.Dir,
		Retention: a.cfg.Backup.Retention,
	}, logger.StdLogger())
}

// open reads path and builds an Updater for it.
func (a *app) open(path string, withPrompts bool) (*editSession, error) {
	editor, err := envfile.Open(path)
	if err != nil {
		return nil, err
	}
	editor.Mode = a.cfg.FileMode

	var p envupdate.Prompter
	if withPrompts {
		p = a.prompter()
	}
	u, err := envupdate.New(path, a.session, editor, p)
	if err != nil {
		return nil, err
	}

	return &editSession{path: path, editor: editor, updater: u}, nil
}

// commit previews, confirms, backs up and writes the pending changes.
func (a *app) commit(s *editSession) error {
	out := a.session.Stdout

	if s.updater.Len() == 0 {
		fmt.Fprintln(out, "No changes.")
		return nil
	}

	keys := s.updater.Keys()
	s.updater.Apply()
	diff := preview.Diff(s.editor.Original(), s.editor.String())

	if a.opts.dryRun {
		if diff == "" {
			fmt.Fprintf(out, "%s is already up to date.\n", s.path)
			return nil
		}
		fmt.Fprintf(out, "Changes to %s (dry run, nothing written):\n%s", s.path, diff)
		return nil
	}

	if diff == "" {
		fmt.Fprintf(out, "%s is already up to date.\n", s.path)
		s.updater.ClearChanges()
		return nil
	}

	var mgr *backup.Manager
	backupPath := ""
	if a.cfg.Backup.Enabled && s.editor.Exists() {
		mgr = a.backupManager()
		backupPath = mgr.PathFor(s.path)
	}

	if !a.opts.yes && a.session.Interactive() {
		fmt.Fprint(out, diff)
	}
	summary := &console.ChangeSummary{
		File:       s.path,
		Keys:       keys,
		NewFile:    !s.editor.Exists(),
		BackupPath: backupPath,
	}
	switch console.NewConfirmer(a.session).Confirm(summary, a.opts.yes) {
	case console.ConfirmNo:
		fmt.Fprintln(out, "Aborted by user.")
		return nil
	case console.ConfirmNonInteractive:
		return &exitError{code: 2, err: errNonInteractive}
	}

	if mgr != nil {
		created, err := mgr.CreateAt(s.path, backupPath)
		if err != nil {
			return fmt.Errorf("backup failed, nothing written: %w", err)
		}
		if _, err := mgr.Prune(s.path, a.cfg.Backup.Retention); err != nil {
			logger.Warnf("envwizard", "commit", "failed to prune backups: %v", err)
		}
		if created != "" {
			fmt.Fprintf(out, "Backup saved to %s\n", created)
		}
	}

	if !s.updater.Save() {
		return fmt.Errorf("failed to write %s", s.path)
	}

	fmt.Fprintf(out, "Updated %s (%d change(s)).\n", s.path, len(keys))
	return nil
}
