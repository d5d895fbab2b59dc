// Package prefs persists the small mutable preferences document that
// lives beside the vault list: the last-opened vault, the sticky
// "don't ask again" confirmation flags, and the remembered download
// directory. The flags are named struct fields, not string-keyed lookups.
package prefs

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// document is the on-disk TOML shape of prefs.toml.
type document struct {
	CurrentVaultID    string `toml:"current_vault_id"`
	SkipEmptyConfirm  bool   `toml:"skip_empty_confirm"`
	SkipDeleteConfirm bool   `toml:"skip_delete_confirm"`
	DownloadDir       string `toml:"download_dir"`
}

// Store implements vlib.Preferences over a TOML file, overwritten whole
// on every change.
type Store struct {
	path   string
	logger vlib.Logger
	doc    document
}

// NewStore creates a Store for the given file path and loads it. A missing
// file yields defaults; a decode failure is logged and the document
// starts over from defaults.
func NewStore(path string, logger vlib.Logger) *Store {
	s := &Store{path: path, logger: logger}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("reading preferences", "path", path, "error", err)
		}
		return s
	}
	if err := toml.Unmarshal(data, &s.doc); err != nil {
		logger.Warn("preferences unreadable, using defaults", "path", path, "error", err)
		s.doc = document{}
	}
	return s
}

func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s.doc); err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	return nil
}

func (s *Store) CurrentVaultID() string { return s.doc.CurrentVaultID }

func (s *Store) SetCurrentVaultID(id string) error {
	s.doc.CurrentVaultID = id
	return s.save()
}

func (s *Store) Confirmations() vlib.Confirmations {
	return vlib.Confirmations{
		SkipEmpty:  s.doc.SkipEmptyConfirm,
		SkipDelete: s.doc.SkipDeleteConfirm,
	}
}

func (s *Store) SetSkipEmptyConfirm(skip bool) error {
	s.doc.SkipEmptyConfirm = skip
	return s.save()
}

func (s *Store) SetSkipDeleteConfirm(skip bool) error {
	s.doc.SkipDeleteConfirm = skip
	return s.save()
}

func (s *Store) DownloadDir() string { return s.doc.DownloadDir }

func (s *Store) SetDownloadDir(dir string) error {
	s.doc.DownloadDir = dir
	return s.save()
}

// Compile-time check that Store implements vlib.Preferences.
var _ vlib.Preferences = (*Store)(nil)
