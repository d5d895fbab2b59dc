// Package layout owns the fixed on-disk directory scheme of a library:
//
//	<root>/                      (library root, e.g. ~/Documents/VisualInspiration)
//	  vaults.json                (vault list document)
//	  prefs.toml                 (mutable preferences)
//	  Vaults/
//	    <vaultID>/               (one directory per vault, raw media files)
//	  Backups/
//	    <vaultID>_<id>_<name>    (transient backup copies)
//
// Directories are created lazily and idempotently; the layout never
// deletes anything.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// Layout computes and lazily creates the library directory scheme.
type Layout struct {
	root string
}

// New creates a Layout rooted at the given library directory.
func New(root string) *Layout {
	return &Layout{root: root}
}

// Root returns the library root, creating it if absent.
func (l *Layout) Root() (string, error) {
	return ensureDir(l.root)
}

// VaultsDir returns the directory holding one subdirectory per vault.
func (l *Layout) VaultsDir() (string, error) {
	return ensureDir(filepath.Join(l.root, "Vaults"))
}

// BackupsDir returns the flat directory of transient backup copies.
func (l *Layout) BackupsDir() (string, error) {
	return ensureDir(filepath.Join(l.root, "Backups"))
}

// MetadataPath returns the vault list document path. Pure computation.
func (l *Layout) MetadataPath() string {
	return filepath.Join(l.root, "vaults.json")
}

// PrefsPath returns the preferences document path. Pure computation.
func (l *Layout) PrefsPath() string {
	return filepath.Join(l.root, "prefs.toml")
}

// VaultDir returns the vault's media directory, creating it if absent.
func (l *Layout) VaultDir(vaultID string) (string, error) {
	vaults, err := l.VaultsDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(vaults, vaultID))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return dir, nil
}

// Compile-time check that Layout implements vlib.Layout.
var _ vlib.Layout = (*Layout)(nil)
