package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/layout"
)

// NewTestLayout creates a Layout rooted in a fresh temp directory.
func NewTestLayout(t *testing.T) *layout.Layout {
	t.Helper()
	return layout.New(t.TempDir())
}

// SeedFile writes content into dir under name and returns the full path.
func SeedFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("seeding %s: %v", name, err)
	}
	return path
}

// SeedVaultFiles writes one file per name into the vault's directory and
// returns the directory path.
func SeedVaultFiles(t *testing.T, lay *layout.Layout, vaultID string, names ...string) string {
	t.Helper()
	dir, err := lay.VaultDir(vaultID)
	if err != nil {
		t.Fatalf("creating vault dir: %v", err)
	}
	for _, name := range names {
		SeedFile(t, dir, name, []byte("content of "+name))
	}
	return dir
}
