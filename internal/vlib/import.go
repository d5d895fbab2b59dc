package vlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImportFile copies the file at srcPath into the current vault and returns
// the new asset. This is the entry point for the drag-and-drop collaborator
// when it hands over a file URL.
func (s *Service) ImportFile(srcPath string) (*Asset, error) {
	cur, err := s.registry.Current()
	if err != nil {
		return nil, err
	}
	dir, err := s.layout.VaultDir(cur.ID)
	if err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}

	dest := s.uniqueDest(dir, filepath.Base(srcPath))
	if err := copyFile(srcPath, dest); err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(srcPath), err)
	}
	return s.recordImport(cur.ID, dest), nil
}

// ImportBytes writes raw dropped/pasted data into the current vault under a
// generated filename with the suggested extension.
func (s *Service) ImportBytes(data []byte, ext string) (*Asset, error) {
	cur, err := s.registry.Current()
	if err != nil {
		return nil, err
	}
	dir, err := s.layout.VaultDir(cur.ID)
	if err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := "pasted-" + ShortID(s.idgen.New()) + strings.ToLower(ext)
	dest := filepath.Join(dir, name)
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return nil, fmt.Errorf("writing pasted data: %w", err)
	}
	return s.recordImport(cur.ID, dest), nil
}

// recordImport bumps the vault count, persists, reloads the active
// listing, and builds the Asset for the caller.
func (s *Service) recordImport(vaultID, destPath string) *Asset {
	s.registry.AdjustCount(vaultID, 1)
	if err := s.registry.Save(); err != nil {
		s.logger.Warn("persisting vault list", "error", err)
	}
	s.refreshIfCurrent(vaultID)
	s.logger.Info("asset imported", "file", filepath.Base(destPath), "vault", vaultID)
	return &Asset{
		ID:       s.idgen.New(),
		Filename: filepath.Base(destPath),
		FilePath: destPath,
		VaultID:  vaultID,
	}
}

// uniqueDest returns a destination path inside dir for the given filename,
// inserting a short id before the extension when the name is taken.
// Filenames are drop-time names and rarely collide, but an import must
// never overwrite an existing asset.
func (s *Service) uniqueDest(dir, filename string) string {
	dest := filepath.Join(dir, filename)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", stem, ShortID(s.idgen.New()), ext))
}
