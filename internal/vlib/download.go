package vlib

import (
	"fmt"
	"os"
	"path/filepath"
)

// DownloadOne copies a single asset to destPath. Existing destinations are
// skipped rather than overwritten. Returns whether a copy happened.
func (s *Service) DownloadOne(a Asset, destPath string) (bool, error) {
	if _, err := os.Stat(destPath); err == nil {
		s.logger.Debug("download skipped, destination exists", "path", destPath)
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return false, fmt.Errorf("creating destination directory: %w", err)
	}
	if err := copyFile(a.FilePath, destPath); err != nil {
		return false, fmt.Errorf("downloading %s: %w", a.Filename, err)
	}
	return true, nil
}

// DownloadAll copies every asset in the vault into destDir, skipping files
// that already exist there. Failures are counted and the batch continues;
// the destination is remembered as the sticky download directory.
func (s *Service) DownloadAll(vaultID, destDir string) (DownloadSummary, error) {
	var sum DownloadSummary

	if _, err := s.registry.Get(vaultID); err != nil {
		return sum, err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return sum, fmt.Errorf("creating destination directory: %w", err)
	}

	for _, a := range s.loader.List(vaultID) {
		dest := filepath.Join(destDir, a.Filename)
		if _, err := os.Stat(dest); err == nil {
			sum.Skipped++
			continue
		}
		if err := copyFile(a.FilePath, dest); err != nil {
			sum.Failed++
			s.logger.Warn("download failed", "file", a.Filename, "error", err)
			continue
		}
		sum.Copied++
	}

	if err := s.prefs.SetDownloadDir(destDir); err != nil {
		s.logger.Warn("persisting download directory", "error", err)
	}
	s.logger.Info("download complete", "vault", vaultID, "copied", sum.Copied, "skipped", sum.Skipped, "failed", sum.Failed)
	return sum, nil
}
