package vlib

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DeleteAsset backs up a single asset and removes the original file.
// The original is never removed unless the backup copy succeeded.
func (s *Service) DeleteAsset(a Asset) error {
	if _, err := s.backups.BackupBeforeDelete(a); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrAssetNotFound, a.Filename)
		}
		return fmt.Errorf("backing up %s: %w", a.Filename, err)
	}
	if err := os.Remove(a.FilePath); err != nil {
		return fmt.Errorf("deleting %s: %w", a.Filename, err)
	}
	s.registry.AdjustCount(a.VaultID, -1)
	if err := s.registry.Save(); err != nil {
		s.logger.Warn("persisting vault list", "error", err)
	}
	s.refreshIfCurrent(a.VaultID)
	s.logger.Info("asset deleted", "file", a.Filename, "vault", a.VaultID)
	return nil
}

// EmptyVault backs up and deletes every asset in the vault. The batch
// stops on the first failure: already-processed files remain deleted with
// their backups, and nothing is rolled back. The cached count is
// re-derived from the directory afterward.
func (s *Service) EmptyVault(vaultID string) error {
	v, err := s.registry.Get(vaultID)
	if err != nil {
		return err
	}
	if !s.prefs.Confirmations().SkipEmpty {
		d := s.confirm.ConfirmEmpty(v)
		if d.DontAskAgain {
			if err := s.prefs.SetSkipEmptyConfirm(true); err != nil {
				s.logger.Warn("persisting confirmation preference", "error", err)
			}
		}
		if !d.Accepted {
			return ErrCancelled
		}
	}

	var failed error
	deleted := 0
	for _, a := range s.loader.List(vaultID) {
		if _, err := s.backups.BackupBeforeDelete(a); err != nil {
			failed = fmt.Errorf("backing up %s: %w", a.Filename, err)
			break
		}
		if err := os.Remove(a.FilePath); err != nil {
			failed = fmt.Errorf("deleting %s: %w", a.Filename, err)
			break
		}
		deleted++
	}

	s.registry.SetCount(vaultID, len(s.loader.List(vaultID)))
	if err := s.registry.Save(); err != nil {
		s.logger.Warn("persisting vault list", "error", err)
	}
	s.refreshIfCurrent(vaultID)

	if failed != nil {
		s.logger.Error("empty vault stopped early", "vault", vaultID, "deleted", deleted, "error", failed)
		return failed
	}
	s.logger.Info("vault emptied", "vault", vaultID, "deleted", deleted)
	return nil
}

// DeleteVault backs up every asset, removes the vault directory, and drops
// the vault from the registry. If any backup copy fails the whole deletion
// is aborted before anything is removed. The registry is never left empty:
// deleting the last vault bootstraps a fresh default vault.
func (s *Service) DeleteVault(vaultID string) error {
	v, err := s.registry.Get(vaultID)
	if err != nil {
		return err
	}
	if !s.prefs.Confirmations().SkipDelete {
		d := s.confirm.ConfirmDelete(v)
		if d.DontAskAgain {
			if err := s.prefs.SetSkipDeleteConfirm(true); err != nil {
				s.logger.Warn("persisting confirmation preference", "error", err)
			}
		}
		if !d.Accepted {
			return ErrCancelled
		}
	}

	for _, a := range s.loader.List(vaultID) {
		if _, err := s.backups.BackupBeforeDelete(a); err != nil {
			return fmt.Errorf("backing up %s: %w", a.Filename, err)
		}
	}

	wasCurrent := s.prefs.CurrentVaultID() == vaultID

	dir, err := s.layout.VaultDir(vaultID)
	if err != nil {
		return fmt.Errorf("resolving vault directory: %w", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing vault directory: %w", err)
	}
	s.backups.RecordVaultDelete(*v)

	if err := s.registry.Remove(vaultID); err != nil {
		s.logger.Warn("removing vault from registry", "vault", vaultID, "error", err)
	}

	if len(s.registry.List()) == 0 {
		if _, err := s.CreateVault(DefaultVaultName); err != nil {
			return fmt.Errorf("bootstrapping default vault: %w", err)
		}
	}

	if wasCurrent {
		if err := s.SwitchTo(s.registry.List()[0].ID); err != nil {
			return fmt.Errorf("switching after vault delete: %w", err)
		}
	}

	s.logger.Info("vault deleted", "vault", vaultID, "name", v.Name)
	return nil
}
