package vlib

// UndoAssetDelete restores the most recently deleted asset from its
// backup, re-increments the owning vault's cached count, and reloads the
// listing when that vault is active. Only the most recent deletion is
// undoable; there is no redo.
func (s *Service) UndoAssetDelete() (*Asset, error) {
	rec, err := s.backups.UndoLastAssetDelete()
	if err != nil {
		return nil, err
	}
	s.registry.AdjustCount(rec.Asset.VaultID, 1)
	if err := s.registry.Save(); err != nil {
		s.logger.Warn("persisting vault list", "error", err)
	}
	s.refreshIfCurrent(rec.Asset.VaultID)
	s.logger.Info("asset delete undone", "file", rec.Asset.Filename, "vault", rec.Asset.VaultID)
	return &rec.Asset, nil
}

// UndoVaultDelete re-registers the most recently deleted vault and its
// empty directory. The vault's assets are restored only through their own
// backup records, undone separately.
func (s *Service) UndoVaultDelete() (*Vault, error) {
	v, err := s.backups.UndoLastVaultDelete()
	if err != nil {
		return nil, err
	}
	restored := *v
	restored.ImageCount = 0 // the recreated directory is empty
	if err := s.registry.Restore(restored); err != nil {
		return nil, err
	}
	s.logger.Info("vault delete undone", "vault", restored.ID, "name", restored.Name)
	return &restored, nil
}

// CanUndoAssetDelete reports whether an asset undo is pending.
func (s *Service) CanUndoAssetDelete() bool { return s.backups.PendingAssetUndo() }

// CanUndoVaultDelete reports whether a vault undo is pending.
func (s *Service) CanUndoVaultDelete() bool { return s.backups.PendingVaultUndo() }
