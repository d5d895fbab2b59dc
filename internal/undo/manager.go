// Package undo makes destructive operations reversible within a fixed
// time window. Deleted files are copied into the Backups directory before
// removal and journaled in in-memory LIFO logs; the logs do not survive a
// process restart. Expired entries are reaped by a periodic cleanup pass.
package undo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// DefaultWindow is how long a destructive operation remains reversible.
const DefaultWindow = 10 * time.Minute

// Manager implements vlib.BackupManager over the library's Backups
// directory. Destructive operations drive it from the UI event loop;
// CleanupExpired also runs on the app scheduler's goroutine, so the
// journals are guarded by a mutex.
type Manager struct {
	layout vlib.Layout
	logger vlib.Logger
	clock  vlib.Clock
	idgen  vlib.IDGenerator
	window time.Duration

	mu       sync.Mutex
	assetLog []vlib.BackupRecord
	vaultLog []vlib.DeletedVault
}

// NewManager creates a Manager. A non-positive window falls back to
// DefaultWindow.
func NewManager(layout vlib.Layout, logger vlib.Logger, clock vlib.Clock, idgen vlib.IDGenerator, window time.Duration) *Manager {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Manager{
		layout: layout,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
		window: window,
	}
}

// BackupBeforeDelete copies the asset's file into the backups directory
// and journals it. The backup name embeds a fresh short id so two deletes
// of same-named files never collide while their records are live. A copy
// failure aborts the delete it was protecting: the original is untouched.
func (m *Manager) BackupBeforeDelete(a vlib.Asset) (string, error) {
	dir, err := m.layout.BackupsDir()
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s_%s", a.VaultID, vlib.ShortID(m.idgen.New()), a.Filename)
	backupPath := filepath.Join(dir, name)

	// The copy and the journal append happen under the same lock as the
	// cleanup sweep, so no on-disk backup is ever visible without its record.
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := copyFile(a.FilePath, backupPath); err != nil {
		return "", fmt.Errorf("copying to backup: %w", err)
	}
	m.assetLog = append(m.assetLog, vlib.BackupRecord{
		Asset:      a,
		BackupPath: backupPath,
		DeletedAt:  m.clock.Now(),
	})
	m.logger.Debug("asset backed up", "file", a.Filename, "backup", backupPath)
	return backupPath, nil
}

// RecordVaultDelete journals a whole-vault deletion.
func (m *Manager) RecordVaultDelete(v vlib.Vault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vaultLog = append(m.vaultLog, vlib.DeletedVault{
		Vault:     v,
		DeletedAt: m.clock.Now(),
	})
}

// UndoLastAssetDelete pops the most recent record and moves the backup
// back to the asset's original path, recreating the vault directory if
// needed. Expired records are discarded without restoring; their backup
// file is reclaimed by the next cleanup pass. A restore failure puts the
// record back so the next user action can retry.
func (m *Manager) UndoLastAssetDelete() (*vlib.BackupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.assetLog)
	if n == 0 {
		return nil, vlib.ErrNothingToUndo
	}
	rec := m.assetLog[n-1]
	m.assetLog = m.assetLog[:n-1]

	if m.expired(rec.DeletedAt) {
		m.logger.Info("undo window elapsed", "file", rec.Asset.Filename)
		return nil, vlib.ErrUndoExpired
	}

	if _, err := m.layout.VaultDir(rec.Asset.VaultID); err != nil {
		m.assetLog = append(m.assetLog, rec)
		return nil, fmt.Errorf("recreating vault directory: %w", err)
	}
	if err := moveFile(rec.BackupPath, rec.Asset.FilePath); err != nil {
		m.assetLog = append(m.assetLog, rec)
		return nil, fmt.Errorf("restoring %s: %w", rec.Asset.Filename, err)
	}

	m.logger.Info("asset restored", "file", rec.Asset.Filename, "path", rec.Asset.FilePath)
	return &rec, nil
}

// UndoLastVaultDelete pops the most recent vault record and recreates the
// vault's empty directory. The vault's assets are restored through their
// own records, undone separately.
func (m *Manager) UndoLastVaultDelete() (*vlib.Vault, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.vaultLog)
	if n == 0 {
		return nil, vlib.ErrNothingToUndo
	}
	rec := m.vaultLog[n-1]
	m.vaultLog = m.vaultLog[:n-1]

	if m.expired(rec.DeletedAt) {
		m.logger.Info("undo window elapsed", "vault", rec.Vault.ID)
		return nil, vlib.ErrUndoExpired
	}

	if _, err := m.layout.VaultDir(rec.Vault.ID); err != nil {
		m.vaultLog = append(m.vaultLog, rec)
		return nil, fmt.Errorf("recreating vault directory: %w", err)
	}

	v := rec.Vault
	return &v, nil
}

// CleanupExpired purges expired journal entries, then deletes any backup
// file on disk no longer referenced by a live record. The whole pass holds
// the journal lock so a backup written concurrently is never mistaken for
// an unreferenced file. Filesystem errors are logged and skipped; the
// sweep runs again on the next period.
func (m *Manager) CleanupExpired() (records int, files int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keptAssets []vlib.BackupRecord
	for _, rec := range m.assetLog {
		if m.expired(rec.DeletedAt) {
			records++
			continue
		}
		keptAssets = append(keptAssets, rec)
	}
	m.assetLog = keptAssets

	var keptVaults []vlib.DeletedVault
	for _, rec := range m.vaultLog {
		if m.expired(rec.DeletedAt) {
			records++
			continue
		}
		keptVaults = append(keptVaults, rec)
	}
	m.vaultLog = keptVaults

	dir, err := m.layout.BackupsDir()
	if err != nil {
		m.logger.Warn("backups directory unavailable", "error", err)
		return records, files
	}
	referenced := make(map[string]bool, len(m.assetLog))
	for _, rec := range m.assetLog {
		referenced[rec.BackupPath] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.logger.Warn("reading backups directory", "error", err)
		return records, files
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if referenced[p] {
			continue
		}
		if err := os.Remove(p); err != nil {
			m.logger.Warn("removing stale backup", "path", p, "error", err)
			continue
		}
		files++
	}
	return records, files
}

// PendingAssetUndo reports whether an unexpired asset undo is available.
func (m *Manager) PendingAssetUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.assetLog)
	return n > 0 && !m.expired(m.assetLog[n-1].DeletedAt)
}

// PendingVaultUndo reports whether an unexpired vault undo is available.
func (m *Manager) PendingVaultUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.vaultLog)
	return n > 0 && !m.expired(m.vaultLog[n-1].DeletedAt)
}

func (m *Manager) expired(deletedAt time.Time) bool {
	return m.clock.Now().Sub(deletedAt) > m.window
}

// copyFile copies src to dst; the destination is removed on failure.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing destination: %w", err)
	}
	return nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// Compile-time check that Manager implements vlib.BackupManager.
var _ vlib.BackupManager = (*Manager)(nil)
