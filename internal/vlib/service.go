package vlib

import (
	"fmt"
	"io"
	"os"
)

// Service is the orchestration layer composing the registry, asset loader,
// and backup manager into the externally visible vault lifecycle
// operations. Backups always precede destructive filesystem actions.
//
// All mutating methods are issued sequentially from a single goroutine
// (the UI event loop); the service does not lock against overlapping
// operations on the same vault.
type Service struct {
	layout   Layout
	registry Registry
	loader   AssetLoader
	backups  BackupManager
	prefs    Preferences
	confirm  Confirmer
	logger   Logger
	idgen    IDGenerator

	assets []Asset // listing of the current vault, rebuilt on every reload
}

// NewService creates a Service with the provided dependencies.
func NewService(layout Layout, registry Registry, loader AssetLoader, backups BackupManager, prefs Preferences, confirm Confirmer, logger Logger, idgen IDGenerator) *Service {
	return &Service{
		layout:   layout,
		registry: registry,
		loader:   loader,
		backups:  backups,
		prefs:    prefs,
		confirm:  confirm,
		logger:   logger,
		idgen:    idgen,
	}
}

// Start loads the vault list and switches to the remembered vault.
func (s *Service) Start() error {
	if err := s.registry.Load(); err != nil {
		return fmt.Errorf("loading vault list: %w", err)
	}
	cur, err := s.registry.Current()
	if err != nil {
		return fmt.Errorf("resolving current vault: %w", err)
	}
	return s.SwitchTo(cur.ID)
}

// SwitchTo sets the current vault, persists the preference, and reloads
// the asset listing. If the vault's directory cannot be created, the
// service falls back to another vault rather than leaving the current
// pointer on an unusable vault.
func (s *Service) SwitchTo(vaultID string) error {
	v, err := s.registry.Get(vaultID)
	if err != nil {
		return err
	}
	if _, err := s.layout.VaultDir(v.ID); err != nil {
		s.logger.Error("vault directory unavailable", "vault", v.ID, "error", err)
		v, err = s.fallbackVault(v.ID)
		if err != nil {
			return err
		}
	}
	if err := s.registry.SetCurrent(v.ID); err != nil {
		s.logger.Warn("persisting current vault", "vault", v.ID, "error", err)
	}
	s.refresh(v.ID)
	return nil
}

// fallbackVault finds a usable vault after vaultID's directory failed to
// create: the first other vault whose directory is creatable, or a fresh
// default vault.
func (s *Service) fallbackVault(badID string) (*Vault, error) {
	for _, v := range s.registry.List() {
		if v.ID == badID {
			continue
		}
		if _, err := s.layout.VaultDir(v.ID); err == nil {
			return v, nil
		}
	}
	v, err := s.registry.Create(DefaultVaultName)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping fallback vault: %w", err)
	}
	if _, err := s.layout.VaultDir(v.ID); err != nil {
		return nil, fmt.Errorf("creating fallback vault directory: %w", err)
	}
	return v, nil
}

// CurrentVault returns the currently selected vault.
func (s *Service) CurrentVault() (*Vault, error) {
	return s.registry.Current()
}

// Vaults returns the ordered vault list.
func (s *Service) Vaults() []*Vault {
	return s.registry.List()
}

// Assets returns the current vault's in-memory asset listing.
func (s *Service) Assets() []Asset {
	return s.assets
}

// Reload rebuilds the current vault's listing from disk and corrects its
// cached image count.
func (s *Service) Reload() error {
	cur, err := s.registry.Current()
	if err != nil {
		return err
	}
	s.refresh(cur.ID)
	return nil
}

// refresh relists the vault directory and reconciles the advisory count
// with what is physically present.
func (s *Service) refresh(vaultID string) {
	s.assets = s.loader.List(vaultID)
	s.registry.SetCount(vaultID, len(s.assets))
	if err := s.registry.Save(); err != nil {
		s.logger.Warn("persisting vault list", "error", err)
	}
}

// refreshIfCurrent reloads the listing when vaultID is the active vault.
func (s *Service) refreshIfCurrent(vaultID string) {
	if s.prefs.CurrentVaultID() == vaultID {
		s.refresh(vaultID)
	}
}

// CreateVault appends a new vault and creates its directory. The returned
// vault lets the caller enter a rename flow immediately.
func (s *Service) CreateVault(name string) (*Vault, error) {
	v, err := s.registry.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating vault: %w", err)
	}
	if _, err := s.layout.VaultDir(v.ID); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}
	s.logger.Info("vault created", "vault", v.ID, "name", name)
	return v, nil
}

// RenameVault updates the vault's display name.
func (s *Service) RenameVault(vaultID, newName string) error {
	return s.registry.Rename(vaultID, newName)
}

// DownloadDir returns the sticky destination from the last DownloadAll,
// or the empty string before any download.
func (s *Service) DownloadDir() string {
	return s.prefs.DownloadDir()
}

// copyFile copies src to dst, failing if the source cannot be read or the
// destination cannot be written. The destination is removed on failure.
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
