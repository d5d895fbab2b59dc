// Package registry persists the ordered vault list as a single JSON
// document (vaults.json), overwritten whole on every save. Persistence
// failures are logged and the in-memory list stays authoritative for the
// session; no registry operation is fatal on a save failure.
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// JSONRegistry is the vaults.json-backed implementation of vlib.Registry.
type JSONRegistry struct {
	layout vlib.Layout
	prefs  vlib.Preferences
	logger vlib.Logger
	clock  vlib.Clock
	idgen  vlib.IDGenerator

	vaults []*vlib.Vault
}

// NewJSONRegistry creates a registry over the given layout and preferences.
func NewJSONRegistry(layout vlib.Layout, prefs vlib.Preferences, logger vlib.Logger, clock vlib.Clock, idgen vlib.IDGenerator) *JSONRegistry {
	return &JSONRegistry{
		layout: layout,
		prefs:  prefs,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

// Load reads the metadata document. A missing file, a decode failure, or
// an empty list all bootstrap a single default vault — a recoverable
// default, logged but never raised.
func (r *JSONRegistry) Load() error {
	if _, err := r.layout.Root(); err != nil {
		return err
	}

	data, err := os.ReadFile(r.layout.MetadataPath())
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("reading vault list", "error", err)
		}
		return r.bootstrap()
	}

	var vaults []*vlib.Vault
	if err := json.Unmarshal(data, &vaults); err != nil {
		r.logger.Warn("vault list unreadable, starting fresh", "error", err)
		return r.bootstrap()
	}
	if len(vaults) == 0 {
		return r.bootstrap()
	}

	r.vaults = vaults
	return nil
}

// bootstrap replaces the list with a single default vault and persists it.
func (r *JSONRegistry) bootstrap() error {
	r.vaults = nil
	_, err := r.Create(vlib.DefaultVaultName)
	return err
}

// Save serializes the full vault list to the metadata document,
// overwriting it.
func (r *JSONRegistry) Save() error {
	if _, err := r.layout.Root(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r.vaults, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding vault list: %w", err)
	}
	if err := os.WriteFile(r.layout.MetadataPath(), data, 0644); err != nil {
		return fmt.Errorf("writing vault list: %w", err)
	}
	return nil
}

// persist saves and downgrades failures to a warning.
func (r *JSONRegistry) persist() {
	if err := r.Save(); err != nil {
		r.logger.Warn("persisting vault list, keeping in-memory state", "error", err)
	}
}

// Create appends a new vault with a fresh id and zero count.
func (r *JSONRegistry) Create(name string) (*vlib.Vault, error) {
	v := &vlib.Vault{
		ID:        r.idgen.New(),
		Name:      name,
		CreatedAt: r.clock.Now(),
	}
	r.vaults = append(r.vaults, v)
	r.persist()
	return v, nil
}

// Rename mutates the vault's display name in place.
func (r *JSONRegistry) Rename(vaultID, newName string) error {
	v, err := r.Get(vaultID)
	if err != nil {
		return err
	}
	v.Name = newName
	r.persist()
	return nil
}

// Remove drops the vault from the list.
func (r *JSONRegistry) Remove(vaultID string) error {
	for i, v := range r.vaults {
		if v.ID == vaultID {
			r.vaults = append(r.vaults[:i], r.vaults[i+1:]...)
			r.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", vlib.ErrVaultNotFound, vaultID)
}

// Restore re-appends a previously removed vault.
func (r *JSONRegistry) Restore(v vlib.Vault) error {
	restored := v
	r.vaults = append(r.vaults, &restored)
	r.persist()
	return nil
}

// Get returns the vault with the given id.
func (r *JSONRegistry) Get(vaultID string) (*vlib.Vault, error) {
	for _, v := range r.vaults {
		if v.ID == vaultID {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", vlib.ErrVaultNotFound, vaultID)
}

// List returns the ordered vault list.
func (r *JSONRegistry) List() []*vlib.Vault {
	return r.vaults
}

// SetCurrent records the last-opened vault id in the preferences.
func (r *JSONRegistry) SetCurrent(vaultID string) error {
	if _, err := r.Get(vaultID); err != nil {
		return err
	}
	return r.prefs.SetCurrentVaultID(vaultID)
}

// Current resolves the remembered vault, falling back to the first vault,
// or bootstrapping a default vault when the list is empty.
func (r *JSONRegistry) Current() (*vlib.Vault, error) {
	if id := r.prefs.CurrentVaultID(); id != "" {
		if v, err := r.Get(id); err == nil {
			return v, nil
		}
	}
	if len(r.vaults) > 0 {
		return r.vaults[0], nil
	}
	return r.Create(vlib.DefaultVaultName)
}

// AdjustCount shifts the advisory count, clamped at zero. Unknown vault
// ids are ignored (the vault may have been deleted underneath an undo).
func (r *JSONRegistry) AdjustCount(vaultID string, delta int) {
	v, err := r.Get(vaultID)
	if err != nil {
		return
	}
	v.ImageCount += delta
	if v.ImageCount < 0 {
		v.ImageCount = 0
	}
}

// SetCount replaces the advisory count with a freshly derived value.
func (r *JSONRegistry) SetCount(vaultID string, n int) {
	if v, err := r.Get(vaultID); err == nil {
		v.ImageCount = n
	}
}

// Compile-time check that JSONRegistry implements vlib.Registry.
var _ vlib.Registry = (*JSONRegistry)(nil)
