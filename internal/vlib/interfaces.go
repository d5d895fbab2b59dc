package vlib

// Layout owns the fixed on-disk directory scheme: the library root, the
// Vaults directory with one subdirectory per vault id, the Backups
// directory, and the metadata/preferences document paths.
// Directory-returning calls guarantee the directory exists on return
// (idempotent create-if-missing) and never delete anything.
type Layout interface {
	Root() (string, error)
	VaultsDir() (string, error)
	BackupsDir() (string, error)
	MetadataPath() string
	PrefsPath() string

	// VaultDir returns <VaultsDir>/<vaultID>, creating it if absent.
	// Metadata and directories may transiently diverge; this is where the
	// layout self-heals by recreating missing directories lazily.
	VaultDir(vaultID string) (string, error)
}

// Registry is the single source of truth for the ordered vault list and
// the currently selected vault. Persistence failures degrade to
// in-memory-only state for the session; they never abort an operation.
type Registry interface {
	// Load reads the metadata document. A missing file or decode failure
	// bootstraps a single default vault instead of failing.
	Load() error

	// Save overwrites the metadata document with the full vault list.
	Save() error

	// Create appends a new vault with a fresh id and persists the list.
	Create(name string) (*Vault, error)

	// Rename mutates the vault's display name in place and persists.
	Rename(vaultID, newName string) error

	// Remove drops the vault from the list and persists. The caller is
	// responsible for keeping the list non-empty afterward.
	Remove(vaultID string) error

	// Restore re-appends a previously removed vault (undo path).
	Restore(v Vault) error

	Get(vaultID string) (*Vault, error)
	List() []*Vault

	// SetCurrent records the last-opened vault id in the preferences so
	// sessions resume where they left off.
	SetCurrent(vaultID string) error

	// Current resolves the remembered vault id, falling back to the first
	// vault, or bootstrapping a default vault if the list is empty.
	Current() (*Vault, error)

	// AdjustCount and SetCount maintain the advisory cached image count.
	// Neither persists on its own; counts are corrected on reload.
	AdjustCount(vaultID string, delta int)
	SetCount(vaultID string, n int)
}

// AssetLoader enumerates a vault directory and classifies its entries.
type AssetLoader interface {
	// List returns one Asset per supported-type file in the vault's
	// directory, each with a fresh per-load-cycle id. Read errors are
	// logged and yield an empty list; the UI must still render.
	List(vaultID string) []Asset
}

// BackupManager makes destructive operations reversible within a fixed
// window and reclaims backup storage afterward. Journals are in-memory
// only; undo does not survive a process restart.
type BackupManager interface {
	// BackupBeforeDelete copies the asset's file aside and journals it.
	// A copy failure aborts the delete it was protecting: the caller must
	// not remove the original unless this succeeds.
	BackupBeforeDelete(asset Asset) (string, error)

	// RecordVaultDelete journals a whole-vault deletion.
	RecordVaultDelete(v Vault)

	// UndoLastAssetDelete pops the most recent record and moves the
	// backup file back to its original path. An expired record is
	// discarded and ErrUndoExpired returned. A restore failure leaves the
	// record in the journal for retry.
	UndoLastAssetDelete() (*BackupRecord, error)

	// UndoLastVaultDelete pops the most recent vault record and recreates
	// the vault's empty directory. Assets come back through their own
	// records, undone separately.
	UndoLastVaultDelete() (*Vault, error)

	// CleanupExpired purges expired records and deletes backup files no
	// longer referenced by a live record. Returns purged record and file
	// counts for logging.
	CleanupExpired() (records int, files int)

	PendingAssetUndo() bool
	PendingVaultUndo() bool
}

// Confirmations are the sticky "don't ask again" flags for the two
// destructive batch operations, modeled as named fields rather than
// string-keyed preferences.
type Confirmations struct {
	SkipEmpty  bool
	SkipDelete bool
}

// Preferences is the small mutable per-library document persisted outside
// the vault list: session resume state and sticky user choices.
type Preferences interface {
	CurrentVaultID() string
	SetCurrentVaultID(id string) error

	Confirmations() Confirmations
	SetSkipEmptyConfirm(skip bool) error
	SetSkipDeleteConfirm(skip bool) error

	DownloadDir() string
	SetDownloadDir(dir string) error
}

// Decision is the outcome of a confirmation prompt.
type Decision struct {
	Accepted     bool
	DontAskAgain bool
}

// Confirmer is the user-facing confirmation collaborator consulted before
// destructive batch operations, strictly before any filesystem mutation.
type Confirmer interface {
	ConfirmEmpty(v *Vault) Decision
	ConfirmDelete(v *Vault) Decision
}
