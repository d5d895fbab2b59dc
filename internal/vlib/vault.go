package vlib

import "time"

// DefaultVaultName is the name given to the vault bootstrapped when the
// library has no vaults (first launch, corrupt metadata, last vault deleted).
const DefaultVaultName = "All Images"

// Vault is a user-named collection of media files backed by one directory.
// The persisted form is the vaults.json document: an ordered array of these.
type Vault struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	ImageCount int       `json:"imageCount"`
}

// Asset is the in-memory projection of one media file inside a vault at
// listing time. The ID is fresh per load cycle and must never be used as a
// durable key; FilePath is the sole identity anchor on disk.
type Asset struct {
	ID       string
	Filename string
	FilePath string
	VaultID  string
}

// BackupRecord is an undo-journal entry for a single deleted asset.
// Entries are Active until restored or until the undo window elapses.
type BackupRecord struct {
	Asset      Asset
	BackupPath string
	DeletedAt  time.Time
}

// DeletedVault is an undo-journal entry for a whole-vault deletion.
// Undoing it restores the vault metadata and its empty directory; the
// vault's assets are restored through their own BackupRecords.
type DeletedVault struct {
	Vault     Vault
	DeletedAt time.Time
}

// DownloadSummary aggregates the outcome of a copy-only export batch.
type DownloadSummary struct {
	Copied  int
	Skipped int
	Failed  int
}
