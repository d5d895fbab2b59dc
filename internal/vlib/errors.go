package vlib

import "errors"

// Sentinel errors for library operations. Filesystem failures are wrapped
// os errors and remain matchable with errors.Is against io/fs sentinels.
var (
	// ErrVaultNotFound is returned when an operation targets a vault id
	// that is no longer present in the registry.
	ErrVaultNotFound = errors.New("vault not found")

	// ErrAssetNotFound is returned when an asset's file no longer exists
	// on disk.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrNothingToUndo is returned when the undo journal is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrUndoExpired is returned when the most recent journal entry has
	// outlived the undo window. The entry is discarded, not restored.
	ErrUndoExpired = errors.New("undo window expired")

	// ErrCancelled is returned when the user declines a confirmation
	// prompt before a destructive operation.
	ErrCancelled = errors.New("operation cancelled")
)
