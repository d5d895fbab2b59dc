// Package assets materializes in-memory asset records from a vault's
// directory listing. Records are rebuilt on every load; their ids are
// fresh per load cycle and never survive a reload.
package assets

import (
	"os"
	"path/filepath"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// Loader lists and classifies the media files of a vault directory.
type Loader struct {
	layout       vlib.Layout
	logger       vlib.Logger
	idgen        vlib.IDGenerator
	includeVideo bool
}

// NewLoader creates a Loader. includeVideo extends the supported-type
// allowlist with the video extensions.
func NewLoader(layout vlib.Layout, logger vlib.Logger, idgen vlib.IDGenerator, includeVideo bool) *Loader {
	return &Loader{
		layout:       layout,
		logger:       logger,
		idgen:        idgen,
		includeVideo: includeVideo,
	}
}

// List returns one Asset per supported-type file in the vault's directory,
// in directory-listing order. Unsupported extensions are silently skipped.
// Errors (missing directory that cannot be created, permission denied) are
// logged and yield an empty list so the UI always has something to render.
func (l *Loader) List(vaultID string) []vlib.Asset {
	dir, err := l.layout.VaultDir(vaultID)
	if err != nil {
		l.logger.Warn("vault directory unavailable", "vault", vaultID, "error", err)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("reading vault directory", "vault", vaultID, "error", err)
		return nil
	}

	var out []vlib.Asset
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !vlib.IsSupportedMedia(name, l.includeVideo) {
			continue
		}
		out = append(out, vlib.Asset{
			ID:       l.idgen.New(),
			Filename: name,
			FilePath: filepath.Join(dir, name),
			VaultID:  vaultID,
		})
	}
	return out
}

// Compile-time check that Loader implements vlib.AssetLoader.
var _ vlib.AssetLoader = (*Loader)(nil)
