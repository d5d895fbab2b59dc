package testutil

import (
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// MemoryPrefs is an in-memory vlib.Preferences for tests. SaveErr, when
// set, is returned by every setter to exercise persistence-failure paths.
type MemoryPrefs struct {
	Current  string
	Skips    vlib.Confirmations
	Download string
	SaveErr  error
}

func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{}
}

func (p *MemoryPrefs) CurrentVaultID() string { return p.Current }

func (p *MemoryPrefs) SetCurrentVaultID(id string) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Current = id
	return nil
}

func (p *MemoryPrefs) Confirmations() vlib.Confirmations { return p.Skips }

func (p *MemoryPrefs) SetSkipEmptyConfirm(skip bool) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Skips.SkipEmpty = skip
	return nil
}

func (p *MemoryPrefs) SetSkipDeleteConfirm(skip bool) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Skips.SkipDelete = skip
	return nil
}

func (p *MemoryPrefs) DownloadDir() string { return p.Download }

func (p *MemoryPrefs) SetDownloadDir(dir string) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Download = dir
	return nil
}

var _ vlib.Preferences = (*MemoryPrefs)(nil)
