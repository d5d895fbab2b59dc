package undo_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/layout"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/testutil"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/undo"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

func newManager(t *testing.T) (*undo.Manager, *layout.Layout, *testutil.StubClock) {
	t.Helper()
	lay := testutil.NewTestLayout(t)
	clock := testutil.FixedClock()
	m := undo.NewManager(lay, vlib.NopLogger{}, clock, testutil.NewStubIDGenerator(), 10*time.Minute)
	return m, lay, clock
}

func seedAsset(t *testing.T, lay *layout.Layout, vaultID, name string, content []byte) vlib.Asset {
	t.Helper()
	dir, err := lay.VaultDir(vaultID)
	if err != nil {
		t.Fatalf("VaultDir() error = %v", err)
	}
	path := testutil.SeedFile(t, dir, name, content)
	return vlib.Asset{ID: "asset-" + name, Filename: name, FilePath: path, VaultID: vaultID}
}

func TestManager_BackupBeforeDelete(t *testing.T) {
	t.Run("copies the file into the backups directory", func(t *testing.T) {
		m, lay, _ := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat bytes"))

		backupPath, err := m.BackupBeforeDelete(a)
		if err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}

		data, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("reading backup: %v", err)
		}
		if string(data) != "cat bytes" {
			t.Errorf("backup content = %q", data)
		}
		if _, err := os.Stat(a.FilePath); err != nil {
			t.Errorf("original must be untouched: %v", err)
		}
		if !m.PendingAssetUndo() {
			t.Error("PendingAssetUndo() = false after backup")
		}
	})

	t.Run("fails when the source cannot be read", func(t *testing.T) {
		m, lay, _ := newManager(t)
		dir, _ := lay.VaultDir("v1")
		a := vlib.Asset{Filename: "ghost.jpg", FilePath: filepath.Join(dir, "ghost.jpg"), VaultID: "v1"}

		if _, err := m.BackupBeforeDelete(a); err == nil {
			t.Fatal("BackupBeforeDelete() expected error for missing source")
		}
		if m.PendingAssetUndo() {
			t.Error("failed backup must not be journaled")
		}
	})

	t.Run("same filename from two vaults gets distinct backups", func(t *testing.T) {
		m, lay, _ := newManager(t)
		a := seedAsset(t, lay, "v1", "pic.jpg", []byte("from v1"))
		b := seedAsset(t, lay, "v2", "pic.jpg", []byte("from v2"))

		pa, err := m.BackupBeforeDelete(a)
		if err != nil {
			t.Fatalf("first BackupBeforeDelete() error = %v", err)
		}
		pb, err := m.BackupBeforeDelete(b)
		if err != nil {
			t.Fatalf("second BackupBeforeDelete() error = %v", err)
		}
		if pa == pb {
			t.Fatalf("backup paths collide: %q", pa)
		}

		da, _ := os.ReadFile(pa)
		db, _ := os.ReadFile(pb)
		if string(da) != "from v1" || string(db) != "from v2" {
			t.Errorf("backup contents mixed up: %q / %q", da, db)
		}
	})
}

func TestManager_UndoLastAssetDelete(t *testing.T) {
	t.Run("restores the exact bytes to the original path", func(t *testing.T) {
		m, lay, _ := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat bytes"))

		if _, err := m.BackupBeforeDelete(a); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}
		if err := os.Remove(a.FilePath); err != nil {
			t.Fatalf("deleting original: %v", err)
		}

		rec, err := m.UndoLastAssetDelete()
		if err != nil {
			t.Fatalf("UndoLastAssetDelete() error = %v", err)
		}
		if rec.Asset.Filename != "cat.jpg" {
			t.Errorf("restored filename = %q", rec.Asset.Filename)
		}

		data, err := os.ReadFile(a.FilePath)
		if err != nil {
			t.Fatalf("reading restored file: %v", err)
		}
		if string(data) != "cat bytes" {
			t.Errorf("restored content = %q", data)
		}
		if _, err := os.Stat(rec.BackupPath); !os.IsNotExist(err) {
			t.Errorf("backup file should be gone after restore, stat err = %v", err)
		}
	})

	t.Run("restores in LIFO order", func(t *testing.T) {
		m, lay, _ := newManager(t)
		first := seedAsset(t, lay, "v1", "first.jpg", []byte("1"))
		second := seedAsset(t, lay, "v1", "second.jpg", []byte("2"))

		for _, a := range []vlib.Asset{first, second} {
			if _, err := m.BackupBeforeDelete(a); err != nil {
				t.Fatalf("BackupBeforeDelete(%s) error = %v", a.Filename, err)
			}
			if err := os.Remove(a.FilePath); err != nil {
				t.Fatalf("removing %s: %v", a.Filename, err)
			}
		}

		rec, err := m.UndoLastAssetDelete()
		if err != nil {
			t.Fatalf("UndoLastAssetDelete() error = %v", err)
		}
		if rec.Asset.Filename != "second.jpg" {
			t.Errorf("first undo = %q, want second.jpg", rec.Asset.Filename)
		}

		rec, err = m.UndoLastAssetDelete()
		if err != nil {
			t.Fatalf("second UndoLastAssetDelete() error = %v", err)
		}
		if rec.Asset.Filename != "first.jpg" {
			t.Errorf("second undo = %q, want first.jpg", rec.Asset.Filename)
		}
	})

	t.Run("recreates a vault directory removed after the delete", func(t *testing.T) {
		m, lay, _ := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat"))

		if _, err := m.BackupBeforeDelete(a); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}
		dir := filepath.Dir(a.FilePath)
		if err := os.RemoveAll(dir); err != nil {
			t.Fatalf("removing vault dir: %v", err)
		}

		if _, err := m.UndoLastAssetDelete(); err != nil {
			t.Fatalf("UndoLastAssetDelete() error = %v", err)
		}
		if _, err := os.Stat(a.FilePath); err != nil {
			t.Errorf("restored file missing: %v", err)
		}
	})

	t.Run("empty journal", func(t *testing.T) {
		m, _, _ := newManager(t)
		if _, err := m.UndoLastAssetDelete(); !errors.Is(err, vlib.ErrNothingToUndo) {
			t.Errorf("UndoLastAssetDelete() error = %v, want ErrNothingToUndo", err)
		}
	})

	t.Run("expired record is discarded", func(t *testing.T) {
		m, lay, clock := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat"))
		if _, err := m.BackupBeforeDelete(a); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}

		clock.Advance(10*time.Minute + time.Second)

		if _, err := m.UndoLastAssetDelete(); !errors.Is(err, vlib.ErrUndoExpired) {
			t.Fatalf("UndoLastAssetDelete() error = %v, want ErrUndoExpired", err)
		}
		if _, err := m.UndoLastAssetDelete(); !errors.Is(err, vlib.ErrNothingToUndo) {
			t.Errorf("expired record must be consumed, error = %v", err)
		}
	})

	t.Run("a record just inside the window still restores", func(t *testing.T) {
		m, lay, clock := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat"))
		if _, err := m.BackupBeforeDelete(a); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}
		if err := os.Remove(a.FilePath); err != nil {
			t.Fatalf("removing original: %v", err)
		}

		clock.Advance(10 * time.Minute)

		if _, err := m.UndoLastAssetDelete(); err != nil {
			t.Errorf("UndoLastAssetDelete() at the boundary error = %v", err)
		}
	})
}

func TestManager_UndoLastVaultDelete(t *testing.T) {
	t.Run("recreates the empty vault directory", func(t *testing.T) {
		m, lay, _ := newManager(t)
		v := vlib.Vault{ID: "v1", Name: "Moodboard", ImageCount: 3}

		m.RecordVaultDelete(v)
		if !m.PendingVaultUndo() {
			t.Fatal("PendingVaultUndo() = false after record")
		}

		got, err := m.UndoLastVaultDelete()
		if err != nil {
			t.Fatalf("UndoLastVaultDelete() error = %v", err)
		}
		if got.ID != "v1" || got.Name != "Moodboard" {
			t.Errorf("restored vault = %+v", got)
		}

		vaults, _ := lay.VaultsDir()
		if info, err := os.Stat(filepath.Join(vaults, "v1")); err != nil || !info.IsDir() {
			t.Errorf("vault directory not recreated: %v", err)
		}
	})

	t.Run("expired record is discarded", func(t *testing.T) {
		m, _, clock := newManager(t)
		m.RecordVaultDelete(vlib.Vault{ID: "v1", Name: "Old"})

		clock.Advance(11 * time.Minute)

		if _, err := m.UndoLastVaultDelete(); !errors.Is(err, vlib.ErrUndoExpired) {
			t.Errorf("UndoLastVaultDelete() error = %v, want ErrUndoExpired", err)
		}
		if m.PendingVaultUndo() {
			t.Error("PendingVaultUndo() = true after expiry")
		}
	})
}

func TestManager_CleanupExpired(t *testing.T) {
	t.Run("reaps expired records and their files", func(t *testing.T) {
		m, lay, clock := newManager(t)
		old := seedAsset(t, lay, "v1", "old.jpg", []byte("old"))
		if _, err := m.BackupBeforeDelete(old); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}
		m.RecordVaultDelete(vlib.Vault{ID: "v2", Name: "Old vault"})

		clock.Advance(11 * time.Minute)

		fresh := seedAsset(t, lay, "v1", "fresh.jpg", []byte("fresh"))
		freshBackup, err := m.BackupBeforeDelete(fresh)
		if err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}

		records, files := m.CleanupExpired()
		if records != 2 {
			t.Errorf("records = %d, want 2", records)
		}
		if files != 1 {
			t.Errorf("files = %d, want 1", files)
		}

		if _, err := os.Stat(freshBackup); err != nil {
			t.Errorf("live backup was removed: %v", err)
		}
		if !m.PendingAssetUndo() {
			t.Error("live record lost in cleanup")
		}
	})

	t.Run("never sweeps a backup written concurrently", func(t *testing.T) {
		m, lay, _ := newManager(t)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 500; i++ {
				m.CleanupExpired()
			}
		}()

		var backups []string
		for i := 0; i < 200; i++ {
			a := seedAsset(t, lay, "v1", fmt.Sprintf("pic-%03d.jpg", i), []byte("px"))
			p, err := m.BackupBeforeDelete(a)
			if err != nil {
				t.Fatalf("BackupBeforeDelete() error = %v", err)
			}
			backups = append(backups, p)
		}
		<-done

		m.CleanupExpired()
		for _, p := range backups {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("live backup swept during delete: %v", err)
			}
		}
	})

	t.Run("nothing expired is a no-op", func(t *testing.T) {
		m, lay, _ := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat"))
		if _, err := m.BackupBeforeDelete(a); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}

		records, files := m.CleanupExpired()
		if records != 0 || files != 0 {
			t.Errorf("CleanupExpired() = %d records, %d files, want 0, 0", records, files)
		}
	})
}

func TestManager_PendingAssetUndo(t *testing.T) {
	t.Run("expires with the clock", func(t *testing.T) {
		m, lay, clock := newManager(t)
		a := seedAsset(t, lay, "v1", "cat.jpg", []byte("cat"))
		if _, err := m.BackupBeforeDelete(a); err != nil {
			t.Fatalf("BackupBeforeDelete() error = %v", err)
		}

		if !m.PendingAssetUndo() {
			t.Error("PendingAssetUndo() = false inside window")
		}
		clock.Advance(11 * time.Minute)
		if m.PendingAssetUndo() {
			t.Error("PendingAssetUndo() = true after window")
		}
	})
}
