package app

import (
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("environment variables win", func(t *testing.T) {
		t.Setenv("VL_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("VL_HOME", "/custom/home")
		t.Setenv("VL_LIBRARY", "/custom/library")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}
		if d.ConfigPath != "/custom/config.toml" {
			t.Errorf("ConfigPath = %q", d.ConfigPath)
		}
		if d.BaseDir != "/custom/home" {
			t.Errorf("BaseDir = %q", d.BaseDir)
		}
		if d.LogDir != filepath.Join("/custom/home", "log") {
			t.Errorf("LogDir = %q", d.LogDir)
		}
		if d.LibraryDir != "/custom/library" {
			t.Errorf("LibraryDir = %q", d.LibraryDir)
		}
	})

	t.Run("falls back to home-relative paths", func(t *testing.T) {
		t.Setenv("VL_CONFIG_PATH", "")
		t.Setenv("VL_HOME", "")
		t.Setenv("VL_LIBRARY", "")
		t.Setenv("HOME", "/home/tester")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}
		if d.ConfigPath != "/home/tester/.config/visuallibrary.toml" {
			t.Errorf("ConfigPath = %q", d.ConfigPath)
		}
		if d.LibraryDir != "/home/tester/Documents/VisualInspiration" {
			t.Errorf("LibraryDir = %q", d.LibraryDir)
		}
	})
}
