package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes tab-separated records with the session id", func(t *testing.T) {
		logDir := t.TempDir()
		logger, f, err := newLogger(logDir, "sess-1")
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		defer f.Close()

		logger.Info("vault created", "vault", "v1", "name", "Moodboard")

		data, err := os.ReadFile(filepath.Join(logDir, "visuallibrary.log"))
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		line := strings.TrimSpace(string(data))
		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			t.Fatalf("fields = %d, want 6: %q", len(fields), line)
		}
		if fields[1] != "INFO" {
			t.Errorf("level = %q", fields[1])
		}
		if fields[2] != "sess-1" {
			t.Errorf("session = %q", fields[2])
		}
		if fields[3] != "vault created" {
			t.Errorf("message = %q", fields[3])
		}
		if fields[4] != "vault=v1" || fields[5] != "name=Moodboard" {
			t.Errorf("attrs = %q %q", fields[4], fields[5])
		}
	})

	t.Run("appends across sessions", func(t *testing.T) {
		logDir := t.TempDir()
		for _, sid := range []string{"s1", "s2"} {
			logger, f, err := newLogger(logDir, sid)
			if err != nil {
				t.Fatalf("newLogger(%s) error = %v", sid, err)
			}
			logger.Info("opened")
			f.Close()
		}

		data, err := os.ReadFile(filepath.Join(logDir, "visuallibrary.log"))
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 2 {
			t.Errorf("lines = %d, want 2", len(lines))
		}
	})

	t.Run("creates the log directory", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "nested", "log")
		_, f, err := newLogger(logDir, "s")
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		f.Close()
	})
}

func TestSlogAdapter(t *testing.T) {
	logDir := t.TempDir()
	logger, f, err := newLogger(logDir, "s")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	adapter := &slogAdapter{l: logger}
	adapter.Warn("something odd", "key", 42)

	data, err := os.ReadFile(filepath.Join(logDir, "visuallibrary.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "WARN\ts\tsomething odd\tkey=42") {
		t.Errorf("unexpected record: %q", data)
	}
}
