package ui

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/thumbs"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
	return path
}

func TestRequestThumb(t *testing.T) {
	t.Run("delivers a decoded thumbnail as a message", func(t *testing.T) {
		cache := thumbs.NewCache(8, time.Minute, vlib.NopLogger{})
		path := writePNG(t, t.TempDir(), "pic.png", 200, 100)

		msg := requestThumb(cache, path, 64)()
		tm, ok := msg.(thumbMsg)
		if !ok {
			t.Fatalf("msg type = %T, want thumbMsg", msg)
		}
		if tm.path != path {
			t.Errorf("path = %q, want %q", tm.path, path)
		}
		if tm.thumb == nil || tm.thumb.Kind != thumbs.KindStatic {
			t.Fatalf("thumb = %+v, want a static thumbnail", tm.thumb)
		}
		if _, ok := cache.Get(path); !ok {
			t.Error("decoded thumbnail not cached")
		}
	})

	t.Run("undecodable file degrades to a placeholder", func(t *testing.T) {
		cache := thumbs.NewCache(8, time.Minute, vlib.NopLogger{})
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.jpg")
		if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
			t.Fatalf("writing file: %v", err)
		}

		msg := requestThumb(cache, path, 64)()
		tm := msg.(thumbMsg)
		if tm.thumb.Kind != thumbs.KindPlaceholder {
			t.Errorf("Kind = %v, want KindPlaceholder", tm.thumb.Kind)
		}
	})
}
