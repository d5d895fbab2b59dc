package thumbs_test

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/thumbs"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

func newCache() *thumbs.Cache {
	return thumbs.NewCache(16, time.Minute, vlib.NopLogger{})
}

// writePNG encodes a solid-color PNG of the given size.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return path
}

// writeGIF encodes a two-frame animated GIF.
func writeGIF(t *testing.T, dir, name string, frames int) string {
	t.Helper()
	palette := color.Palette{color.Black, color.White}
	g := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatalf("encoding gif: %v", err)
	}
	return path
}

func TestCache_GetOrCreate(t *testing.T) {
	t.Run("downsamples a large still image", func(t *testing.T) {
		c := newCache()
		path := writePNG(t, t.TempDir(), "big.png", 640, 480)

		th := c.GetOrCreate(path, 128)
		if th.Kind != thumbs.KindStatic {
			t.Fatalf("Kind = %v, want KindStatic", th.Kind)
		}
		b := th.Image.Bounds()
		if b.Dx() != 128 {
			t.Errorf("width = %d, want 128", b.Dx())
		}
		if b.Dy() != 96 {
			t.Errorf("height = %d, want 96 (aspect preserved)", b.Dy())
		}
	})

	t.Run("never upscales a small image", func(t *testing.T) {
		c := newCache()
		path := writePNG(t, t.TempDir(), "small.png", 32, 20)

		th := c.GetOrCreate(path, 256)
		if th.Kind != thumbs.KindStatic {
			t.Fatalf("Kind = %v, want KindStatic", th.Kind)
		}
		b := th.Image.Bounds()
		if b.Dx() != 32 || b.Dy() != 20 {
			t.Errorf("bounds = %dx%d, want 32x20", b.Dx(), b.Dy())
		}
	})

	t.Run("keeps an animated gif whole", func(t *testing.T) {
		c := newCache()
		path := writeGIF(t, t.TempDir(), "loop.gif", 3)

		th := c.GetOrCreate(path, 128)
		if th.Kind != thumbs.KindAnimated {
			t.Fatalf("Kind = %v, want KindAnimated", th.Kind)
		}
		if len(th.Animation.Image) != 3 {
			t.Errorf("frames = %d, want 3", len(th.Animation.Image))
		}
	})

	t.Run("single-frame gif is treated as static", func(t *testing.T) {
		c := newCache()
		path := writeGIF(t, t.TempDir(), "still.gif", 1)

		th := c.GetOrCreate(path, 128)
		if th.Kind != thumbs.KindStatic {
			t.Errorf("Kind = %v, want KindStatic", th.Kind)
		}
	})

	t.Run("video files get the video placeholder without decoding", func(t *testing.T) {
		c := newCache()
		path := filepath.Join(t.TempDir(), "clip.mp4")
		if err := os.WriteFile(path, []byte("not really a video"), 0644); err != nil {
			t.Fatalf("seeding video: %v", err)
		}

		th := c.GetOrCreate(path, 128)
		if th.Kind != thumbs.KindVideo {
			t.Errorf("Kind = %v, want KindVideo", th.Kind)
		}
		if th.Image == nil {
			t.Error("placeholder image is nil")
		}
	})

	t.Run("undecodable files degrade to a placeholder", func(t *testing.T) {
		c := newCache()
		path := filepath.Join(t.TempDir(), "broken.png")
		if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
			t.Fatalf("seeding garbage: %v", err)
		}

		th := c.GetOrCreate(path, 128)
		if th.Kind != thumbs.KindPlaceholder {
			t.Errorf("Kind = %v, want KindPlaceholder", th.Kind)
		}
	})

	t.Run("second lookup hits the cache", func(t *testing.T) {
		c := newCache()
		path := writePNG(t, t.TempDir(), "pic.png", 64, 64)

		first := c.GetOrCreate(path, 32)
		if got, ok := c.Get(path); !ok || got != first {
			t.Error("Get() after GetOrCreate() missed")
		}
		if c.Len() != 1 {
			t.Errorf("Len() = %d, want 1", c.Len())
		}
	})
}

func TestCache_Request(t *testing.T) {
	t.Run("delivers asynchronously on a miss", func(t *testing.T) {
		c := newCache()
		path := writePNG(t, t.TempDir(), "pic.png", 64, 64)

		done := make(chan *thumbs.Thumbnail, 1)
		c.Request(path, 32, func(th *thumbs.Thumbnail) { done <- th })

		select {
		case th := <-done:
			if th.Kind != thumbs.KindStatic {
				t.Errorf("Kind = %v, want KindStatic", th.Kind)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Request() never delivered")
		}
	})

	t.Run("concurrent requests share one decode", func(t *testing.T) {
		c := newCache()
		path := writePNG(t, t.TempDir(), "pic.png", 64, 64)

		done := make(chan *thumbs.Thumbnail, 2)
		deliver := func(th *thumbs.Thumbnail) { done <- th }
		c.Request(path, 32, deliver)
		c.Request(path, 32, deliver)

		for i := 0; i < 2; i++ {
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatalf("delivery %d never arrived", i+1)
			}
		}
	})

	t.Run("delivers inline on a hit", func(t *testing.T) {
		c := newCache()
		path := writePNG(t, t.TempDir(), "pic.png", 64, 64)
		c.GetOrCreate(path, 32)

		delivered := false
		c.Request(path, 32, func(*thumbs.Thumbnail) { delivered = true })
		if !delivered {
			t.Error("Request() on a hit must deliver inline")
		}
	})
}
