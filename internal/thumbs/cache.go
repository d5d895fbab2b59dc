// Package thumbs produces and caches downsampled preview images keyed by
// absolute file path. Decodes run off the UI loop; results are cached in
// a bounded in-memory LRU with TTL expiry. A stale entry can outlive a
// file overwritten at the same path — filenames are drop-time names and
// rarely reused, so the cache does not invalidate on content change.
package thumbs

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// Kind classifies what a cache entry holds.
type Kind int

const (
	// KindStatic is a downsampled still image.
	KindStatic Kind = iota
	// KindAnimated holds the full decoded animation (downsampling would
	// flatten it to one frame).
	KindAnimated
	// KindVideo is the placeholder used for video files, which are not
	// decoded in-process.
	KindVideo
	// KindPlaceholder is the fallback for undecodable files. Decode
	// failures degrade to this; they are never surfaced as user errors.
	KindPlaceholder
)

// Thumbnail is one cached preview.
type Thumbnail struct {
	Kind      Kind
	Image     image.Image
	Animation *gif.GIF // set only for KindAnimated
}

// maxDecodePixels bounds the full-resolution decode a single file may
// demand. Anything larger gets the placeholder instead of risking an
// unbounded allocation.
const maxDecodePixels = 80 << 20

// Cache is a bounded, TTL-expiring thumbnail store safe for use from the
// UI loop and background decode goroutines. Writes are idempotent (same
// path, equivalent bytes), so a racing duplicate decode wastes work but
// never corrupts state.
type Cache struct {
	store  *expirable.LRU[string, *Thumbnail]
	logger vlib.Logger

	mu       sync.Mutex
	inflight map[string][]func(*Thumbnail)
}

// NewCache creates a Cache holding at most maxEntries thumbnails, each
// expiring ttl after insertion. Non-positive maxEntries defaults to 512.
func NewCache(maxEntries int, ttl time.Duration, logger vlib.Logger) *Cache {
	if maxEntries <= 0 {
		maxEntries = 512
	}
	return &Cache{
		store:    expirable.NewLRU[string, *Thumbnail](maxEntries, nil, ttl),
		logger:   logger,
		inflight: make(map[string][]func(*Thumbnail)),
	}
}

// Get returns the cached thumbnail for the path, if present.
func (c *Cache) Get(path string) (*Thumbnail, bool) {
	return c.store.Get(path)
}

// GetOrCreate returns the cached thumbnail or decodes one synchronously.
// Intended for callers already off the UI loop.
func (c *Cache) GetOrCreate(path string, maxDim int) *Thumbnail {
	if t, ok := c.store.Get(path); ok {
		return t
	}
	t := c.generate(path, maxDim)
	c.store.Add(path, t)
	return t
}

// Request resolves the thumbnail asynchronously. On a miss the decode runs
// on a background goroutine; concurrent requests for the same path share
// one decode. deliver is invoked from that goroutine (or inline on a hit).
func (c *Cache) Request(path string, maxDim int, deliver func(*Thumbnail)) {
	if t, ok := c.store.Get(path); ok {
		deliver(t)
		return
	}

	c.mu.Lock()
	if waiters, ok := c.inflight[path]; ok {
		c.inflight[path] = append(waiters, deliver)
		c.mu.Unlock()
		return
	}
	c.inflight[path] = []func(*Thumbnail){deliver}
	c.mu.Unlock()

	go func() {
		t := c.generate(path, maxDim)
		c.store.Add(path, t)

		c.mu.Lock()
		waiters := c.inflight[path]
		delete(c.inflight, path)
		c.mu.Unlock()

		for _, fn := range waiters {
			fn(t)
		}
	}()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return c.store.Len() }

// generate produces the thumbnail for a path. It never fails: anything
// undecodable becomes a placeholder.
func (c *Cache) generate(path string, maxDim int) *Thumbnail {
	if vlib.IsVideo(path) {
		return placeholder(KindVideo, maxDim)
	}
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		if t := c.decodeAnimation(path); t != nil {
			return t
		}
	}
	t, err := c.decodeStatic(path, maxDim)
	if err != nil {
		c.logger.Debug("thumbnail decode failed", "path", path, "error", err)
		return placeholder(KindPlaceholder, maxDim)
	}
	return t
}

// decodeAnimation decodes a gif in full. Single-frame gifs return nil so
// the static path downsamples them instead.
func (c *Cache) decodeAnimation(path string) *Thumbnail {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil || len(g.Image) < 2 {
		return nil
	}
	return &Thumbnail{Kind: KindAnimated, Image: g.Image[0], Animation: g}
}

// decodeStatic decodes a still image bounded by maxDecodePixels and scales
// it to fit maxDim.
func (c *Cache) decodeStatic(path string, maxDim int) (*Thumbnail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxDecodePixels {
		return nil, fmt.Errorf("image dimensions out of bounds: %dx%d", cfg.Width, cfg.Height)
	}

	f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return &Thumbnail{Kind: KindStatic, Image: scaleToFit(img, maxDim)}, nil
}

// scaleToFit downsamples img so its longer side is at most maxDim.
// Images already within bounds are returned as-is; thumbnails are never
// upscaled.
func scaleToFit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	var tw, th int
	if w >= h {
		tw = maxDim
		th = h * maxDim / w
	} else {
		th = maxDim
		tw = w * maxDim / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// placeholder builds the flat tile cached for undecodable or video files.
func placeholder(kind Kind, maxDim int) *Thumbnail {
	dim := maxDim
	if dim < 16 {
		dim = 16
	}
	if dim > 256 {
		dim = 256
	}
	fill := color.RGBA{R: 0xD8, G: 0xD8, B: 0xDC, A: 0xFF}
	if kind == KindVideo {
		fill = color.RGBA{R: 0x3A, G: 0x3A, B: 0x42, A: 0xFF}
	}
	tile := image.NewRGBA(image.Rect(0, 0, dim, dim))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return &Thumbnail{Kind: kind, Image: tile}
}
