package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
)

// Textures caches decoded images by asset path. Embedded assets are tried
// first, then the filesystem.
type Textures struct {
	images map[string]*ebiten.Image
	failed map[string]error
}

func NewTextures() *Textures {
	return &Textures{
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]error),
	}
}

// Get returns the texture for key. A key that failed once keeps failing
// without touching the disk again.
func (t *Textures) Get(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty texture key")
	}
	if img, ok := t.images[key]; ok {
		return img, nil
	}
	if err, ok := t.failed[key]; ok {
		return nil, err
	}
	img, err := loadTexture(key)
	if err != nil {
		t.failed[key] = err
		return nil, err
	}
	t.images[key] = img
	return img, nil
}

// Forget drops every cached entry so edited files are read again.
func (t *Textures) Forget() {
	clear(t.images)
	clear(t.failed)
}

func loadTexture(path string) (*ebiten.Image, error) {
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	for _, p := range []string{path, filepath.Join("assets", path)} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return ebiten.NewImageFromImage(im), nil
	}
	return nil, fmt.Errorf("render: texture %s not found", path)
}
