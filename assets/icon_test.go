package assets

import (
	"bytes"
	"image/png"
	"testing"
)

func TestIconImage(t *testing.T) {
	img, err := IconImage(64)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds %v", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner outside the page is not transparent")
	}
	if _, _, _, a := img.At(32, 8).RGBA(); a == 0 {
		t.Error("page is transparent")
	}
	again, _ := IconImage(64)
	if again != img {
		t.Error("icon not cached")
	}
	if _, err := IconImage(0); err == nil {
		t.Error("zero size accepted")
	}
}

func TestIconPNG(t *testing.T) {
	data, err := IconPNG(32)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 32 || cfg.Height != 32 {
		t.Errorf("size %dx%d", cfg.Width, cfg.Height)
	}
	data[0] = 0
	if again, _ := IconPNG(32); again[0] == 0 {
		t.Error("IconPNG returned the cached slice")
	}
}

func TestIconSizes(t *testing.T) {
	sizes := IconSizes()
	if len(sizes) == 0 || sizes[0] != 16 {
		t.Errorf("sizes %v", sizes)
	}
	sizes[0] = 1
	if IconSizes()[0] != 16 {
		t.Error("IconSizes exposed its slice")
	}
}
