package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"

	"github.com/example/paintboard/internal/paint"
	"github.com/example/paintboard/internal/palette"
	"github.com/example/paintboard/internal/render"
)

// iconBase is the size the icon strokes are designed at.
const iconBase = 128

var iconSizes = []int{16, 32, 48, 64, 128, 256}

var (
	iconMu    sync.Mutex
	pngImages = map[int]*image.RGBA{}
	pngData   = map[int][]byte{}
)

// iconStrokes returns the strokes of the icon at iconBase scaled by s.
func iconStrokes(s float64) []paint.Stroke {
	pt := func(x, y float64) paint.Point { return paint.Pt(x*s, y*s) }
	var page, wave, box, dot paint.Path
	page.AddRect(paint.Rect{Min: pt(8, 8), Max: pt(120, 120)})
	box.AddRect(paint.Rect{Min: pt(24, 70), Max: pt(64, 104)})
	dot.AddOval(paint.Rect{Min: pt(70, 64), Max: pt(106, 100)})
	wave.MoveTo(pt(22, 44))
	wave.CubeTo(pt(44, 12), pt(70, 64), pt(104, 30))

	fill := func(p paint.Path, c color.RGBA) paint.Stroke {
		return paint.Stroke{Path: p, Paint: paint.Paint{Color: c, Style: paint.StyleFill}}
	}
	return []paint.Stroke{
		fill(page, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}),
		fill(box, palette.ColorAt(4)),
		fill(dot, palette.ColorAt(3)),
		{Path: wave, Paint: paint.Paint{Color: palette.DefaultColor(), Width: 12 * s, Style: paint.StyleStroke}},
	}
}

// IconImage returns the application icon rendered at size×size pixels.
func IconImage(size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	iconMu.Lock()
	defer iconMu.Unlock()
	if img, ok := pngImages[size]; ok {
		return img, nil
	}
	img := render.Layer(size, size, iconStrokes(float64(size)/iconBase))
	pngImages[size] = img
	return img, nil
}

// IconPNG returns a copy of the PNG encoding of the icon at size.
func IconPNG(size int) ([]byte, error) {
	img, err := IconImage(size)
	if err != nil {
		return nil, err
	}
	iconMu.Lock()
	defer iconMu.Unlock()
	data, ok := pngData[size]
	if !ok {
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, img); err != nil {
			return nil, err
		}
		data = buf.Bytes()
		pngData[size] = data
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// IconSizes lists the conventional icon sizes.
func IconSizes() []int {
	sizes := append([]int(nil), iconSizes...)
	sort.Ints(sizes)
	return sizes
}
