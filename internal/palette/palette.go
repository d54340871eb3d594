// Package palette holds the brush colours and thickness presets offered to
// the user.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// Color is a palette entry annotated with its display name.
type Color struct {
	Name  string
	Color color.RGBA
}

// Box is a palette entry as shown in a swatch row.
type Box struct {
	Color
	Selected bool
}

const defaultColorIndex = 0

var (
	mu     sync.RWMutex
	colors = []Color{
		{"Red", color.RGBA{0xE5, 0x39, 0x35, 0xFF}},
		{"Orange", color.RGBA{0xFB, 0x8C, 0x00, 0xFF}},
		{"Yellow", color.RGBA{0xFD, 0xD8, 0x35, 0xFF}},
		{"Green", color.RGBA{0x43, 0xA0, 0x47, 0xFF}},
		{"Blue", color.RGBA{0x1E, 0x88, 0xE5, 0xFF}},
		{"Navy", color.RGBA{0x1A, 0x23, 0x7E, 0xFF}},
		{"Purple", color.RGBA{0x8E, 0x24, 0xAA, 0xFF}},
		{"Black", color.RGBA{0x00, 0x00, 0x00, 0xFF}},
		{"White", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
	}
)

// DefaultColor returns the colour selected when nothing else is configured.
func DefaultColor() color.RGBA { return ColorAt(defaultColorIndex) }

// DefaultIndex returns the palette index of DefaultColor.
func DefaultIndex() int { return defaultColorIndex }

// Colors returns a copy of the palette.
func Colors() []Color {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// Len returns the number of palette entries.
func Len() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(colors)
}

// ColorAt returns the colour at idx, clamping idx into range.
func ColorAt(idx int) color.RGBA {
	mu.RLock()
	defer mu.RUnlock()
	if len(colors) == 0 {
		return color.RGBA{}
	}
	return colors[clamp(idx, len(colors))].Color
}

// NameOf returns the display name of col, or its hex form when col is not
// part of the palette.
func NameOf(col color.RGBA) string {
	if idx := IndexOf(col); idx >= 0 {
		mu.RLock()
		defer mu.RUnlock()
		return colors[idx].Name
	}
	return Hex(col)
}

// IndexOf returns the palette index of col or -1.
func IndexOf(col color.RGBA) int {
	mu.RLock()
	defer mu.RUnlock()
	for i, c := range colors {
		if c.Color == col {
			return i
		}
	}
	return -1
}

// Boxes returns the palette with the entry equal to selected marked.
func Boxes(selected color.RGBA) []Box {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Box, len(colors))
	for i, c := range colors {
		out[i] = Box{Color: c, Selected: c.Color == selected}
	}
	return out
}

// Ensure makes sure col is present in the palette and returns its index.
func Ensure(col color.RGBA, name string) int {
	mu.Lock()
	defer mu.Unlock()
	for idx, existing := range colors {
		if existing.Color == col {
			if name != "" && existing.Name == "" {
				colors[idx].Name = name
			}
			return idx
		}
	}
	if name == "" {
		name = Hex(col)
	}
	colors = append(colors, Color{Name: name, Color: col})
	return len(colors) - 1
}

// Lookup resolves a colour given as a palette name, a CSS colour name or a
// hex value (#RGB, #RRGGBB or #RRGGBBAA). Names are case-insensitive.
func Lookup(s string) (color.RGBA, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(name, "#") {
		return ParseHex(name)
	}
	lower := strings.ToLower(name)
	mu.RLock()
	for _, c := range colors {
		if strings.ToLower(c.Name) == lower {
			mu.RUnlock()
			return c.Color, nil
		}
	}
	mu.RUnlock()
	if c, ok := colornames.Map[lower]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats col as #RRGGBB, appending alpha only when it is not opaque.
func Hex(col color.RGBA) string {
	if col.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", col.R, col.G, col.B, col.A)
}

// NamedColors returns the CSS colour names accepted by Lookup, sorted.
func NamedColors() []string {
	out := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func clamp(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
