package render

import (
	"image"
	"image/draw"

	"github.com/example/paintboard/internal/paint"
)

// Cache keeps the layer of the last rendered stroke list so that appending
// strokes only rasterises the new ones. It is not safe for concurrent use.
type Cache struct {
	ids   []string
	layer *image.RGBA
}

// Layer returns the layer for strokes at w×h. The result is owned by the
// cache and must not be modified.
func (c *Cache) Layer(w, h int, strokes []paint.Stroke) *image.RGBA {
	if c.layer == nil || c.layer.Bounds().Dx() != w || c.layer.Bounds().Dy() != h || !c.isPrefix(strokes) {
		c.layer = image.NewRGBA(image.Rect(0, 0, w, h))
		c.ids = c.ids[:0]
	}
	for _, s := range strokes[len(c.ids):] {
		DrawStroke(c.layer, s)
		c.ids = append(c.ids, s.ID)
	}
	return c.layer
}

// Reset drops the cached layer.
func (c *Cache) Reset() {
	c.ids = nil
	c.layer = nil
}

func (c *Cache) isPrefix(strokes []paint.Stroke) bool {
	if len(c.ids) > len(strokes) {
		return false
	}
	for i, id := range c.ids {
		if strokes[i].ID != id {
			return false
		}
	}
	return true
}

// Compose draws the cached layer for committed plus the in-progress stroke,
// if any, over a copy owned by the caller.
func (c *Cache) Compose(w, h int, committed []paint.Stroke, current *paint.Stroke) *image.RGBA {
	layer := c.Layer(w, h, committed)
	out := image.NewRGBA(layer.Bounds())
	draw.Draw(out, out.Bounds(), layer, image.Point{}, draw.Src)
	if current != nil {
		DrawStroke(out, *current)
	}
	return out
}
