package render

import (
	"image"
	"testing"
)

func TestPageShadowBounds(t *testing.T) {
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(6, 5), Opacity: 0.5}
	res := PageShadow(image.Pt(20, 10), opts)
	if res.Image == nil {
		t.Fatal("expected shadow image")
	}
	// shadow spans (6,5)-(26,15), padded by 8 on each side
	want := image.Rect(0, 0, 36, 26)
	if !res.Image.Bounds().Eq(want) {
		t.Fatalf("bounds %v, want %v", res.Image.Bounds(), want)
	}
	if res.Offset != image.Pt(2, 3) {
		t.Errorf("offset %v", res.Offset)
	}
}

func TestPageShadowAlpha(t *testing.T) {
	res := PageShadow(image.Pt(30, 30), ShadowOptions{Radius: 2, Offset: image.Pt(3, 3), Opacity: 1})
	centre := image.Pt(15, 15).Add(res.Offset).Add(image.Pt(3, 3))
	if a := res.Image.NRGBAAt(centre.X, centre.Y).A; a < 200 {
		t.Errorf("expected dense shadow under the page, alpha %d", a)
	}
	if a := res.Image.NRGBAAt(0, 0).A; a > 50 {
		t.Errorf("expected faint shadow at the padded corner, alpha %d", a)
	}
}

func TestPageShadowDisabled(t *testing.T) {
	if res := PageShadow(image.Pt(10, 10), ShadowOptions{Radius: 4, Opacity: 0}); res.Image != nil {
		t.Error("expected no shadow at zero opacity")
	}
	if res := PageShadow(image.Point{}, DefaultShadowOptions()); res.Image != nil {
		t.Error("expected no shadow for an empty page")
	}
}
