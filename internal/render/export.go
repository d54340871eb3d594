package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/example/paintboard/internal/paint"
)

// ExportOptions describes the output of Export.
type ExportOptions struct {
	Width, Height int
	Background    color.Color
	// ScaleWidth resizes raster output proportionally when positive.
	ScaleWidth int
}

// MaxDimension bounds the width and height of rendered pages.
const MaxDimension = 16384

// CheckSize reports an error unless w and h are both between 1 and
// MaxDimension.
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("page size must be positive, got %dx%d", w, h)
	}
	if w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("page size %dx%d exceeds %dx%d", w, h, MaxDimension, MaxDimension)
	}
	return nil
}

// Scale resizes img proportionally to width pixels. A non-positive width
// returns an unscaled copy.
func Scale(img image.Image, width int) *image.NRGBA {
	if width <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Export renders strokes to path. A ".pdf" extension produces a vector PDF;
// other extensions are encoded by imaging according to the extension.
func Export(path string, opts ExportOptions, strokes []paint.Stroke) error {
	if err := CheckSize(opts.Width, opts.Height); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if opts.ScaleWidth > 0 {
		if err := CheckSize(opts.ScaleWidth, opts.Height*opts.ScaleWidth/opts.Width); err != nil {
			return fmt.Errorf("export %s: scaled %w", path, err)
		}
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := WritePDF(f, opts.Width, opts.Height, opts.Background, strokes); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	img := Image(opts.Width, opts.Height, opts.Background, strokes)
	var out image.Image = img
	if opts.ScaleWidth > 0 {
		out = Scale(img, opts.ScaleWidth)
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WritePDF writes strokes as a single page vector PDF measuring width×height
// points. Clearing strokes are painted in the background colour since PDF has
// no equivalent of erasing.
func WritePDF(w io.Writer, width, height int, bg color.Color, strokes []paint.Stroke) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	bgc := color.RGBAModel.Convert(bg).(color.RGBA)
	pdf.SetFillColor(int(bgc.R), int(bgc.G), int(bgc.B))
	pdf.Rect(0, 0, float64(width), float64(height), "F")

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, s := range strokes {
		if s.Path.Empty() {
			continue
		}
		c := s.Paint.Color
		if s.Paint.Blend == paint.BlendClear {
			c = bgc
		}
		r, g, b, a := unpremultiply(c)
		pdf.SetAlpha(a, "Normal")
		style := "D"
		if s.Paint.Style == paint.StyleFill {
			pdf.SetFillColor(r, g, b)
			style = "F"
		} else {
			pdf.SetDrawColor(r, g, b)
			pdf.SetLineWidth(s.Paint.Width)
		}
		tracePDF(pdf, s.Path)
		pdf.DrawPath(style)
	}
	pdf.SetAlpha(1, "Normal")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func tracePDF(pdf *gofpdf.Fpdf, p paint.Path) {
	for _, seg := range p.Segments() {
		switch seg.Op {
		case paint.OpMove:
			pdf.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case paint.OpLine:
			pdf.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case paint.OpCube:
			pdf.CurveBezierCubicTo(seg.Pts[0].X, seg.Pts[0].Y,
				seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case paint.OpClose:
			pdf.ClosePath()
		}
	}
}

// unpremultiply converts c to straight 8-bit channels and a 0..1 alpha.
func unpremultiply(c color.RGBA) (r, g, b int, a float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B), float64(n.A) / 255
}
