package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/paintboard/internal/appstate"
	"github.com/example/paintboard/internal/paint"
	"github.com/example/paintboard/internal/palette"
	"github.com/example/paintboard/internal/render"
)

// drawCmd opens the drawing window.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	output     string
	colorSpec  string
	thickness  float64
	modeName   string
	width      int
	height     int
	background string
	noShadow   bool

	brush paint.Brush
	mode  paint.Mode
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	brush, mode := r.brush()
	fs.StringVar(&d.output, "output", "", "file written by Ctrl+S (.png, .jpg or .pdf)")
	fs.StringVar(&d.colorSpec, "color", "", "initial brush color name or hex value")
	fs.Float64Var(&d.thickness, "thickness", brush.Thickness, "initial brush thickness in pixels")
	fs.StringVar(&d.modeName, "mode", mode.String(), "initial tool: pen, rect, oval or eraser")
	fs.IntVar(&d.width, "width", appstate.DefaultSize.X, "page width in pixels")
	fs.IntVar(&d.height, "height", appstate.DefaultSize.Y, "page height in pixels")
	fs.StringVar(&d.background, "background", "", "page color, overriding the theme")
	fs.BoolVar(&d.noShadow, "no-shadow", false, "do not draw the page shadow")
	if err := parseFlags(fs, d, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}

	d.brush = brush
	if d.colorSpec != "" {
		col, err := palette.Lookup(d.colorSpec)
		if err != nil {
			return nil, err
		}
		palette.Ensure(col, "")
		d.brush.Color = col
	}
	if d.thickness < palette.MinThickness || d.thickness > palette.MaxThickness {
		return nil, fmt.Errorf("thickness must be between %d and %d", palette.MinThickness, palette.MaxThickness)
	}
	d.brush.Thickness = d.thickness
	m, err := paint.ParseMode(d.modeName)
	if err != nil {
		return nil, err
	}
	d.mode = m
	if err := render.CheckSize(d.width, d.height); err != nil {
		return nil, err
	}
	if d.output != "" {
		ext := strings.ToLower(filepath.Ext(d.output))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".pdf":
		default:
			return nil, fmt.Errorf("unsupported output format %q", ext)
		}
	}
	return d, nil
}

// options returns the window options for the parsed flags.
func (d *drawCmd) options(b *paint.Board) []appstate.Option {
	opts := []appstate.Option{
		appstate.WithBoard(b),
		appstate.WithSize(d.width, d.height),
		appstate.WithOutput(d.output),
		appstate.WithTheme(d.activeTheme),
		appstate.WithNotifier(d.notifier),
	}
	if d.config != nil {
		opts = append(opts, appstate.WithSaveDir(d.config.SaveDir))
	}
	if d.background != "" {
		opts = append(opts, appstate.WithBackground(d.background))
	}
	if d.noShadow {
		opts = append(opts, appstate.WithShadow(render.ShadowOptions{}))
	}
	return opts
}

func (d *drawCmd) Run() error {
	b := paint.NewBoard(paint.WithBrush(d.brush), paint.WithMode(d.mode))
	return appstate.New(d.options(b)...).Run()
}
