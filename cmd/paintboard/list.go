package main

import (
	"flag"
	"fmt"

	"github.com/example/paintboard/internal/palette"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := parseFlags(fs, cmd, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	colors := palette.Colors()
	if len(colors) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the default color):")
	selected, _ := c.brush()
	for idx, entry := range colors {
		marker := " "
		if entry.Color == selected.Color {
			marker = "*"
		}
		hex := palette.Hex(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type thicknessCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThicknessCmd(args []string, r *root) (*thicknessCmd, error) {
	fs := flag.NewFlagSet("thickness", flag.ContinueOnError)
	cmd := &thicknessCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := parseFlags(fs, cmd, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *thicknessCmd) Run() error {
	selected, _ := c.brush()
	fmt.Fprintf(c.stdout, "brush thickness presets, %g to %g (* marks the default):\n", float64(palette.MinThickness), float64(palette.MaxThickness))
	for _, w := range palette.Thicknesses() {
		marker := " "
		if w == selected.Thickness {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %5gpx\n", marker, w)
	}
	return nil
}

func (c *thicknessCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
