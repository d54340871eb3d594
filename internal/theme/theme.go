package theme

import (
	"image/color"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window backdrop around the page
	Foreground color.RGBA // Main text color
	Page       color.RGBA // Drawing surface, also the export background

	// Toolbar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // Selected tool
	ButtonDisabled        color.RGBA // Undo/redo with nothing to do
	ButtonText            color.RGBA
	ButtonTextDisabled    color.RGBA
	ButtonBorder          color.RGBA

	// Palette
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{200, 200, 200, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		Page:                  color.RGBA{255, 255, 255, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		StatusBackground:      color.RGBA{230, 230, 230, 255},
		StatusText:            color.RGBA{40, 40, 40, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonActive:          color.RGBA{160, 190, 230, 255},
		ButtonDisabled:        color.RGBA{215, 215, 215, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:    color.RGBA{140, 140, 140, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		SwatchBorder:          color.RGBA{90, 90, 90, 255},
		SwatchSelected:        color.RGBA{0, 0, 0, 255},
	}
}
