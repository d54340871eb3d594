package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/paintboard/internal/palette"
	"github.com/example/paintboard/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Brush holds the initial brush settings. Empty values mean the palette
// defaults.
type Brush struct {
	Color     string
	Thickness float64
	Mode      string
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Brush   Brush
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Notify: Notify{
			Save: false,
			Copy: false,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Brush.Color != "" {
		fmt.Fprintf(&sb, "brush_color = %s\n", c.Brush.Color)
	}
	if c.Brush.Thickness > 0 {
		fmt.Fprintf(&sb, "brush_thickness = %g\n", c.Brush.Thickness)
	}
	if c.Brush.Mode != "" {
		fmt.Fprintf(&sb, "mode = %s\n", c.Brush.Mode)
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, palette.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
