package paint

import (
	"fmt"
	"strings"
)

// Mode selects the drawing tool used for the next gesture.
type Mode int

const (
	ModePen Mode = iota
	ModeRectangle
	ModeOval
	ModeEraser
)

var modeNames = [...]string{
	ModePen:       "pen",
	ModeRectangle: "rect",
	ModeOval:      "oval",
	ModeEraser:    "eraser",
}

// Modes returns every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModePen, ModeRectangle, ModeOval, ModeEraser}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name such as "pen" or "oval" into a Mode. A few
// long forms ("rectangle", "ellipse", "erase") are accepted as well.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pen", "draw", "brush":
		return ModePen, nil
	case "rect", "rectangle":
		return ModeRectangle, nil
	case "oval", "ellipse", "circle":
		return ModeOval, nil
	case "eraser", "erase":
		return ModeEraser, nil
	}
	return ModePen, fmt.Errorf("unknown mode %q", s)
}
