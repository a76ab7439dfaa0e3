// Package render draws a computed relationship map to SVG or PNG.
package render

import (
	"fmt"
	"image/color"
)

// Style is the color palette for one rendered map.
type Style struct {
	Background color.RGBA
	GoalFill   color.RGBA
	GoalDone   color.RGBA
	HabitFill  color.RGBA
	HabitDone  color.RGBA
	GroupFill  color.RGBA
	Border     color.RGBA
	Text       color.RGBA
	TextMuted  color.RGBA
	EdgeChild  color.RGBA
	EdgeHabit  color.RGBA
	EdgeNext   color.RGBA
}

// Styles maps theme names to palettes. The key set mirrors the TUI themes so
// a workspace's theme carries into its exported map.
var Styles = map[string]Style{
	"default": {
		Background: color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		GoalFill:   color.RGBA{0x2a, 0x2a, 0x3e, 0xff},
		GoalDone:   color.RGBA{0x2a, 0x3e, 0x2f, 0xff},
		HabitFill:  color.RGBA{0x24, 0x24, 0x34, 0xff},
		HabitDone:  color.RGBA{0x24, 0x34, 0x28, 0xff},
		GroupFill:  color.RGBA{0x2e, 0x2a, 0x3e, 0xff},
		Border:     color.RGBA{0x62, 0x72, 0xa4, 0xff},
		Text:       color.RGBA{0xf8, 0xf8, 0xf2, 0xff},
		TextMuted:  color.RGBA{0x94, 0x9c, 0xbf, 0xff},
		EdgeChild:  color.RGBA{0x6b, 0x80, 0xbf, 0xc0},
		EdgeHabit:  color.RGBA{0x50, 0xfa, 0x7b, 0x90},
		EdgeNext:   color.RGBA{0xbd, 0x93, 0xf9, 0x90},
	},
	"light": {
		Background: color.RGBA{0xfa, 0xfa, 0xf5, 0xff},
		GoalFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
		GoalDone:   color.RGBA{0xe6, 0xf4, 0xe6, 0xff},
		HabitFill:  color.RGBA{0xf2, 0xf2, 0xee, 0xff},
		HabitDone:  color.RGBA{0xe0, 0xf0, 0xe0, 0xff},
		GroupFill:  color.RGBA{0xf0, 0xec, 0xf8, 0xff},
		Border:     color.RGBA{0x8a, 0x8a, 0x9a, 0xff},
		Text:       color.RGBA{0x28, 0x28, 0x30, 0xff},
		TextMuted:  color.RGBA{0x6a, 0x6a, 0x78, 0xff},
		EdgeChild:  color.RGBA{0x6b, 0x80, 0xbf, 0xe0},
		EdgeHabit:  color.RGBA{0x2f, 0x9e, 0x44, 0xb0},
		EdgeNext:   color.RGBA{0x84, 0x5e, 0xf7, 0xb0},
	},
}

// StyleFor resolves a theme name, falling back to the default palette.
func StyleFor(theme string) Style {
	if s, ok := Styles[theme]; ok {
		return s
	}
	return Styles["default"]
}

func cssRGBA(c color.RGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
